package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Crombex/sales-bonus/internal/dataset"
	"github.com/Crombex/sales-bonus/internal/report"
)

// reportgen renders the ranked seller report for a dataset file as JSON.
// Intended for ad-hoc inspection and for feeding presentation tooling.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	var (
		path = flag.String("dataset", os.Getenv("DATASET_PATH"), "path to the JSON dataset file")
		out  = flag.String("out", "", "output file (defaults to stdout)")
	)
	flag.Parse()

	if *path == "" {
		log.Fatal("dataset path is required (-dataset flag or DATASET_PATH)")
	}

	svc := &report.Service{Source: dataset.Loader{Path: *path}}
	rows, err := svc.Sellers(context.Background())
	if err != nil {
		log.Fatalf("Failed to compute report: %v", err)
	}

	encoded, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	encoded = append(encoded, '\n')

	if *out == "" {
		if _, err := os.Stdout.Write(encoded); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		return
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Report written to %s (%d sellers)", *out, len(rows))
}
