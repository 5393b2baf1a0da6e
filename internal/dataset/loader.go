// Package dataset loads and validates the analyzer's input collections from
// a JSON document.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/Crombex/sales-bonus/internal/sales"
)

// ErrInvalidDataset is returned when the decoded document fails validation.
var ErrInvalidDataset = errors.New("dataset: invalid dataset")

var validate = validator.New()

// Loader reads the dataset from a file on every call. It satisfies the
// report source interface.
type Loader struct {
	Path string
}

// Dataset opens the configured file and decodes it. A partial or invalid
// document is never returned.
func (l Loader) Dataset(_ context.Context) (*sales.Data, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", l.Path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses and validates a dataset document from the reader.
func Decode(r io.Reader) (*sales.Data, error) {
	var data sales.Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("dataset: decode: %w", err)
	}
	if err := validate.Struct(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return &data, nil
}
