// Package report computes and serves ranked seller performance reports on
// top of the sales analyzer.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Crombex/sales-bonus/internal/bonus"
	"github.com/Crombex/sales-bonus/internal/common"
	"github.com/Crombex/sales-bonus/internal/obs"
	"github.com/Crombex/sales-bonus/internal/revenue"
	"github.com/Crombex/sales-bonus/internal/sales"
)

// Source supplies the analyzer's input collections.
type Source interface {
	Dataset(ctx context.Context) (*sales.Data, error)
}

// Service computes seller reports and caches the encoded results in Redis.
// Caching is disabled when no client or TTL is configured.
type Service struct {
	Source  Source
	R       *redis.Client
	TTL     time.Duration
	Options *sales.Options
}

// Overview aggregates the ranked report into dashboard totals.
type Overview struct {
	Sellers     int     `json:"sellers"`
	SalesCount  int     `json:"sales_count"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
	BonusPayout float64 `json:"bonus_payout"`
}

func cacheKey(parts ...any) string {
	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		formatted = append(formatted, fmt.Sprint(part))
	}
	return strings.Join(formatted, ":")
}

// Sellers returns the ranked seller report, serving from cache when a fresh
// copy exists.
func (s *Service) Sellers(ctx context.Context) ([]sales.SellerResult, error) {
	if s == nil || s.Source == nil {
		return nil, common.NewAppError("REPORT_NOT_CONFIGURED", "report service not configured", http.StatusInternalServerError, nil)
	}
	key := cacheKey("rp", "sellers", "v1")
	if rows, ok := s.fromCache(ctx, key); ok {
		obs.ObserveReportCache("sellers", true)
		return rows, nil
	}
	obs.ObserveReportCache("sellers", false)

	data, err := s.Source.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := sales.Analyze(data, s.options())
	obs.ObserveReportCompute("sellers", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, rows)
	return rows, nil
}

// TotalsOverview folds the ranked report into cross-seller totals. Sums are
// re-rounded because the per-seller figures are already two-decimal values.
func (s *Service) TotalsOverview(ctx context.Context) (Overview, error) {
	rows, err := s.Sellers(ctx)
	if err != nil {
		return Overview{}, err
	}
	var out Overview
	out.Sellers = len(rows)
	for _, row := range rows {
		out.SalesCount += row.SalesCount
		out.Revenue += row.Revenue
		out.Profit += row.Profit
		out.BonusPayout += row.Bonus
	}
	out.Revenue = math.Round(out.Revenue*100) / 100
	out.Profit = math.Round(out.Profit*100) / 100
	out.BonusPayout = math.Round(out.BonusPayout*100) / 100
	return out, nil
}

func (s *Service) options() *sales.Options {
	if s.Options != nil {
		return s.Options
	}
	return &sales.Options{Revenue: revenue.Simple{}, Bonus: bonus.ByProfit{}}
}

func (s *Service) fromCache(ctx context.Context, key string) ([]sales.SellerResult, bool) {
	if s.R == nil || s.TTL <= 0 {
		return nil, false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var rows []sales.SellerResult
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (s *Service) store(ctx context.Context, key string, rows []sales.SellerResult) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}
