package services

import (
	"context"
	"fmt"
	"time"

	"finledger/internal/core"
	"finledger/internal/storage"
)

// RateSource provides the current conversion rate map. It is total: callers
// never handle a rate error, only possibly degraded data.
type RateSource interface {
	GetRates(ctx context.Context) map[string]float64
}

// AggregationService builds the normalized dashboard overview for a user.
// The rate map is fetched once per call so a single pass is internally
// consistent. Domain-level degradation (missing rates, empty ledgers) never
// produces an error; only storage failures do.
type AggregationService struct {
	store *storage.Repository
	rates RateSource
}

func NewAggregationService(store *storage.Repository, rates RateSource) *AggregationService {
	return &AggregationService{store: store, rates: rates}
}

func (s *AggregationService) Aggregate(ctx context.Context, userID int64) (core.Overview, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return core.Overview{}, fmt.Errorf("load user: %w", err)
	}

	ledgers, err := s.store.ListWalletLedgers(ctx, userID)
	if err != nil {
		return core.Overview{}, fmt.Errorf("load wallet ledgers: %w", err)
	}

	rates := s.rates.GetRates(ctx)

	return core.Aggregate(ledgers, user.CreatedAt, time.Now().UTC(), rates), nil
}
