package billing

import (
	"context"
	"fmt"
	"time"

	"rocketfist/internal/api"
	"rocketfist/internal/gym"
)

type Service interface {
	ListPlans(ctx context.Context, gymID string) ([]Plan, error)
	Revenue(ctx context.Context, gymID string, q RevenueQuery) (*Revenue, error)
}

type service struct {
	repo            Repository
	gyms            gym.Guard
	defaultCurrency string
}

func NewService(repo Repository, gyms gym.Guard, defaultCurrency string) Service {
	return &service{
		repo:            repo,
		gyms:            gyms,
		defaultCurrency: defaultCurrency,
	}
}

func (s *service) ListPlans(ctx context.Context, gymID string) ([]Plan, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}

	plans, err := s.repo.ListPlans(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("list plans of gym %s: %w", gymID, err)
	}
	return plans, nil
}

// Revenue sums succeeded payments whose paid_at falls on the requested
// calendar days in the gym's timezone, both ends inclusive.
func (s *service) Revenue(ctx context.Context, gymID string, q RevenueQuery) (*Revenue, error) {
	// Malformed dates are rejected before the gym is looked up.
	if _, err := api.ParseDateRange(q.From, q.To, time.UTC); err != nil {
		return nil, err
	}

	g, err := s.gyms.Require(ctx, gymID)
	if err != nil {
		return nil, err
	}

	window, err := api.ParseDateRange(q.From, q.To, g.Location())
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.SumRevenue(ctx, gymID, window.From, window.Until)
	if err != nil {
		return nil, fmt.Errorf("sum revenue of gym %s: %w", gymID, err)
	}

	rev, err := Summarize(totals, q.Currency, s.defaultCurrency)
	if err != nil {
		return nil, err
	}
	rev.From, rev.To = q.From, q.To
	return rev, nil
}
