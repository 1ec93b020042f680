package billing

import (
	"context"
	"time"
)

type Repository interface {
	ListPlans(ctx context.Context, gymID string) ([]Plan, error)
	// SumRevenue totals succeeded payments with paid_at in [from, until),
	// one row per currency.
	SumRevenue(ctx context.Context, gymID string, from, until time.Time) ([]CurrencyTotal, error)
}
