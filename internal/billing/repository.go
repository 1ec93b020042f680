package billing

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPlans(ctx context.Context, gymID string) ([]Plan, error) {
	query := `
		SELECT id, gym_id, name, description, price_cents, billing_interval,
			max_classes_per_interval, is_active, created_at, updated_at
		FROM membership_plans
		WHERE gym_id = $1
		ORDER BY price_cents ASC, name ASC
	`

	plans := []Plan{}
	if err := r.db.SelectContext(ctx, &plans, query, gymID); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repository) SumRevenue(ctx context.Context, gymID string, from, until time.Time) ([]CurrencyTotal, error) {
	query := `
		SELECT upper(currency) AS currency, SUM(amount_cents)::bigint AS total_cents
		FROM payments
		WHERE gym_id = $1
		  AND status = 'succeeded'
		  AND paid_at >= $2
		  AND paid_at < $3
		GROUP BY upper(currency)
		ORDER BY upper(currency)
	`

	totals := []CurrencyTotal{}
	if err := r.db.SelectContext(ctx, &totals, query, gymID, from, until); err != nil {
		return nil, err
	}
	return totals, nil
}
