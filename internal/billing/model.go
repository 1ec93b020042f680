package billing

import "time"

type Plan struct {
	ID                    string    `db:"id" json:"id"`
	GymID                 string    `db:"gym_id" json:"gym_id"`
	Name                  string    `db:"name" json:"name"`
	Description           *string   `db:"description" json:"description,omitempty"`
	PriceCents            int64     `db:"price_cents" json:"price_cents"`
	BillingInterval       string    `db:"billing_interval" json:"billing_interval"`
	MaxClassesPerInterval *int      `db:"max_classes_per_interval" json:"max_classes_per_interval"` // nil = unlimited
	IsActive              bool      `db:"is_active" json:"is_active"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

type CurrencyTotal struct {
	Currency   string `db:"currency" json:"currency"`
	TotalCents int64  `db:"total_cents" json:"totalCents"`
}

type Revenue struct {
	From              string          `json:"from"`
	To                string          `json:"to"`
	TotalRevenueCents int64           `json:"totalRevenueCents"`
	Currency          string          `json:"currency"`
	ByCurrency        []CurrencyTotal `json:"byCurrency"`
}

type RevenueQuery struct {
	From     string `form:"from" binding:"required"`
	To       string `form:"to" binding:"required"`
	// Currency is matched case-insensitively; the handler upper-cases it
	// before checking it against ISO 4217.
	Currency string `form:"currency" validate:"omitempty,iso4217"`
}
