package gym

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGym(ctx context.Context, name, slug, timezone string) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, slug, timezone)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, timezone, created_at, updated_at
	`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, name, slug, timezone); err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, name, slug, timezone, created_at, updated_at
		FROM gyms
		ORDER BY name ASC
	`

	gyms := []Gym{}
	if err := r.db.SelectContext(ctx, &gyms, query); err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GetGymByID(ctx context.Context, id string) (*Gym, error) {
	query := `
		SELECT id, name, slug, timezone, created_at, updated_at
		FROM gyms
		WHERE id = $1
	`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, id); err != nil {
		return nil, err
	}

	return &gym, nil
}
