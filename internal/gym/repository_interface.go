package gym

import "context"

type Repository interface {
	CreateGym(ctx context.Context, name, slug, timezone string) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id string) (*Gym, error)
}
