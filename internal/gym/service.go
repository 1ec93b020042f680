package gym

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rocketfist/internal/api"
	"rocketfist/internal/db"

	"github.com/gosimple/slug"
)

var (
	ErrGymNotFound = api.NewError(api.ErrNotFound, "gym not found")
	ErrSlugTaken   = api.NewError(api.ErrConflict, "gym slug already in use")
	ErrInvalidSlug = api.NewError(api.ErrValidation, "gym name does not produce a usable slug")
)

// Guard is the existence check every per-gym operation runs first.
type Guard interface {
	Require(ctx context.Context, id string) (*Gym, error)
}

type Service interface {
	CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	Guard
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error) {
	source := req.Slug
	if source == "" {
		source = req.Name
	}
	gymSlug := slug.Make(source)
	if gymSlug == "" {
		return nil, ErrInvalidSlug
	}

	gym, err := s.repo.CreateGym(ctx, req.Name, gymSlug, req.Timezone)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create gym: %w", err)
	}
	return gym, nil
}

func (s *service) GetAllGyms(ctx context.Context) ([]Gym, error) {
	return s.repo.GetAllGyms(ctx)
}

// Require loads the gym or fails with ErrGymNotFound. Store failures are
// returned as internal errors, never as not found.
func (s *service) Require(ctx context.Context, id string) (*Gym, error) {
	gym, err := s.repo.GetGymByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, fmt.Errorf("load gym %s: %w", id, err)
	}
	return gym, nil
}
