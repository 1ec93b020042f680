package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rocketfist/internal/api"
	"rocketfist/internal/gym"
)

var ErrMemberNotFound = api.NewError(api.ErrNotFound, "member not found")

type Service interface {
	ListMembers(ctx context.Context, gymID string) ([]Member, error)
	GetMember(ctx context.Context, gymID, memberID string) (*Member, error)
}

type service struct {
	repo Repository
	gyms gym.Guard
}

func NewService(repo Repository, gyms gym.Guard) Service {
	return &service{
		repo: repo,
		gyms: gyms,
	}
}

func (s *service) ListMembers(ctx context.Context, gymID string) ([]Member, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("list members of gym %s: %w", gymID, err)
	}
	return members, nil
}

// GetMember looks a user up by profile id among every role of the gym.
func (s *service) GetMember(ctx context.Context, gymID, memberID string) (*Member, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}

	m, err := s.repo.GetMember(ctx, gymID, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member %s: %w", memberID, err)
	}
	return m, nil
}
