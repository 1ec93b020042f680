package class

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rocketfist/internal/api"
	"rocketfist/internal/db"
	"rocketfist/internal/gym"
)

var (
	ErrClassNotFound = api.NewError(api.ErrNotFound, "class not found")
	ErrUnknownCoach  = api.NewError(api.ErrValidation, "default coach does not exist")
)

type Service interface {
	ListClasses(ctx context.Context, gymID string) ([]Class, error)
	GetClass(ctx context.Context, gymID, classID string) (*ClassDetail, error)
	// FindClass is GetClass for callers that have already resolved the gym.
	FindClass(ctx context.Context, gymID, classID string) (*ClassDetail, error)
	CreateClass(ctx context.Context, gymID string, req CreateClassRequest) (*ClassDetail, error)
	UpdateClass(ctx context.Context, gymID, classID string, req UpdateClassRequest) (*Class, error)
	ReplacePatterns(ctx context.Context, gymID, classID string, patterns []PatternInput) (*ClassDetail, error)
	// ListExpandable returns every active class that has at least one
	// pattern, across all gyms.
	ListExpandable(ctx context.Context) ([]ClassDetail, error)
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

func (s *service) ListClasses(ctx context.Context, gymID string) ([]Class, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}
	return s.repo.ListByGym(ctx, gymID)
}

func (s *service) GetClass(ctx context.Context, gymID, classID string) (*ClassDetail, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}
	return s.FindClass(ctx, gymID, classID)
}

func (s *service) FindClass(ctx context.Context, gymID, classID string) (*ClassDetail, error) {
	c, err := s.load(ctx, gymID, classID)
	if err != nil {
		return nil, err
	}

	patterns, err := s.repo.ListPatterns(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	return &ClassDetail{Class: *c, Patterns: patterns}, nil
}

func (s *service) CreateClass(ctx context.Context, gymID string, req CreateClassRequest) (*ClassDetail, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}

	patterns, err := NormalizePatterns(req.Patterns)
	if err != nil {
		return nil, err
	}

	detail, err := s.repo.Create(ctx, gymID, req, patterns)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrUnknownCoach
		}
		return nil, fmt.Errorf("create class: %w", err)
	}
	return detail, nil
}

func (s *service) UpdateClass(ctx context.Context, gymID, classID string, req UpdateClassRequest) (*Class, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}

	c, err := s.repo.Update(ctx, gymID, classID, req)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrClassNotFound
		case db.IsForeignKeyViolation(err):
			return nil, ErrUnknownCoach
		}
		return nil, fmt.Errorf("update class: %w", err)
	}
	return c, nil
}

func (s *service) ReplacePatterns(ctx context.Context, gymID, classID string, in []PatternInput) (*ClassDetail, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}

	patterns, err := NormalizePatterns(in)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, gymID, classID)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.ReplacePatterns(ctx, c.ID, patterns)
	if err != nil {
		return nil, fmt.Errorf("replace patterns: %w", err)
	}
	return &ClassDetail{Class: *c, Patterns: stored}, nil
}

func (s *service) ListExpandable(ctx context.Context) ([]ClassDetail, error) {
	classes, err := s.repo.ListExpandable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expandable classes: %w", err)
	}
	if len(classes) == 0 {
		return nil, nil
	}

	ids := make([]string, len(classes))
	for i, c := range classes {
		ids[i] = c.ID
	}

	patterns, err := s.repo.ListPatterns(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}

	byClass := make(map[string][]Pattern, len(classes))
	for _, p := range patterns {
		byClass[p.ClassID] = append(byClass[p.ClassID], p)
	}

	out := make([]ClassDetail, 0, len(classes))
	for _, c := range classes {
		out = append(out, ClassDetail{Class: c, Patterns: byClass[c.ID]})
	}
	return out, nil
}

func (s *service) load(ctx context.Context, gymID, classID string) (*Class, error) {
	c, err := s.repo.GetByID(ctx, gymID, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("load class: %w", err)
	}
	return c, nil
}
