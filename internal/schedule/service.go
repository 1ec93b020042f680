package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rocketfist/internal/api"
	"rocketfist/internal/class"
	"rocketfist/internal/db"
	"rocketfist/internal/email"
	"rocketfist/internal/gym"
	"rocketfist/internal/logger"
	"rocketfist/internal/metrics"
)

var (
	ErrInstanceNotFound = api.NewError(api.ErrNotFound, "class instance not found")
	ErrInstanceExists   = api.NewError(api.ErrConflict, "an instance of this class already starts at that time")
	ErrClassInactive    = api.NewError(api.ErrInvalidState, "class is not active")
	ErrNoPatterns       = api.NewError(api.ErrValidation, "class has no weekly patterns to expand")
	ErrUnknownCoach     = api.NewError(api.ErrValidation, "coach does not exist")
)

func invalidTransition(from, to Status) error {
	return api.Errorf(api.ErrInvalidState, "cannot move a %s instance to %s", from, to)
}

// ClassSource is the part of class.Service that scheduling reads from.
type ClassSource interface {
	FindClass(ctx context.Context, gymID, classID string) (*class.ClassDetail, error)
	ListExpandable(ctx context.Context) ([]class.ClassDetail, error)
}

type Service interface {
	GetSchedule(ctx context.Context, gymID string, q ScheduleQuery) ([]Entry, error)
	Today(ctx context.Context, gymID string) ([]Summary, error)
	ExpandClass(ctx context.Context, gymID, classID string, req ExpandRequest) (*ExpandResult, error)
	ExpandAll(ctx context.Context) (*RunSummary, error)
	CreateInstance(ctx context.Context, gymID string, req CreateInstanceRequest) (*Instance, error)
	CancelInstance(ctx context.Context, gymID, instanceID string) (*Entry, error)
	CompleteInstance(ctx context.Context, gymID, instanceID string) (*Entry, error)
}

type service struct {
	repo       Repository
	gyms       gym.Guard
	classes    ClassSource
	notifier   email.Notifier
	weeksAhead int
	now        func() time.Time
}

func NewService(repo Repository, gyms gym.Guard, classes ClassSource, notifier email.Notifier, weeksAhead int) Service {
	return &service{
		repo:       repo,
		gyms:       gyms,
		classes:    classes,
		notifier:   notifier,
		weeksAhead: weeksAhead,
		now:        time.Now,
	}
}

func (s *service) GetSchedule(ctx context.Context, gymID string, q ScheduleQuery) ([]Entry, error) {
	g, err := s.gyms.Require(ctx, gymID)
	if err != nil {
		return nil, err
	}

	window, err := api.ParseDateRange(q.Start, q.End, g.Location())
	if err != nil {
		return nil, err
	}

	return s.repo.ListSchedule(ctx, gymID, window.From, window.Until)
}

func (s *service) Today(ctx context.Context, gymID string) ([]Summary, error) {
	g, err := s.gyms.Require(ctx, gymID)
	if err != nil {
		return nil, err
	}

	day := api.Day(s.now().In(g.Location()))
	return s.repo.ListSummaries(ctx, gymID, day.From, day.Until)
}

func (s *service) ExpandClass(ctx context.Context, gymID, classID string, req ExpandRequest) (*ExpandResult, error) {
	g, err := s.gyms.Require(ctx, gymID)
	if err != nil {
		return nil, err
	}

	detail, err := s.classes.FindClass(ctx, gymID, classID)
	if err != nil {
		return nil, err
	}

	weeks := req.Weeks
	if len(weeks) == 0 {
		weeks = WeekRange(0, s.weeksAhead)
	}
	anchor := s.now()
	if req.Anchor != nil {
		anchor = *req.Anchor
	}

	return s.expand(ctx, g, detail, weeks, anchor)
}

func (s *service) expand(ctx context.Context, g *gym.Gym, detail *class.ClassDetail, weeks []int, anchor time.Time) (*ExpandResult, error) {
	if !detail.IsActive {
		return nil, ErrClassInactive
	}
	if len(detail.Patterns) == 0 {
		return nil, ErrNoPatterns
	}

	slots, err := Expand(&detail.Class, detail.Patterns, weeks, anchor, g.Location())
	if err != nil {
		return nil, err
	}

	created, err := s.repo.UpsertSlots(ctx, detail.ID, g.ID, detail.DefaultCoachUserID, slots)
	if err != nil {
		return nil, fmt.Errorf("store expanded instances: %w", err)
	}

	result := &ExpandResult{
		ClassID:   detail.ID,
		Requested: len(slots),
		Created:   created,
		Existing:  len(slots) - created,
	}
	metrics.RecordExpansion(result.Created, result.Existing)
	logger.Info("class expanded",
		"gym_id", g.ID,
		"class_id", detail.ID,
		"requested", result.Requested,
		"created", result.Created,
	)
	return result, nil
}

// ExpandAll rolls every expandable class forward over the configured
// look-ahead. A failing class is logged and counted, the rest still run.
func (s *service) ExpandAll(ctx context.Context) (*RunSummary, error) {
	details, err := s.classes.ListExpandable(ctx)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{}
	gyms := make(map[string]*gym.Gym)
	weeks := WeekRange(0, s.weeksAhead)
	anchor := s.now()

	for i := range details {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		detail := &details[i]
		summary.Classes++

		g, ok := gyms[detail.GymID]
		if !ok {
			g, err = s.gyms.Require(ctx, detail.GymID)
			if err != nil {
				summary.Failed++
				logger.Warn("expansion skipped class", "class_id", detail.ID, "gym_id", detail.GymID, "error", err)
				continue
			}
			gyms[detail.GymID] = g
		}

		result, err := s.expand(ctx, g, detail, weeks, anchor)
		if err != nil {
			summary.Failed++
			logger.Warn("expansion failed for class", "class_id", detail.ID, "gym_id", detail.GymID, "error", err)
			continue
		}
		summary.Created += result.Created
		summary.Existing += result.Existing
	}

	return summary, nil
}

func (s *service) CreateInstance(ctx context.Context, gymID string, req CreateInstanceRequest) (*Instance, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}

	detail, err := s.classes.FindClass(ctx, gymID, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !detail.IsActive {
		return nil, ErrClassInactive
	}

	capacity := CapacityFor(&detail.Class)
	if req.MaxCapacity != nil {
		capacity = *req.MaxCapacity
	}
	coach := detail.DefaultCoachUserID
	if req.CoachUserID != nil {
		coach = req.CoachUserID
	}

	inst, err := s.repo.CreateInstance(ctx, &Instance{
		ClassID:     detail.ID,
		GymID:       gymID,
		CoachUserID: coach,
		StartTime:   req.StartTime,
		EndTime:     req.StartTime.Add(detail.Duration()),
		MaxCapacity: capacity,
		Status:      StatusScheduled,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrInstanceExists
		case db.IsForeignKeyViolation(err):
			return nil, ErrUnknownCoach
		}
		return nil, fmt.Errorf("create instance: %w", err)
	}
	return inst, nil
}

func (s *service) CancelInstance(ctx context.Context, gymID, instanceID string) (*Entry, error) {
	g, err := s.gyms.Require(ctx, gymID)
	if err != nil {
		return nil, err
	}

	entry, released, err := s.repo.Transition(ctx, gymID, instanceID, StatusCancelled)
	if err != nil {
		return nil, err
	}

	if len(released) > 0 {
		metrics.RegistrationsTotal.WithLabelValues("cancelled").Add(float64(len(released)))
		err := s.notifier.ClassCancelled(ctx, email.ClassCancelled{
			Recipients: released,
			GymName:    g.Name,
			ClassName:  entry.ClassName,
			StartTime:  entry.StartTime,
			Location:   g.Location(),
		})
		if err != nil {
			logger.Warn("cancellation notices not fully queued", "instance_id", instanceID, "error", err)
		}
	}

	return entry, nil
}

func (s *service) CompleteInstance(ctx context.Context, gymID, instanceID string) (*Entry, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}

	entry, _, err := s.repo.Transition(ctx, gymID, instanceID, StatusCompleted)
	if err != nil {
		return nil, err
	}
	return entry, nil
}
