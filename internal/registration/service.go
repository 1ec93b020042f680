package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rocketfist/internal/api"
	"rocketfist/internal/email"
	"rocketfist/internal/gym"
	"rocketfist/internal/logger"
	"rocketfist/internal/metrics"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInstanceNotFound     = api.NewError(api.ErrNotFound, "class instance not found")
	ErrRegistrationNotFound = api.NewError(api.ErrNotFound, "registration not found")
	ErrInstanceNotOpen      = api.NewError(api.ErrInvalidState, "class instance is not open for registration")
	ErrClassFull            = api.NewError(api.ErrConflict, "class is full")
	ErrAlreadyRegistered    = api.NewError(api.ErrConflict, "member is already registered for this class")
	ErrUnknownMember        = api.NewError(api.ErrValidation, "member does not exist")
	ErrNotGymMember         = api.NewError(api.ErrNotFound, "member does not belong to this gym")
)

type Service interface {
	GetRoster(ctx context.Context, gymID, instanceID string) (*Roster, error)
	Register(ctx context.Context, gymID, instanceID, userID string) (*Registration, error)
	MarkPresent(ctx context.Context, gymID, registrationID string) (*Registration, error)
	MarkNoShow(ctx context.Context, gymID, registrationID string) (*Registration, error)
	Cancel(ctx context.Context, gymID, registrationID string, actor Actor) (*Registration, error)
}

type service struct {
	repo     Repository
	gyms     gym.Guard
	notifier email.Notifier
	now      func() time.Time
}

func NewService(repo Repository, gyms gym.Guard, notifier email.Notifier) Service {
	return &service{
		repo:     repo,
		gyms:     gyms,
		notifier: notifier,
		now:      time.Now,
	}
}

// GetRoster reads the instance header and its registrations concurrently
// once the gym is known to exist. Counts are always derived from the rows.
func (s *service) GetRoster(ctx context.Context, gymID, instanceID string) (*Roster, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, err
	}

	var (
		info *InstanceInfo
		rows []RosterEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = s.repo.GetInstance(gctx, gymID, instanceID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInstanceNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.repo.ListForRoster(gctx, instanceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roster := BuildRoster(*info, rows)
	return &roster, nil
}

func (s *service) Register(ctx context.Context, gymID, instanceID, userID string) (*Registration, error) {
	g, err := s.gyms.Require(ctx, gymID)
	if err != nil {
		return nil, err
	}

	reg, info, err := s.repo.Register(ctx, gymID, instanceID, userID)
	if err != nil {
		if errors.Is(err, ErrClassFull) {
			metrics.RecordRegistration("rejected_full")
		}
		return nil, err
	}
	metrics.RecordRegistration(string(StatusReserved))

	s.confirm(ctx, g, info, userID)
	return reg, nil
}

func (s *service) confirm(ctx context.Context, g *gym.Gym, info *InstanceInfo, userID string) {
	rcpt, err := s.repo.GetRecipient(ctx, userID)
	if err != nil {
		logger.Warn("registration confirmation skipped", "user_id", userID, "error", err)
		return
	}

	err = s.notifier.RegistrationConfirmed(ctx, email.RegistrationConfirmed{
		Recipient: *rcpt,
		GymName:   g.Name,
		ClassName: info.ClassName,
		StartTime: info.StartTime,
		Location:  g.Location(),
	})
	if err != nil {
		logger.Warn("registration confirmation not queued", "user_id", userID, "instance_id", info.ID, "error", err)
	}
}

// MarkPresent checks a reserved member in. Repeating it on a checked-in
// registration succeeds without changing anything.
func (s *service) MarkPresent(ctx context.Context, gymID, registrationID string) (*Registration, error) {
	reg, changed, err := s.transition(ctx, gymID, registrationID, "", checkIn)
	if err != nil {
		return nil, err
	}
	if changed {
		metrics.RecordCheckIn()
		metrics.RecordRegistration(string(StatusCheckedIn))
	}
	return reg, nil
}

func (s *service) MarkNoShow(ctx context.Context, gymID, registrationID string) (*Registration, error) {
	reg, changed, err := s.transition(ctx, gymID, registrationID, "", markNoShow)
	if err != nil {
		return nil, err
	}
	if changed {
		metrics.RecordRegistration(string(StatusNoShow))
	}
	return reg, nil
}

func (s *service) Cancel(ctx context.Context, gymID, registrationID string, actor Actor) (*Registration, error) {
	owner := ""
	if !actor.Staff {
		owner = actor.UserID
	}

	reg, changed, err := s.transition(ctx, gymID, registrationID, owner, cancel)
	if err != nil {
		return nil, err
	}
	if changed {
		metrics.RecordRegistration(string(StatusCancelled))
	}
	return reg, nil
}

func (s *service) transition(ctx context.Context, gymID, registrationID, ownerID string, apply rule) (*Registration, bool, error) {
	if _, err := s.gyms.Require(ctx, gymID); err != nil {
		return nil, false, err
	}

	reg, changed, err := s.repo.Transition(ctx, gymID, registrationID, ownerID, apply, s.now())
	if err != nil {
		if errors.Is(err, api.ErrNotFound) || errors.Is(err, api.ErrInvalidState) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("update registration %s: %w", registrationID, err)
	}
	return reg, changed, nil
}
