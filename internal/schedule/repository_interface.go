package schedule

import (
	"context"
	"time"

	"rocketfist/internal/email"
)

type Repository interface {
	ListSchedule(ctx context.Context, gymID string, from, until time.Time) ([]Entry, error)
	ListSummaries(ctx context.Context, gymID string, from, until time.Time) ([]Summary, error)
	// UpsertSlots inserts the slots keyed on (class_id, start_time) and
	// returns how many rows were new.
	UpsertSlots(ctx context.Context, classID, gymID string, coachUserID *string, slots []Slot) (int, error)
	// CreateInstance returns sql.ErrNoRows when an instance already exists
	// at the same start time.
	CreateInstance(ctx context.Context, inst *Instance) (*Instance, error)
	// Transition moves a scheduled instance to next. Cancelling releases
	// every reserved registration and returns the affected members.
	Transition(ctx context.Context, gymID, instanceID string, next Status) (*Entry, []email.Recipient, error)
}
