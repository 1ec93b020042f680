package registration

import (
	"context"
	"time"

	"rocketfist/internal/email"
)

type Repository interface {
	GetInstance(ctx context.Context, gymID, instanceID string) (*InstanceInfo, error)
	// ListForRoster returns the non-cancelled registrations of an instance
	// joined to member profiles.
	ListForRoster(ctx context.Context, instanceID string) ([]RosterEntry, error)
	// Register reserves a spot under a lock on the instance row.
	Register(ctx context.Context, gymID, instanceID, userID string) (*Registration, *InstanceInfo, error)
	// Transition applies r to one registration under a row lock. ownerID,
	// when set, restricts the change to that member's own registration.
	Transition(ctx context.Context, gymID, registrationID, ownerID string, r rule, now time.Time) (*Registration, bool, error)
	GetRecipient(ctx context.Context, userID string) (*email.Recipient, error)
}
