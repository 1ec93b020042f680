package email

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Notifier queues member-facing notifications for class events.
type Notifier interface {
	RegistrationConfirmed(ctx context.Context, n RegistrationConfirmed) error
	ClassCancelled(ctx context.Context, n ClassCancelled) error
}

type Recipient struct {
	Email string `db:"email"`
	Name  string `db:"full_name"`
}

type RegistrationConfirmed struct {
	Recipient
	GymName   string
	ClassName string
	StartTime time.Time
	Location  *time.Location
}

type ClassCancelled struct {
	Recipients []Recipient
	GymName    string
	ClassName  string
	StartTime  time.Time
	Location   *time.Location
}

const whenLayout = "Mon Jan 2, 2006 at 3:04 PM MST"

func localTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(whenLayout)
}

func greeting(name string) string {
	if name == "" {
		return "Hi"
	}
	return "Hi " + name
}

func (s *Service) RegistrationConfirmed(ctx context.Context, n RegistrationConfirmed) error {
	subject := "You're booked - " + n.ClassName
	body := fmt.Sprintf(`%s,

Your spot is reserved.

Class: %s
Gym: %s
Time: %s

See you on the mats!

- %s`, greeting(n.Name), n.ClassName, n.GymName, localTime(n.StartTime, n.Location), s.fromName)

	return s.Send(ctx, KindRegistrationConfirmed, n.Email, n.Name, subject, body)
}

// ClassCancelled queues one email per recipient and returns the joined
// errors of the sends that failed.
func (s *Service) ClassCancelled(ctx context.Context, n ClassCancelled) error {
	subject := "Class cancelled - " + n.ClassName
	when := localTime(n.StartTime, n.Location)

	var errs []error
	for _, r := range n.Recipients {
		body := fmt.Sprintf(`%s,

The following class has been cancelled:

Class: %s
Gym: %s
Time: %s

Your reservation has been released.

- %s`, greeting(r.Name), n.ClassName, n.GymName, when, s.fromName)

		if err := s.Send(ctx, KindClassCancelled, r.Email, r.Name, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
