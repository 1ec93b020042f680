// Package emailtest provides a mock email.Notifier.
package emailtest

import (
	"context"

	"rocketfist/internal/email"

	"github.com/stretchr/testify/mock"
)

type Notifier struct {
	mock.Mock
}

func (n *Notifier) RegistrationConfirmed(ctx context.Context, msg email.RegistrationConfirmed) error {
	return n.Called(ctx, msg).Error(0)
}

func (n *Notifier) ClassCancelled(ctx context.Context, msg email.ClassCancelled) error {
	return n.Called(ctx, msg).Error(0)
}
