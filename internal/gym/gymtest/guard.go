// Package gymtest provides a mock gym.Guard for service tests.
package gymtest

import (
	"context"

	"rocketfist/internal/gym"

	"github.com/stretchr/testify/mock"
)

type Guard struct {
	mock.Mock
}

func (g *Guard) Require(ctx context.Context, id string) (*gym.Gym, error) {
	args := g.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

// Found returns a guard that resolves id to a gym in timezone tz.
func Found(id, tz string) *Guard {
	g := new(Guard)
	g.On("Require", mock.Anything, id).Return(&gym.Gym{ID: id, Name: "Nova Combat Academy", Timezone: tz}, nil)
	return g
}

// Missing returns a guard that reports id as not found.
func Missing(id string) *Guard {
	g := new(Guard)
	g.On("Require", mock.Anything, id).Return(nil, gym.ErrGymNotFound)
	return g
}
