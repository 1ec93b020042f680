package registration

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"rocketfist/internal/api"
	"rocketfist/internal/email"
	"rocketfist/internal/email/emailtest"
	"rocketfist/internal/gym"
	"rocketfist/internal/gym/gymtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetInstance(ctx context.Context, gymID, instanceID string) (*InstanceInfo, error) {
	args := m.Called(ctx, gymID, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InstanceInfo), args.Error(1)
}

func (m *MockRepository) ListForRoster(ctx context.Context, instanceID string) ([]RosterEntry, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RosterEntry), args.Error(1)
}

func (m *MockRepository) Register(ctx context.Context, gymID, instanceID, userID string) (*Registration, *InstanceInfo, error) {
	args := m.Called(ctx, gymID, instanceID, userID)
	var reg *Registration
	if r := args.Get(0); r != nil {
		reg = r.(*Registration)
	}
	var info *InstanceInfo
	if i := args.Get(1); i != nil {
		info = i.(*InstanceInfo)
	}
	return reg, info, args.Error(2)
}

// Transition applies r to the status held in the mock's registration so the
// service's rule wiring is exercised as well.
func (m *MockRepository) Transition(ctx context.Context, gymID, registrationID, ownerID string, r rule, now time.Time) (*Registration, bool, error) {
	args := m.Called(ctx, gymID, registrationID, ownerID)
	if err := args.Error(1); err != nil {
		return nil, false, err
	}
	current := *args.Get(0).(*Registration)
	next, changed, err := r(current.Status)
	if err != nil {
		return nil, false, err
	}
	current.Status = next
	if changed && next == StatusCheckedIn {
		current.CheckedInAt = &now
	}
	return &current, changed, nil
}

func (m *MockRepository) GetRecipient(ctx context.Context, userID string) (*email.Recipient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*email.Recipient), args.Error(1)
}

func newTestService(repo Repository, guard gym.Guard, notifier email.Notifier) *service {
	svc := NewService(repo, guard, notifier).(*service)
	svc.now = func() time.Time { return testStart.Add(-10 * time.Minute) }
	return svc
}

func TestService_GetRoster(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetInstance", mock.Anything, testGymID, testInstanceID).
		Return(&InstanceInfo{ID: testInstanceID, ClassName: "Beginner BJJ", MaxCapacity: 30}, nil)
	repo.On("ListForRoster", mock.Anything, testInstanceID).Return([]RosterEntry{
		{RegistrationID: "r1", FullName: "Bea", Status: StatusCheckedIn},
		{RegistrationID: "r2", FullName: "Ana", Status: StatusReserved},
		{RegistrationID: "r3", FullName: "Cid", Status: StatusCancelled},
	}, nil)
	svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), new(emailtest.Notifier))

	roster, err := svc.GetRoster(context.Background(), testGymID, testInstanceID)

	require.NoError(t, err)
	assert.Equal(t, 2, roster.ReservedCount)
	assert.Equal(t, 1, roster.CheckedInCount)
	assert.Equal(t, "Ana", roster.Entries[0].FullName)
	repo.AssertExpectations(t)
}

func TestService_GetRoster_UnknownGymSkipsQueries(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, gymtest.Missing(testGymID), new(emailtest.Notifier))

	roster, err := svc.GetRoster(context.Background(), testGymID, testInstanceID)

	assert.Nil(t, roster)
	assert.ErrorIs(t, err, gym.ErrGymNotFound)
	repo.AssertNotCalled(t, "GetInstance", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListForRoster", mock.Anything, mock.Anything)
}

func TestService_GetRoster_InstanceNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetInstance", mock.Anything, testGymID, testInstanceID).Return(nil, sql.ErrNoRows)
	repo.On("ListForRoster", mock.Anything, testInstanceID).Return([]RosterEntry{}, nil).Maybe()
	svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), new(emailtest.Notifier))

	_, err := svc.GetRoster(context.Background(), testGymID, testInstanceID)

	assert.ErrorIs(t, err, ErrInstanceNotFound)
}

func TestService_Register_QueuesConfirmation(t *testing.T) {
	repo := new(MockRepository)
	info := &InstanceInfo{ID: testInstanceID, ClassName: "Beginner BJJ", StartTime: testStart}
	repo.On("Register", mock.Anything, testGymID, testInstanceID, testUserID).
		Return(&Registration{ID: testRegistrationID, Status: StatusReserved}, info, nil)
	repo.On("GetRecipient", mock.Anything, testUserID).
		Return(&email.Recipient{Email: "ana@example.com", Name: "Ana Lima"}, nil)

	notifier := new(emailtest.Notifier)
	notifier.On("RegistrationConfirmed", mock.Anything, mock.MatchedBy(func(msg email.RegistrationConfirmed) bool {
		return msg.Email == "ana@example.com" && msg.ClassName == "Beginner BJJ" && msg.GymName == "Nova Combat Academy"
	})).Return(nil)

	svc := newTestService(repo, gymtest.Found(testGymID, "America/New_York"), notifier)

	reg, err := svc.Register(context.Background(), testGymID, testInstanceID, testUserID)

	require.NoError(t, err)
	assert.Equal(t, StatusReserved, reg.Status)
	notifier.AssertExpectations(t)
}

func TestService_Register_NotificationFailureDoesNotFail(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Register", mock.Anything, testGymID, testInstanceID, testUserID).
		Return(&Registration{ID: testRegistrationID, Status: StatusReserved}, &InstanceInfo{ID: testInstanceID}, nil)
	repo.On("GetRecipient", mock.Anything, testUserID).
		Return(&email.Recipient{Email: "ana@example.com"}, nil)
	notifier := new(emailtest.Notifier)
	notifier.On("RegistrationConfirmed", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), notifier)

	reg, err := svc.Register(context.Background(), testGymID, testInstanceID, testUserID)

	require.NoError(t, err)
	assert.NotNil(t, reg)
}

func TestService_Register_Full(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Register", mock.Anything, testGymID, testInstanceID, testUserID).Return(nil, nil, ErrClassFull)
	notifier := new(emailtest.Notifier)
	svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), notifier)

	reg, err := svc.Register(context.Background(), testGymID, testInstanceID, testUserID)

	assert.Nil(t, reg)
	assert.True(t, errors.Is(err, api.ErrConflict))
	notifier.AssertNotCalled(t, "RegistrationConfirmed", mock.Anything, mock.Anything)
}

func TestService_Register_UnknownGymSkipsQueries(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, gymtest.Missing(testGymID), new(emailtest.Notifier))

	_, err := svc.Register(context.Background(), testGymID, testInstanceID, testUserID)

	assert.ErrorIs(t, err, gym.ErrGymNotFound)
	repo.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_MarkPresent_Idempotent(t *testing.T) {
	repo := new(MockRepository)
	reserved := &Registration{ID: testRegistrationID, Status: StatusReserved}
	checkedIn := &Registration{ID: testRegistrationID, Status: StatusCheckedIn}
	repo.On("Transition", mock.Anything, testGymID, testRegistrationID, "").Return(reserved, nil).Once()
	repo.On("Transition", mock.Anything, testGymID, testRegistrationID, "").Return(checkedIn, nil).Once()
	svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), new(emailtest.Notifier))

	first, err := svc.MarkPresent(context.Background(), testGymID, testRegistrationID)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, first.Status)
	require.NotNil(t, first.CheckedInAt)

	second, err := svc.MarkPresent(context.Background(), testGymID, testRegistrationID)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, second.Status)

	roster := BuildRoster(InstanceInfo{}, []RosterEntry{{RegistrationID: second.ID, Status: second.Status}})
	assert.Equal(t, 1, roster.CheckedInCount)
	repo.AssertNumberOfCalls(t, "Transition", 2)
}

func TestService_MarkPresent_CancelledRegistration(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Transition", mock.Anything, testGymID, testRegistrationID, "").
		Return(&Registration{ID: testRegistrationID, Status: StatusCancelled}, nil)
	svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), new(emailtest.Notifier))

	_, err := svc.MarkPresent(context.Background(), testGymID, testRegistrationID)

	assert.True(t, errors.Is(err, api.ErrInvalidState))
}

func TestService_MarkPresent_UnknownGymSkipsQueries(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, gymtest.Missing(testGymID), new(emailtest.Notifier))

	_, err := svc.MarkPresent(context.Background(), testGymID, testRegistrationID)

	assert.ErrorIs(t, err, gym.ErrGymNotFound)
	repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_MarkNoShow(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Transition", mock.Anything, testGymID, testRegistrationID, "").
		Return(&Registration{ID: testRegistrationID, Status: StatusReserved}, nil)
	svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), new(emailtest.Notifier))

	reg, err := svc.MarkNoShow(context.Background(), testGymID, testRegistrationID)

	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, reg.Status)
}

func TestService_Cancel_OwnerScope(t *testing.T) {
	t.Run("member limited to own registration", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Transition", mock.Anything, testGymID, testRegistrationID, testUserID).
			Return(&Registration{ID: testRegistrationID, Status: StatusReserved}, nil)
		svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), new(emailtest.Notifier))

		reg, err := svc.Cancel(context.Background(), testGymID, testRegistrationID, Actor{UserID: testUserID})

		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, reg.Status)
		repo.AssertExpectations(t)
	})

	t.Run("staff may cancel any", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Transition", mock.Anything, testGymID, testRegistrationID, "").
			Return(&Registration{ID: testRegistrationID, Status: StatusReserved}, nil)
		svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), new(emailtest.Notifier))

		_, err := svc.Cancel(context.Background(), testGymID, testRegistrationID, Actor{UserID: "staff-1", Staff: true})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("someone else's registration is not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Transition", mock.Anything, testGymID, testRegistrationID, "other-user").
			Return(nil, ErrRegistrationNotFound)
		svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), new(emailtest.Notifier))

		_, err := svc.Cancel(context.Background(), testGymID, testRegistrationID, Actor{UserID: "other-user"})

		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})
}

func TestService_Transition_WrapsInternalErrors(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Transition", mock.Anything, testGymID, testRegistrationID, "").
		Return(nil, errors.New("connection reset"))
	svc := newTestService(repo, gymtest.Found(testGymID, "UTC"), new(emailtest.Notifier))

	_, err := svc.MarkPresent(context.Background(), testGymID, testRegistrationID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), testRegistrationID)
}
