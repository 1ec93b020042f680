package member

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"rocketfist/internal/gym"
	"rocketfist/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type MockService struct {
	mock.Mock
}

func (m *MockService) ListMembers(ctx context.Context, gymID string) ([]Member, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Member), args.Error(1)
}

func (m *MockService) GetMember(ctx context.Context, gymID, memberID string) (*Member, error) {
	args := m.Called(ctx, gymID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func setupRouter(svc Service) *gin.Engine {
	h := NewHandler(svc)
	router := gin.New()
	router.GET("/gyms/:gymID/members", h.ListMembers)
	router.GET("/gyms/:gymID/members/:memberID", h.GetMember)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListMembers_Handler(t *testing.T) {
	plan := "Unlimited Monthly"
	svc := new(MockService)
	svc.On("ListMembers", mock.Anything, testGymID).
		Return([]Member{{ID: testUserID, FullName: "Ana Lima", Role: "member", MembershipPlan: &plan}}, nil)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/members")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"membership_plan":"Unlimited Monthly"`)
}

func TestListMembers_Handler_UnknownGym(t *testing.T) {
	svc := new(MockService)
	svc.On("ListMembers", mock.Anything, testGymID).Return(nil, gym.ErrGymNotFound)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/members")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMember_Handler(t *testing.T) {
	svc := new(MockService)
	svc.On("GetMember", mock.Anything, testGymID, testUserID).
		Return(&Member{ID: testUserID, FullName: "Ana Lima"}, nil)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/members/"+testUserID)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"membership_plan":null`)
}

func TestGetMember_Handler_InvalidID(t *testing.T) {
	svc := new(MockService)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/members/42")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMember_Handler_NotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("GetMember", mock.Anything, testGymID, testUserID).Return(nil, ErrMemberNotFound)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/members/"+testUserID)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "member not found")
}
