package schedule

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

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

func (m *MockService) GetSchedule(ctx context.Context, gymID string, q ScheduleQuery) ([]Entry, error) {
	args := m.Called(ctx, gymID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

func (m *MockService) Today(ctx context.Context, gymID string) ([]Summary, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Summary), args.Error(1)
}

func (m *MockService) ExpandClass(ctx context.Context, gymID, classID string, req ExpandRequest) (*ExpandResult, error) {
	args := m.Called(ctx, gymID, classID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExpandResult), args.Error(1)
}

func (m *MockService) ExpandAll(ctx context.Context) (*RunSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RunSummary), args.Error(1)
}

func (m *MockService) CreateInstance(ctx context.Context, gymID string, req CreateInstanceRequest) (*Instance, error) {
	args := m.Called(ctx, gymID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Instance), args.Error(1)
}

func (m *MockService) CancelInstance(ctx context.Context, gymID, instanceID string) (*Entry, error) {
	args := m.Called(ctx, gymID, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Entry), args.Error(1)
}

func (m *MockService) CompleteInstance(ctx context.Context, gymID, instanceID string) (*Entry, error) {
	args := m.Called(ctx, gymID, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Entry), args.Error(1)
}

func setupRouter(svc Service) *gin.Engine {
	h := NewHandler(svc)
	router := gin.New()
	router.GET("/gyms/:gymID/schedule", h.GetSchedule)
	router.GET("/gyms/:gymID/schedule/today", h.Today)
	router.POST("/gyms/:gymID/classes/:classID/expand", h.ExpandClass)
	router.POST("/gyms/:gymID/instances", h.CreateInstance)
	router.POST("/gyms/:gymID/instances/:instanceID/cancel", h.CancelInstance)
	router.POST("/gyms/:gymID/instances/:instanceID/complete", h.CompleteInstance)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, r)
	return w
}

func TestGetSchedule_Handler(t *testing.T) {
	svc := new(MockService)
	svc.On("GetSchedule", mock.Anything, testGymID, ScheduleQuery{Start: "2024-05-13", End: "2024-05-19"}).
		Return([]Entry{{ClassName: "Beginner BJJ"}}, nil)

	w := serve(setupRouter(svc), http.MethodGet, "/gyms/"+testGymID+"/schedule?start=2024-05-13&end=2024-05-19", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Beginner BJJ")
}

func TestGetSchedule_Handler_BadDates(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing end", "?start=2024-05-13"},
		{"wrong format", "?start=05/13/2024&end=2024-05-19"},
		{"no params", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			w := serve(setupRouter(svc), http.MethodGet, "/gyms/"+testGymID+"/schedule"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "GetSchedule", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetSchedule_Handler_UnknownGym(t *testing.T) {
	svc := new(MockService)
	svc.On("GetSchedule", mock.Anything, testGymID, mock.Anything).Return(nil, gym.ErrGymNotFound)

	w := serve(setupRouter(svc), http.MethodGet, "/gyms/"+testGymID+"/schedule?start=2024-05-13&end=2024-05-19", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToday_Handler(t *testing.T) {
	svc := new(MockService)
	svc.On("Today", mock.Anything, testGymID).Return([]Summary{{ReservedCount: 4, CheckedInCount: 2}}, nil)

	w := serve(setupRouter(svc), http.MethodGet, "/gyms/"+testGymID+"/schedule/today", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reserved_count":4`)
}

func TestExpandClass_Handler_EmptyBody(t *testing.T) {
	svc := new(MockService)
	svc.On("ExpandClass", mock.Anything, testGymID, testClassID, ExpandRequest{}).
		Return(&ExpandResult{ClassID: testClassID, Requested: 9, Created: 9}, nil)

	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/classes/"+testClassID+"/expand", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"created":9`)
}

func TestExpandClass_Handler_Weeks(t *testing.T) {
	svc := new(MockService)
	svc.On("ExpandClass", mock.Anything, testGymID, testClassID, ExpandRequest{Weeks: []int{-1, 0, 1}}).
		Return(&ExpandResult{ClassID: testClassID}, nil)

	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/classes/"+testClassID+"/expand", `{"weeks":[-1,0,1]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestExpandClass_Handler_WeekOutOfRange(t *testing.T) {
	svc := new(MockService)

	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/classes/"+testClassID+"/expand", `{"weeks":[100]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpandClass_Handler_Inactive(t *testing.T) {
	svc := new(MockService)
	svc.On("ExpandClass", mock.Anything, testGymID, testClassID, mock.Anything).Return(nil, ErrClassInactive)

	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/classes/"+testClassID+"/expand", "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"class is not active"}`, w.Body.String())
}

func TestCreateInstance_Handler(t *testing.T) {
	svc := new(MockService)
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.On("CreateInstance", mock.Anything, testGymID, mock.MatchedBy(func(req CreateInstanceRequest) bool {
		return req.ClassID == testClassID && req.StartTime.Equal(start)
	})).Return(&Instance{ID: testInstanceID}, nil)

	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/instances",
		`{"class_id":"`+testClassID+`","start_time":"2024-06-01T09:00:00Z"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCancelInstance_Handler(t *testing.T) {
	svc := new(MockService)
	svc.On("CancelInstance", mock.Anything, testGymID, testInstanceID).
		Return(&Entry{Instance: Instance{ID: testInstanceID, Status: StatusCancelled}}, nil)

	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/instances/"+testInstanceID+"/cancel", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
}

func TestCompleteInstance_Handler_InvalidState(t *testing.T) {
	svc := new(MockService)
	svc.On("CompleteInstance", mock.Anything, testGymID, testInstanceID).
		Return(nil, invalidTransition(StatusCancelled, StatusCompleted))

	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/instances/"+testInstanceID+"/complete", "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"cannot move a cancelled instance to completed"}`, w.Body.String())
}
