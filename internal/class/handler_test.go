package class

import (
	"bytes"
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

func (m *MockService) ListClasses(ctx context.Context, gymID string) ([]Class, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Class), args.Error(1)
}

func (m *MockService) GetClass(ctx context.Context, gymID, classID string) (*ClassDetail, error) {
	args := m.Called(ctx, gymID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassDetail), args.Error(1)
}

func (m *MockService) FindClass(ctx context.Context, gymID, classID string) (*ClassDetail, error) {
	args := m.Called(ctx, gymID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassDetail), args.Error(1)
}

func (m *MockService) CreateClass(ctx context.Context, gymID string, req CreateClassRequest) (*ClassDetail, error) {
	args := m.Called(ctx, gymID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassDetail), args.Error(1)
}

func (m *MockService) UpdateClass(ctx context.Context, gymID, classID string, req UpdateClassRequest) (*Class, error) {
	args := m.Called(ctx, gymID, classID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Class), args.Error(1)
}

func (m *MockService) ReplacePatterns(ctx context.Context, gymID, classID string, patterns []PatternInput) (*ClassDetail, error) {
	args := m.Called(ctx, gymID, classID, patterns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassDetail), args.Error(1)
}

func (m *MockService) ListExpandable(ctx context.Context) ([]ClassDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClassDetail), args.Error(1)
}

func setupRouter(svc Service) *gin.Engine {
	h := NewHandler(svc)
	router := gin.New()
	router.GET("/gyms/:gymID/classes", h.ListClasses)
	router.POST("/gyms/:gymID/classes", h.CreateClass)
	router.GET("/gyms/:gymID/classes/:classID", h.GetClass)
	router.PATCH("/gyms/:gymID/classes/:classID", h.UpdateClass)
	router.PUT("/gyms/:gymID/classes/:classID/patterns", h.ReplacePatterns)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestListClasses_Handler(t *testing.T) {
	svc := new(MockService)
	svc.On("ListClasses", mock.Anything, testGymID).Return([]Class{{ID: testClassID, Name: "Beginner BJJ"}}, nil)

	w := serve(setupRouter(svc), http.MethodGet, "/gyms/"+testGymID+"/classes", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Beginner BJJ")
}

func TestListClasses_Handler_UnknownGym(t *testing.T) {
	svc := new(MockService)
	svc.On("ListClasses", mock.Anything, testGymID).Return(nil, gym.ErrGymNotFound)

	w := serve(setupRouter(svc), http.MethodGet, "/gyms/"+testGymID+"/classes", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"gym not found"}`, w.Body.String())
}

func TestCreateClass_Handler(t *testing.T) {
	svc := new(MockService)
	svc.On("CreateClass", mock.Anything, testGymID, mock.MatchedBy(func(req CreateClassRequest) bool {
		return req.Name == "Beginner BJJ" && len(req.Patterns) == 3
	})).Return(&ClassDetail{Class: Class{ID: testClassID}}, nil)

	body := `{"name":"Beginner BJJ","discipline":"bjj","skill_level":"beginner","default_duration_minutes":60,
		"patterns":[{"day_of_week":1,"hour":18,"minute":0},{"day_of_week":3,"hour":18,"minute":0},{"day_of_week":5,"hour":18,"minute":0}]}`
	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/classes", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateClass_Handler_RejectsBadPattern(t *testing.T) {
	svc := new(MockService)

	body := `{"name":"Beginner BJJ","discipline":"bjj","skill_level":"beginner","default_duration_minutes":60,
		"patterns":[{"day_of_week":7,"hour":18,"minute":0}]}`
	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/classes", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DayOfWeek")
	svc.AssertNotCalled(t, "CreateClass", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateClass_Handler_ZeroDuration(t *testing.T) {
	svc := new(MockService)

	body := `{"name":"Open Mat","discipline":"bjj","skill_level":"all","default_duration_minutes":0}`
	w := serve(setupRouter(svc), http.MethodPost, "/gyms/"+testGymID+"/classes", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateClass_Handler_Deactivate(t *testing.T) {
	svc := new(MockService)
	svc.On("UpdateClass", mock.Anything, testGymID, testClassID, mock.MatchedBy(func(req UpdateClassRequest) bool {
		return req.IsActive != nil && !*req.IsActive && req.Name == nil
	})).Return(&Class{ID: testClassID, IsActive: false}, nil)

	w := serve(setupRouter(svc), http.MethodPatch, "/gyms/"+testGymID+"/classes/"+testClassID, `{"is_active":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReplacePatterns_Handler(t *testing.T) {
	svc := new(MockService)
	svc.On("ReplacePatterns", mock.Anything, testGymID, testClassID, []PatternInput{{DayOfWeek: 2, Hour: 7, Minute: 30}}).
		Return(&ClassDetail{Class: Class{ID: testClassID}}, nil)

	w := serve(setupRouter(svc), http.MethodPut, "/gyms/"+testGymID+"/classes/"+testClassID+"/patterns",
		`{"patterns":[{"day_of_week":2,"hour":7,"minute":30}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReplacePatterns_Handler_MissingBody(t *testing.T) {
	svc := new(MockService)

	w := serve(setupRouter(svc), http.MethodPut, "/gyms/"+testGymID+"/classes/"+testClassID+"/patterns", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
