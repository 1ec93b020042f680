package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

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

func (m *MockService) ListPlans(ctx context.Context, gymID string) ([]Plan, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Plan), args.Error(1)
}

func (m *MockService) Revenue(ctx context.Context, gymID string, q RevenueQuery) (*Revenue, error) {
	args := m.Called(ctx, gymID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Revenue), args.Error(1)
}

func setupRouter(svc Service) *gin.Engine {
	h := NewHandler(svc)
	router := gin.New()
	router.GET("/gyms/:gymID/plans", h.ListPlans)
	router.GET("/gyms/:gymID/stats/revenue", h.GetRevenue)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetRevenue_Handler(t *testing.T) {
	svc := new(MockService)
	svc.On("Revenue", mock.Anything, testGymID, RevenueQuery{From: "2024-05-01", To: "2024-05-31"}).
		Return(&Revenue{TotalRevenueCents: 24800, Currency: "USD", ByCurrency: []CurrencyTotal{{Currency: "USD", TotalCents: 24800}}}, nil)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/stats/revenue?from=2024-05-01&to=2024-05-31")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalRevenueCents":24800`)
	assert.Contains(t, w.Body.String(), `"byCurrency":[{"currency":"USD","totalCents":24800}]`)
}

func TestGetRevenue_Handler_MissingParams(t *testing.T) {
	svc := new(MockService)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/stats/revenue?from=2024-05-01")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Revenue", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetRevenue_Handler_BadCurrency(t *testing.T) {
	svc := new(MockService)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/stats/revenue?from=2024-05-01&to=2024-05-31&currency=DOLLARS")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"tag":"iso4217"`)
	svc.AssertNotCalled(t, "Revenue", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetRevenue_Handler_LowerCaseCurrency(t *testing.T) {
	svc := new(MockService)
	want := RevenueQuery{From: "2024-05-01", To: "2024-05-31", Currency: "USD"}
	svc.On("Revenue", mock.Anything, testGymID, want).
		Return(&Revenue{TotalRevenueCents: 24800, Currency: "USD", ByCurrency: []CurrencyTotal{{Currency: "USD", TotalCents: 24800}}}, nil)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/stats/revenue?from=2024-05-01&to=2024-05-31&currency=usd")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGetRevenue_Handler_SeveralCurrencies(t *testing.T) {
	svc := new(MockService)
	svc.On("Revenue", mock.Anything, testGymID, mock.Anything).Return(nil, ErrCurrencyRequired)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/stats/revenue?from=2024-05-01&to=2024-05-31")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "pass currency")
}

func TestListPlans_Handler(t *testing.T) {
	svc := new(MockService)
	svc.On("ListPlans", mock.Anything, testGymID).Return([]Plan{{Name: "Unlimited Monthly", PriceCents: 14900}}, nil)

	w := get(setupRouter(svc), "/gyms/"+testGymID+"/plans")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unlimited Monthly")
}
