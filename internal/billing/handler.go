package billing

import (
	"net/http"
	"strings"

	"rocketfist/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      List membership plans
// @Tags         billing
// @Produce      json
// @Param        gymID path string true "Gym ID" format(uuid)
// @Success      200 {array} billing.Plan
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	var uri api.GymURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	plans, err := h.service.ListPlans(c.Request.Context(), uri.GymID)
	if err != nil {
		api.RespondError(c, "billing.plans", err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// @Summary      Revenue over a date window
// @Description  Sums succeeded payments paid between from 00:00 and to 23:59:59 in the gym's timezone.
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        from query string true "First day (YYYY-MM-DD)"
// @Param        to query string true "Last day (YYYY-MM-DD)"
// @Param        currency query string false "ISO 4217 code of the headline total"
// @Success      200 {object} billing.Revenue
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/stats/revenue [get]
func (h *Handler) GetRevenue(c *gin.Context) {
	var uri api.GymURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	var q RevenueQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.RespondBindError(c, err)
		return
	}
	q.Currency = strings.ToUpper(strings.TrimSpace(q.Currency))
	if errs := api.ValidateStruct(q); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	rev, err := h.service.Revenue(c.Request.Context(), uri.GymID, q)
	if err != nil {
		api.RespondError(c, "billing.revenue", err)
		return
	}

	c.JSON(http.StatusOK, rev)
}
