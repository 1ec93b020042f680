package schedule

import (
	"net/http"

	"rocketfist/internal/api"
	"rocketfist/internal/class"

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

// @Summary      Class schedule for a date range
// @Description  Instances starting within [start 00:00, end 24:00) in the gym's time zone, ordered by start time.
// @Tags         schedule
// @Produce      json
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        start query string true "First day (YYYY-MM-DD)"
// @Param        end query string true "Last day, inclusive (YYYY-MM-DD)"
// @Success      200 {array} schedule.Entry
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/schedule [get]
func (h *Handler) GetSchedule(c *gin.Context) {
	var uri api.GymURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	var q ScheduleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.RespondBindError(c, err)
		return
	}

	entries, err := h.service.GetSchedule(c.Request.Context(), uri.GymID, q)
	if err != nil {
		api.RespondError(c, "schedule.list", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// @Summary      Today's classes
// @Description  Instances starting today in the gym's time zone with reserved and checked-in counts.
// @Tags         schedule
// @Produce      json
// @Param        gymID path string true "Gym ID" format(uuid)
// @Success      200 {array} schedule.Summary
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/schedule/today [get]
func (h *Handler) Today(c *gin.Context) {
	var uri api.GymURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	summaries, err := h.service.Today(c.Request.Context(), uri.GymID)
	if err != nil {
		api.RespondError(c, "schedule.today", err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// @Summary      Expand a class into instances
// @Description  Staff only. Creates one instance per weekly pattern and week offset. Instances that already exist are left untouched.
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        classID path string true "Class ID" format(uuid)
// @Param        request body schedule.ExpandRequest false "Week offsets and anchor"
// @Success      200 {object} schedule.ExpandResult
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/classes/{classID}/expand [post]
func (h *Handler) ExpandClass(c *gin.Context) {
	var uri class.ClassURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	var req ExpandRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			api.RespondBindError(c, err)
			return
		}
	}

	result, err := h.service.ExpandClass(c.Request.Context(), uri.GymID, uri.ClassID, req)
	if err != nil {
		api.RespondError(c, "schedule.expand", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Schedule a single instance
// @Description  Staff only. End time follows the class duration; capacity and coach default from the class.
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        request body schedule.CreateInstanceRequest true "Instance payload"
// @Success      201 {object} schedule.Instance
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/instances [post]
func (h *Handler) CreateInstance(c *gin.Context) {
	var uri api.GymURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	var req CreateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	inst, err := h.service.CreateInstance(c.Request.Context(), uri.GymID, req)
	if err != nil {
		api.RespondError(c, "schedule.create_instance", err)
		return
	}

	c.JSON(http.StatusCreated, inst)
}

// @Summary      Cancel an instance
// @Description  Staff only. Releases reserved spots and notifies the affected members.
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        instanceID path string true "Instance ID" format(uuid)
// @Success      200 {object} schedule.Entry
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/instances/{instanceID}/cancel [post]
func (h *Handler) CancelInstance(c *gin.Context) {
	var uri InstanceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	entry, err := h.service.CancelInstance(c.Request.Context(), uri.GymID, uri.InstanceID)
	if err != nil {
		api.RespondError(c, "schedule.cancel_instance", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// @Summary      Complete an instance
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        instanceID path string true "Instance ID" format(uuid)
// @Success      200 {object} schedule.Entry
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/instances/{instanceID}/complete [post]
func (h *Handler) CompleteInstance(c *gin.Context) {
	var uri InstanceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	entry, err := h.service.CompleteInstance(c.Request.Context(), uri.GymID, uri.InstanceID)
	if err != nil {
		api.RespondError(c, "schedule.complete_instance", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}
