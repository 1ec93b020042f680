package registration

import (
	"net/http"

	"rocketfist/internal/api"
	"rocketfist/internal/auth"

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

func actorFrom(c *gin.Context) (Actor, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return Actor{}, false
	}
	role, _ := auth.GetUserRole(c)
	return Actor{UserID: userID, Staff: auth.IsStaff(role)}, true
}

// @Summary      Instance roster
// @Description  Staff only. Non-cancelled registrations ordered by member name, with reserved and checked-in counts.
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        instanceID path string true "Instance ID" format(uuid)
// @Success      200 {object} registration.Roster
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/instances/{instanceID}/roster [get]
func (h *Handler) GetRoster(c *gin.Context) {
	var uri InstanceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	roster, err := h.service.GetRoster(c.Request.Context(), uri.GymID, uri.InstanceID)
	if err != nil {
		api.RespondError(c, "registration.roster", err)
		return
	}

	c.JSON(http.StatusOK, roster)
}

// @Summary      Reserve a spot
// @Description  Members reserve for themselves. Staff may pass user_id to register someone else.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        instanceID path string true "Instance ID" format(uuid)
// @Param        request body registration.RegisterRequest false "Member to register"
// @Success      201 {object} registration.Registration
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/instances/{instanceID}/registrations [post]
func (h *Handler) Register(c *gin.Context) {
	var uri InstanceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	var req RegisterRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			api.RespondBindError(c, err)
			return
		}
	}

	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	userID := actor.UserID
	if req.UserID != nil && *req.UserID != actor.UserID {
		if !actor.Staff {
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Members can only register themselves"})
			return
		}
		userID = *req.UserID
	}

	reg, err := h.service.Register(c.Request.Context(), uri.GymID, uri.InstanceID, userID)
	if err != nil {
		api.RespondError(c, "registration.register", err)
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// @Summary      Mark present
// @Description  Staff only. Checking in an already checked-in registration is a no-op.
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        registrationID path string true "Registration ID" format(uuid)
// @Success      200 {object} registration.Registration
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/registrations/{registrationID}/check-in [post]
func (h *Handler) CheckIn(c *gin.Context) {
	var uri RegistrationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	reg, err := h.service.MarkPresent(c.Request.Context(), uri.GymID, uri.RegistrationID)
	if err != nil {
		api.RespondError(c, "registration.check_in", err)
		return
	}

	c.JSON(http.StatusOK, reg)
}

// @Summary      Mark no-show
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        registrationID path string true "Registration ID" format(uuid)
// @Success      200 {object} registration.Registration
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/registrations/{registrationID}/no-show [post]
func (h *Handler) NoShow(c *gin.Context) {
	var uri RegistrationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	reg, err := h.service.MarkNoShow(c.Request.Context(), uri.GymID, uri.RegistrationID)
	if err != nil {
		api.RespondError(c, "registration.no_show", err)
		return
	}

	c.JSON(http.StatusOK, reg)
}

// @Summary      Cancel a registration
// @Description  Members may cancel only their own reservations.
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        registrationID path string true "Registration ID" format(uuid)
// @Success      200 {object} registration.Registration
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/registrations/{registrationID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	var uri RegistrationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	reg, err := h.service.Cancel(c.Request.Context(), uri.GymID, uri.RegistrationID, actor)
	if err != nil {
		api.RespondError(c, "registration.cancel", err)
		return
	}

	c.JSON(http.StatusOK, reg)
}
