package member

import (
	"net/http"

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

// ListMembers godoc
// @Summary      List members
// @Description  Users with the member role, with their current plan label.
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Success      200 {array} member.Member
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	var uri api.GymURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), uri.GymID)
	if err != nil {
		api.RespondError(c, "member.list", err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// GetMember godoc
// @Summary      Get a member
// @Description  Any gym user by profile id, whatever their role.
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        memberID path string true "User profile ID" format(uuid)
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/members/{memberID} [get]
func (h *Handler) GetMember(c *gin.Context) {
	var uri MemberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	m, err := h.service.GetMember(c.Request.Context(), uri.GymID, uri.MemberID)
	if err != nil {
		api.RespondError(c, "member.get", err)
		return
	}

	c.JSON(http.StatusOK, m)
}
