package class

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

// @Summary      List class templates
// @Tags         classes
// @Produce      json
// @Param        gymID path string true "Gym ID" format(uuid)
// @Success      200 {array} class.Class
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	var uri api.GymURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	classes, err := h.service.ListClasses(c.Request.Context(), uri.GymID)
	if err != nil {
		api.RespondError(c, "class.list", err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

// @Summary      Get a class template with its weekly patterns
// @Tags         classes
// @Produce      json
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        classID path string true "Class ID" format(uuid)
// @Success      200 {object} class.ClassDetail
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/classes/{classID} [get]
func (h *Handler) GetClass(c *gin.Context) {
	var uri ClassURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	detail, err := h.service.GetClass(c.Request.Context(), uri.GymID, uri.ClassID)
	if err != nil {
		api.RespondError(c, "class.get", err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// @Summary      Create a class template
// @Description  Staff only. Patterns are optional and can be replaced later.
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        request body class.CreateClassRequest true "Class payload"
// @Success      201 {object} class.ClassDetail
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var uri api.GymURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	detail, err := h.service.CreateClass(c.Request.Context(), uri.GymID, req)
	if err != nil {
		api.RespondError(c, "class.create", err)
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// @Summary      Update a class template
// @Description  Staff only. Setting is_active to false stops expansion of the class.
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        classID path string true "Class ID" format(uuid)
// @Param        request body class.UpdateClassRequest true "Fields to change"
// @Success      200 {object} class.Class
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/classes/{classID} [patch]
func (h *Handler) UpdateClass(c *gin.Context) {
	var uri ClassURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	updated, err := h.service.UpdateClass(c.Request.Context(), uri.GymID, uri.ClassID, req)
	if err != nil {
		api.RespondError(c, "class.update", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary      Replace weekly patterns
// @Description  Staff only. The given set replaces all existing patterns of the class.
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path string true "Gym ID" format(uuid)
// @Param        classID path string true "Class ID" format(uuid)
// @Param        request body class.ReplacePatternsRequest true "Patterns"
// @Success      200 {object} class.ClassDetail
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/classes/{classID}/patterns [put]
func (h *Handler) ReplacePatterns(c *gin.Context) {
	var uri ClassURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.RespondBindError(c, err)
		return
	}

	var req ReplacePatternsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	detail, err := h.service.ReplacePatterns(c.Request.Context(), uri.GymID, uri.ClassID, req.Patterns)
	if err != nil {
		api.RespondError(c, "class.replace_patterns", err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
