package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ValidationErrorResponse is returned when request binding or struct validation fails.
type ValidationErrorResponse struct {
	Error   string            `json:"error" example:"validation failed"`
	Details []ValidationError `json:"details"`
}

// GymURI binds the tenant path parameter shared by every per-gym route.
type GymURI struct {
	GymID string `uri:"gymID" binding:"required,uuid"`
}
