package api

import (
	"errors"
	"fmt"
	"net/http"

	"rocketfist/internal/logger"

	"github.com/gin-gonic/gin"
)

// Error kinds. Feature packages wrap one of these so handlers can map any
// error to a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

const internalErrorMessage = "Something went wrong"

// StatusCode returns the HTTP status for err.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an ErrorResponse. Internal errors are logged
// with the operation name and never exposed to the client.
func RespondError(c *gin.Context, op string, err error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"op", op,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(status, ErrorResponse{Error: internalErrorMessage})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NewError returns an error carrying msg for clients that matches kind
// under errors.Is.
func NewError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Errorf is NewError with a formatted message.
func Errorf(kind error, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}
