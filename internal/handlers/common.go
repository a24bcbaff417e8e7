package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/talakunchi/exam-portal-service/internal/errors"
	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// BaseHandler provides common logging and response helpers for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...any) {
	fields := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
	}
	fields = append(fields, additionalFields...)
	h.logger.Info(message, fields...)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.Error(message,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", statusCode,
			"error", err)
	}
	c.JSON(statusCode, ErrorResponse{Message: message})
}

// handleServiceError translates service errors into HTTP responses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidationError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case services.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case services.IsConflictError(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	case services.IsUnauthorizedError(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	default:
		h.logger.Error("Unhandled service error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
