package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/services"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a success response.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler provides common respond/log functionality for all
// handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.LogError(err, message,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", statusCode)
	}
	c.JSON(statusCode, ErrorResponse{Message: message})
}

func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

// RespondServiceError maps the service error taxonomy onto HTTP
// statuses.
func (h *BaseHandler) RespondServiceError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case services.IsAuthorization(err):
		status = http.StatusForbidden
	case err == services.ErrTransfersDisabled:
		status = http.StatusForbidden
	case services.IsNotFound(err):
		status = http.StatusNotFound
	case services.IsStateConflict(err):
		status = http.StatusConflict
	case services.IsConfiguration(err):
		status = http.StatusUnprocessableEntity
	case services.IsValidation(err):
		status = http.StatusBadRequest
	}
	h.RespondWithError(c, status, err.Error(), err)
}
