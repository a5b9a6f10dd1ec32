package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/middleware"
	"github.com/SkillProof-Labs/verification-service/internal/services"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

type AuthorizationHandler struct {
	BaseHandler
	authorization services.AuthorizationService
}

func NewAuthorizationHandler(authorization services.AuthorizationService, logger utils.Logger) *AuthorizationHandler {
	return &AuthorizationHandler{
		BaseHandler:   NewBaseHandler(logger),
		authorization: authorization,
	}
}

// AddCaller handles POST /api/v1/admin/callers/:identity
func (h *AuthorizationHandler) AddCaller(c *gin.Context) {
	err := h.authorization.AddCaller(c.Request.Context(), middleware.Identity(c), c.Param("identity"))
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "caller added", nil)
}

// RemoveCaller handles DELETE /api/v1/admin/callers/:identity
func (h *AuthorizationHandler) RemoveCaller(c *gin.Context) {
	err := h.authorization.RemoveCaller(c.Request.Context(), middleware.Identity(c), c.Param("identity"))
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "caller removed", nil)
}

// IsAuthorized handles GET /api/v1/callers/:identity
func (h *AuthorizationHandler) IsAuthorized(c *gin.Context) {
	authorized, err := h.authorization.IsAuthorized(c.Request.Context(), c.Param("identity"))
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "caller membership", gin.H{"authorized": authorized})
}

// ListCallers handles GET /api/v1/callers
func (h *AuthorizationHandler) ListCallers(c *gin.Context) {
	callers, err := h.authorization.ListCallers(c.Request.Context())
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "authorized callers", callers)
}
