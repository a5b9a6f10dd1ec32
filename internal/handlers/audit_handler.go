package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/middleware"
	"github.com/SkillProof-Labs/verification-service/internal/services"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

type AuditHandler struct {
	BaseHandler
	audit services.AuditService
}

func NewAuditHandler(audit services.AuditService, logger utils.Logger) *AuditHandler {
	return &AuditHandler{
		BaseHandler: NewBaseHandler(logger),
		audit:       audit,
	}
}

// ListLogs handles GET /api/v1/admin/audit-logs?limit=&offset=
func (h *AuditHandler) ListLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.audit.ListLogs(c.Request.Context(), middleware.Identity(c), limit, offset)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "audit logs", logs)
}
