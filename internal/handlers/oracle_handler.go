package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/middleware"
	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/services"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

// CallbackRequest is the evaluation network's delivery. Result is the
// raw scorer payload, base64-encoded in transit.
type CallbackRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	Result    []byte `json:"result"`
}

type ManualResultRequest struct {
	Score      uint8  `json:"score" binding:"max=100"`
	ResultHash string `json:"result_hash" binding:"required"`
}

type OracleHandler struct {
	BaseHandler
	oracle services.OracleService
}

func NewOracleHandler(oracle services.OracleService, logger utils.Logger) *OracleHandler {
	return &OracleHandler{
		BaseHandler: NewBaseHandler(logger),
		oracle:      oracle,
	}
}

// Callback handles POST /api/v1/oracle/callback. The payload is
// untrusted; unknown or duplicate request ids are rejected without
// touching state.
func (h *OracleHandler) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.oracle.HandleCallback(c.Request.Context(), req.RequestID, req.Result); err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "callback accepted", nil)
}

// SubmitManualResult handles POST /api/v1/admin/assessments/:user_id/manual-result
func (h *OracleHandler) SubmitManualResult(c *gin.Context) {
	var req ManualResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resultHash, err := models.ParseHash256(req.ResultHash)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid result hash", err)
		return
	}

	err = h.oracle.SubmitManualResult(c.Request.Context(), middleware.Identity(c), c.Param("user_id"), req.Score, resultHash)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "manual result submitted", nil)
}

// GetConfig handles GET /api/v1/oracle-config. Encrypted secrets are
// never serialized.
func (h *OracleHandler) GetConfig(c *gin.Context) {
	cfg, err := h.oracle.GetConfig(c.Request.Context())
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "oracle config", cfg)
}

// UpdateConfig handles PUT /api/v1/admin/oracle-config
func (h *OracleHandler) UpdateConfig(c *gin.Context) {
	var req services.UpdateOracleConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	cfg, err := h.oracle.UpdateConfig(c.Request.Context(), middleware.Identity(c), &req)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "oracle config updated", cfg)
}
