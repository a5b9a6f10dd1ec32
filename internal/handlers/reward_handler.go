package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/middleware"
	"github.com/SkillProof-Labs/verification-service/internal/services"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

type RewardHandler struct {
	BaseHandler
	reward services.RewardService
	ledger services.LedgerService
	export services.ExportService
}

func NewRewardHandler(reward services.RewardService, ledger services.LedgerService, export services.ExportService, logger utils.Logger) *RewardHandler {
	return &RewardHandler{
		BaseHandler: NewBaseHandler(logger),
		reward:      reward,
		ledger:      ledger,
		export:      export,
	}
}

// GetConfig handles GET /api/v1/reward-config
func (h *RewardHandler) GetConfig(c *gin.Context) {
	cfg, err := h.reward.GetConfig(c.Request.Context())
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "reward config", cfg)
}

// UpdateConfig handles PUT /api/v1/admin/reward-config
func (h *RewardHandler) UpdateConfig(c *gin.Context) {
	var req services.UpdateRewardConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	cfg, err := h.reward.UpdateConfig(c.Request.Context(), middleware.Identity(c), &req)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "reward config updated", cfg)
}

// Balance handles GET /api/v1/ledger/:user_id/balance
func (h *RewardHandler) Balance(c *gin.Context) {
	balance, err := h.ledger.BalanceOf(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "ledger balance", gin.H{
		"user_id": c.Param("user_id"),
		"balance": balance.String(),
	})
}

// ExportResults handles GET /api/v1/admin/reports/results.xlsx
func (h *RewardHandler) ExportResults(c *gin.Context) {
	data, err := h.export.ExportResults(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="results.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
