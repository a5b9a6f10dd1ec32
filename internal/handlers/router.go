package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/middleware"
	"github.com/SkillProof-Labs/verification-service/internal/services"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

type HandlerManager struct {
	catalogHandler       *CatalogHandler
	assessmentHandler    *AssessmentHandler
	oracleHandler        *OracleHandler
	authorizationHandler *AuthorizationHandler
	rewardHandler        *RewardHandler
	auditHandler         *AuditHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		catalogHandler:       NewCatalogHandler(serviceManager.Catalog(), logger),
		assessmentHandler:    NewAssessmentHandler(serviceManager.Assessment(), logger),
		oracleHandler:        NewOracleHandler(serviceManager.Oracle(), logger),
		authorizationHandler: NewAuthorizationHandler(serviceManager.Authorization(), logger),
		rewardHandler:        NewRewardHandler(serviceManager.Reward(), serviceManager.Ledger(), serviceManager.Export(), logger),
		auditHandler:         NewAuditHandler(serviceManager.Audit(), logger),
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, auth *middleware.Authenticator, ownerIdentity string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "verification-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Oracle callback: addressed by request id, not identity. A
		// forged delivery dies on the request-id check.
		v1.POST("/oracle/callback", hm.oracleHandler.Callback)

		// Read-only query surface.
		v1.GET("/question-sets", hm.catalogHandler.List)
		v1.GET("/question-sets/active", hm.catalogHandler.ListActive)
		v1.GET("/question-sets/:id", hm.catalogHandler.Get)
		v1.GET("/callers", hm.authorizationHandler.ListCallers)
		v1.GET("/callers/:identity", hm.authorizationHandler.IsAuthorized)
		v1.GET("/oracle-config", hm.oracleHandler.GetConfig)
		v1.GET("/reward-config", hm.rewardHandler.GetConfig)
		v1.GET("/ledger/:user_id/balance", hm.rewardHandler.Balance)

		// Authenticated user surface.
		assessments := v1.Group("/assessments", auth.Authenticate())
		{
			assessments.POST("/start", hm.assessmentHandler.Start)
			assessments.POST("/submit-answers", hm.assessmentHandler.SubmitAnswers)
			assessments.POST("/submit", hm.assessmentHandler.Submit)
			assessments.POST("/:user_id/restart", hm.assessmentHandler.Restart)
			assessments.GET("/:user_id", hm.assessmentHandler.Get)
		}

		// Owner-only administration surface.
		admin := v1.Group("/admin", auth.Authenticate(), middleware.RequireOwner(ownerIdentity))
		{
			admin.POST("/question-sets", hm.catalogHandler.SubmitQuestionSet)
			admin.POST("/question-sets/:id/activate", hm.catalogHandler.Activate)
			admin.POST("/question-sets/:id/deactivate", hm.catalogHandler.Deactivate)

			admin.POST("/callers/:identity", hm.authorizationHandler.AddCaller)
			admin.DELETE("/callers/:identity", hm.authorizationHandler.RemoveCaller)

			admin.PUT("/oracle-config", hm.oracleHandler.UpdateConfig)
			admin.PUT("/reward-config", hm.rewardHandler.UpdateConfig)

			admin.POST("/assessments/:user_id/manual-result", hm.oracleHandler.SubmitManualResult)
			admin.GET("/reports/results.xlsx", hm.rewardHandler.ExportResults)
			admin.GET("/audit-logs", hm.auditHandler.ListLogs)
		}
	}
}
