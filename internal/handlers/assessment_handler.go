package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/middleware"
	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/services"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

type StartAssessmentRequest struct {
	QuestionSetID string `json:"question_set_id" binding:"required"`
}

type SubmitAnswersRequest struct {
	AnswersHash string `json:"answers_hash" binding:"required"`
}

type SubmitAssessmentRequest struct {
	AnswersHash string `json:"answers_hash"`
}

type AssessmentHandler struct {
	BaseHandler
	assessment services.AssessmentService
}

func NewAssessmentHandler(assessment services.AssessmentService, logger utils.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler: NewBaseHandler(logger),
		assessment:  assessment,
	}
}

// Start handles POST /api/v1/assessments/start. The authenticated
// identity is the assessment user.
func (h *AssessmentHandler) Start(c *gin.Context) {
	var req StartAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	assessment, err := h.assessment.Start(c.Request.Context(), middleware.Identity(c), req.QuestionSetID)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "assessment started", assessment)
}

// SubmitAnswers handles POST /api/v1/assessments/submit-answers
func (h *AssessmentHandler) SubmitAnswers(c *gin.Context) {
	var req SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	answersHash, err := models.ParseHash256(req.AnswersHash)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid answers hash", err)
		return
	}

	assessment, err := h.assessment.SubmitAnswers(c.Request.Context(), middleware.Identity(c), answersHash)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "answers submitted", assessment)
}

// Submit handles POST /api/v1/assessments/submit: answers plus an
// immediate evaluation request when verification is enabled.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var answersHash models.Hash256
	if req.AnswersHash != "" {
		var err error
		answersHash, err = models.ParseHash256(req.AnswersHash)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "invalid answers hash", err)
			return
		}
	}

	assessment, err := h.assessment.SubmitAssessment(c.Request.Context(), middleware.Identity(c), answersHash)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "assessment submitted", assessment)
}

// Restart handles POST /api/v1/assessments/:user_id/restart. Allowed
// for the assessment's user and the owner; the service enforces it.
func (h *AssessmentHandler) Restart(c *gin.Context) {
	if err := h.assessment.Restart(c.Request.Context(), middleware.Identity(c), c.Param("user_id")); err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "assessment restarted", nil)
}

// Get handles GET /api/v1/assessments/:user_id
func (h *AssessmentHandler) Get(c *gin.Context) {
	assessment, err := h.assessment.GetByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "assessment", assessment)
}
