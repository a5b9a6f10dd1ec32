package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/middleware"
	"github.com/SkillProof-Labs/verification-service/internal/services"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

type CatalogHandler struct {
	BaseHandler
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: NewBaseHandler(logger),
		catalog:     catalog,
	}
}

// SubmitQuestionSet handles POST /api/v1/admin/question-sets
func (h *CatalogHandler) SubmitQuestionSet(c *gin.Context) {
	var req services.SubmitQuestionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	set, err := h.catalog.SubmitQuestionSet(c.Request.Context(), middleware.Identity(c), &req)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "question set submitted", set)
}

// Activate handles POST /api/v1/admin/question-sets/:id/activate
func (h *CatalogHandler) Activate(c *gin.Context) {
	if err := h.catalog.Activate(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "question set activated", nil)
}

// Deactivate handles POST /api/v1/admin/question-sets/:id/deactivate
func (h *CatalogHandler) Deactivate(c *gin.Context) {
	if err := h.catalog.Deactivate(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "question set deactivated", nil)
}

// Get handles GET /api/v1/question-sets/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	set, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "question set", set)
}

// List handles GET /api/v1/question-sets
func (h *CatalogHandler) List(c *gin.Context) {
	sets, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "question sets", sets)
}

// ListActive handles GET /api/v1/question-sets/active
func (h *CatalogHandler) ListActive(c *gin.Context) {
	sets, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "active question sets", sets)
}
