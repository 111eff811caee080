package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldcheck/fieldcheck-backend/internal/services"
)

type LeadHandler struct {
	leadService services.LeadService
}

func NewLeadHandler(leadService services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func (h *LeadHandler) Create(c *gin.Context) {
	var input services.CreateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.leadService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"leads": leads})
}

func (h *LeadHandler) Get(c *gin.Context) {
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	lead, err := h.leadService.Get(c.Request.Context(), leadID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"lead": lead})
}

func (h *LeadHandler) Delete(c *gin.Context) {
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), leadID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
