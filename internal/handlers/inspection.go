package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fieldcheck/fieldcheck-backend/internal/services"
)

type InspectionHandler struct {
	inspectionService services.InspectionService
}

func NewInspectionHandler(inspectionService services.InspectionService) *InspectionHandler {
	return &InspectionHandler{inspectionService: inspectionService}
}

func (h *InspectionHandler) Create(c *gin.Context) {
	var input services.CreateInspectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	inspection, err := h.inspectionService.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inspection": inspection})
}

func (h *InspectionHandler) List(c *gin.Context) {
	inspections, err := h.inspectionService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"inspections": inspections})
}

func (h *InspectionHandler) Get(c *gin.Context) {
	inspectionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	inspection, err := h.inspectionService.Get(c.Request.Context(), inspectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"inspection": inspection})
}

func (h *InspectionHandler) Start(c *gin.Context) {
	inspectionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	inspection, err := h.inspectionService.Start(c.Request.Context(), inspectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"inspection": inspection})
}

func (h *InspectionHandler) Submit(c *gin.Context) {
	inspectionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	inspection, result, err := h.inspectionService.Submit(c.Request.Context(), inspectionID)
	if err != nil {
		if result != nil {
			// Failed gate: hand the client the full result so it can
			// point at the offending items.
			c.JSON(http.StatusBadRequest, result)
			return
		}
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"inspection": inspection, "validation": result})
}

func (h *InspectionHandler) Review(c *gin.Context) {
	inspectionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	inspection, err := h.inspectionService.Review(c.Request.Context(), inspectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"inspection": inspection})
}

type assignTemplateRequest struct {
	ChecklistTemplateVersionID uuid.UUID `json:"checklist_template_version_id" binding:"required"`
}

func (h *InspectionHandler) AssignTemplate(c *gin.Context) {
	inspectionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req assignTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	inspection, err := h.inspectionService.AssignTemplate(c.Request.Context(), inspectionID, req.ChecklistTemplateVersionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"inspection": inspection})
}
