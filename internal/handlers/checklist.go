package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fieldcheck/fieldcheck-backend/internal/services"
)

type ChecklistHandler struct {
	templateService   services.TemplateService
	responseService   services.ResponseService
	fileService       services.FileService
	validationService services.ValidationService
}

func NewChecklistHandler(
	templateService services.TemplateService,
	responseService services.ResponseService,
	fileService services.FileService,
	validationService services.ValidationService,
) *ChecklistHandler {
	return &ChecklistHandler{
		templateService:   templateService,
		responseService:   responseService,
		fileService:       fileService,
		validationService: validationService,
	}
}

// GetTemplate returns the active checklist, or a specific version when
// ?version_id= is given.
func (h *ChecklistHandler) GetTemplate(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("version_id"); raw != "" {
		versionID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
			return
		}
		version, err := h.templateService.GetVersion(ctx, versionID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, gin.H{"template": version})
		return
	}

	version, err := h.templateService.GetActiveVersion(ctx)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"template": version})
}

func (h *ChecklistHandler) InitDefaultTemplate(c *gin.Context) {
	version, err := h.templateService.InitDefault(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": version})
}

func (h *ChecklistHandler) GetResponses(c *gin.Context) {
	inspectionID, err := uuid.Parse(c.Query("inspection_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
		return
	}

	responses, err := h.responseService.GetResponses(c.Request.Context(), inspectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"responses": responses})
}

type saveResponsesRequest struct {
	InspectionID uuid.UUID                `json:"inspection_id" binding:"required"`
	Responses    []services.ResponseInput `json:"responses" binding:"required"`
}

func (h *ChecklistHandler) SaveResponses(c *gin.Context) {
	var req saveResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	responses, err := h.responseService.SaveResponses(c.Request.Context(), req.InspectionID, req.Responses)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"responses": responses})
}

func (h *ChecklistHandler) UploadFile(c *gin.Context) {
	inspectionID, err := uuid.Parse(c.PostForm("inspection_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
		return
	}

	var checklistItemID *uuid.UUID
	if raw := c.PostForm("checklist_item_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
			return
		}
		checklistItemID = &id
	}

	header, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", err)
		return
	}
	src, err := header.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", err)
		return
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file, err := h.fileService.Upload(c.Request.Context(), inspectionID, checklistItemID, header.Filename, contentType, header.Size, src)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"file": file})
}

func (h *ChecklistHandler) ListFiles(c *gin.Context) {
	inspectionID, err := uuid.Parse(c.Query("inspection_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
		return
	}

	files, err := h.fileService.List(c.Request.Context(), inspectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"files": files})
}

func (h *ChecklistHandler) DeleteFile(c *gin.Context) {
	fileID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	inspectionID, err := uuid.Parse(c.Query("inspection_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), inspectionID, fileID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type validateRequest struct {
	InspectionID uuid.UUID `json:"inspection_id" binding:"required"`
}

// Validate is the dry-run form of the submission gate; it always answers
// 200 with the structured result.
func (h *ChecklistHandler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	result, err := h.validationService.Validate(c.Request.Context(), req.InspectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
