package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/checklist"
	checklistrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/checklist"
	inspectionrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/inspections"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/apierr"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/requestdata"
)

// ResponseInput is one incoming answer. An explicitly empty Value (null,
// "" or []) clears any previously stored row for that item.
type ResponseInput struct {
	ChecklistItemID uuid.UUID       `json:"checklist_item_id" binding:"required"`
	Value           json.RawMessage `json:"value"`
	Note            string          `json:"note"`
}

type ResponseService interface {
	SaveResponses(ctx context.Context, inspectionID uuid.UUID, inputs []ResponseInput) ([]*domain.InspectionResponse, error)
	GetResponses(ctx context.Context, inspectionID uuid.UUID) ([]*domain.InspectionResponse, error)
}

type responseService struct {
	db             *gorm.DB
	log            *logger.Logger
	responseRepo   checklistrepos.ResponseRepo
	templateRepo   checklistrepos.TemplateRepo
	inspectionRepo inspectionrepos.InspectionRepo
}

func NewResponseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	responseRepo checklistrepos.ResponseRepo,
	templateRepo checklistrepos.TemplateRepo,
	inspectionRepo inspectionrepos.InspectionRepo,
) ResponseService {
	return &responseService{
		db:             db,
		log:            baseLog.With("service", "ResponseService"),
		responseRepo:   responseRepo,
		templateRepo:   templateRepo,
		inspectionRepo: inspectionRepo,
	}
}

func (s *responseService) SaveResponses(ctx context.Context, inspectionID uuid.UUID, inputs []ResponseInput) ([]*domain.InspectionResponse, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	inspection, err := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", err)
		}
		return nil, err
	}
	if !checklist.CanEdit(inspection, rd.UserID, rd.Role) {
		return nil, apierr.New(http.StatusForbidden, "INSPECTION_LOCKED", pkgerrors.ErrForbidden)
	}
	if inspection.ChecklistTemplateVersionID == nil {
		return nil, apierr.New(http.StatusConflict, "NO_CHECKLIST_ASSIGNED", pkgerrors.ErrConflict)
	}

	items, err := s.templateRepo.GetItemsByVersionID(dbctx.Context{Ctx: ctx}, rd.CompanyID, *inspection.ChecklistTemplateVersionID)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uuid.UUID]*domain.ChecklistItem, len(items))
	for i := range items {
		itemsByID[items[i].ID] = &items[i]
	}

	var upserts []*domain.InspectionResponse
	var clears []uuid.UUID
	for _, in := range inputs {
		item, ok := itemsByID[in.ChecklistItemID]
		if !ok {
			return nil, apierr.New(http.StatusBadRequest, "UNKNOWN_CHECKLIST_ITEM",
				fmt.Errorf("item %s is not part of the assigned checklist: %w", in.ChecklistItemID, pkgerrors.ErrInvalidArgument))
		}

		if checklist.IsEmptyJSON(in.Value) {
			clears = append(clears, item.ID)
			continue
		}

		value, err := checklist.ParseValue(item, in.Value)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "INVALID_RESPONSE_VALUE",
				fmt.Errorf("item %q: %w", item.ItemKey, err))
		}
		if value.Empty() {
			clears = append(clears, item.ID)
			continue
		}

		upserts = append(upserts, &domain.InspectionResponse{
			CompanyID:       rd.CompanyID,
			InspectionID:    inspection.ID,
			ChecklistItemID: item.ID,
			Value:           datatypes.JSON(value.JSON()),
			Note:            in.Note,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if len(clears) > 0 {
			if err := s.responseRepo.DeleteByItemIDs(dbc, rd.CompanyID, inspection.ID, clears); err != nil {
				return err
			}
		}
		if len(upserts) > 0 {
			if err := s.responseRepo.Upsert(dbc, upserts); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("Saved responses", "inspection_id", inspection.ID, "written", len(upserts), "cleared", len(clears))
	return s.responseRepo.GetByInspectionID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspection.ID)
}

func (s *responseService) GetResponses(ctx context.Context, inspectionID uuid.UUID) ([]*domain.InspectionResponse, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	if _, err := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", err)
		}
		return nil, err
	}
	return s.responseRepo.GetByInspectionID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID)
}
