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

	"github.com/fieldcheck/fieldcheck-backend/internal/checklist/seed"
	checklistrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/checklist"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/apierr"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/requestdata"
)

type TemplateService interface {
	// GetActiveVersion returns the company's current checklist with items
	// in section order. ErrNotFound when the company has no template yet.
	GetActiveVersion(ctx context.Context) (*domain.ChecklistTemplateVersion, error)
	GetVersion(ctx context.Context, versionID uuid.UUID) (*domain.ChecklistTemplateVersion, error)
	// InitDefault seeds the built-in checklist for a company without one.
	// Admin only; conflicts when an active checklist already exists.
	InitDefault(ctx context.Context) (*domain.ChecklistTemplateVersion, error)
}

type templateService struct {
	db           *gorm.DB
	log          *logger.Logger
	templateRepo checklistrepos.TemplateRepo
}

func NewTemplateService(db *gorm.DB, baseLog *logger.Logger, templateRepo checklistrepos.TemplateRepo) TemplateService {
	return &templateService{
		db:           db,
		log:          baseLog.With("service", "TemplateService"),
		templateRepo: templateRepo,
	}
}

func (s *templateService) GetActiveVersion(ctx context.Context) (*domain.ChecklistTemplateVersion, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	version, err := s.templateRepo.GetActiveVersion(dbctx.Context{Ctx: ctx}, rd.CompanyID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "NO_ACTIVE_CHECKLIST", err)
		}
		return nil, err
	}
	if len(version.Items) == 0 {
		s.log.Warn("Active checklist version has no items", "company_id", rd.CompanyID, "version_id", version.ID)
	}
	return version, nil
}

func (s *templateService) GetVersion(ctx context.Context, versionID uuid.UUID) (*domain.ChecklistTemplateVersion, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	version, err := s.templateRepo.GetVersionByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, versionID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "CHECKLIST_VERSION_NOT_FOUND", err)
		}
		return nil, err
	}
	return version, nil
}

func (s *templateService) InitDefault(ctx context.Context) (*domain.ChecklistTemplateVersion, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}
	if !rd.IsAdmin() {
		return nil, apierr.New(http.StatusForbidden, "ADMIN_ONLY", pkgerrors.ErrForbidden)
	}

	if _, err := s.templateRepo.GetActiveVersion(dbctx.Context{Ctx: ctx}, rd.CompanyID); err == nil {
		return nil, apierr.New(http.StatusConflict, "CHECKLIST_ALREADY_INITIALIZED", pkgerrors.ErrConflict)
	} else if !errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, err
	}

	def, err := seed.DefaultTemplate()
	if err != nil {
		return nil, err
	}

	var created *domain.ChecklistTemplateVersion
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		template, err := s.templateRepo.CreateTemplate(dbc, &domain.ChecklistTemplate{
			CompanyID:   rd.CompanyID,
			Name:        def.Name,
			Description: def.Description,
			IsActive:    true,
		})
		if err != nil {
			return err
		}

		version, err := s.templateRepo.CreateVersion(dbc, &domain.ChecklistTemplateVersion{
			CompanyID:     rd.CompanyID,
			TemplateID:    template.ID,
			VersionNumber: 1,
			Name:          firstNonEmpty(def.VersionName, def.Name),
			Description:   def.VersionDescription,
			IsActive:      true,
			CreatedBy:     &rd.UserID,
		})
		if err != nil {
			return err
		}

		items, err := seedItems(rd.CompanyID, version.ID, def.Items)
		if err != nil {
			return err
		}
		if _, err := s.templateRepo.CreateItems(dbc, items); err != nil {
			return err
		}

		created = version
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Seeded default checklist", "company_id", rd.CompanyID, "version_id", created.ID, "items", len(def.Items))
	return s.templateRepo.GetVersionByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, created.ID)
}

func seedItems(companyID, versionID uuid.UUID, defs []seed.Item) ([]*domain.ChecklistItem, error) {
	items := make([]*domain.ChecklistItem, 0, len(defs))
	for _, d := range defs {
		item := &domain.ChecklistItem{
			CompanyID:         companyID,
			TemplateVersionID: versionID,
			Section:           d.Section,
			SortOrder:         d.SortOrder,
			ItemKey:           d.ItemKey,
			Label:             d.Label,
			HelpText:          d.HelpText,
			ItemType:          d.ItemType,
			Required:          d.Required,
		}
		if d.Validation != nil {
			raw, err := json.Marshal(d.Validation)
			if err != nil {
				return nil, fmt.Errorf("encode validation rules for %q: %w", d.ItemKey, err)
			}
			item.ValidationRules = datatypes.JSON(raw)
		}
		if len(d.Options) > 0 {
			raw, err := json.Marshal(d.Options)
			if err != nil {
				return nil, fmt.Errorf("encode options for %q: %w", d.ItemKey, err)
			}
			item.EnumOptions = datatypes.JSON(raw)
		}
		items = append(items, item)
	}
	return items, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
