package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

func SeedCompany(tb testing.TB, tx *gorm.DB) *domain.Company {
	tb.Helper()
	c := &domain.Company{Name: "Test Company"}
	if err := tx.Create(c).Error; err != nil {
		tb.Fatalf("failed to seed company: %v", err)
	}
	return c
}

func SeedUser(tb testing.TB, tx *gorm.DB, companyID uuid.UUID, role domain.Role) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:        uuid.New(),
		CompanyID: companyID,
		Role:      role,
		FullName:  fmt.Sprintf("Test %s", role),
		Email:     fmt.Sprintf("%s+%s@example.com", role, uuid.NewString()[:8]),
	}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func SeedSite(tb testing.TB, tx *gorm.DB, companyID uuid.UUID) *domain.Site {
	tb.Helper()
	s := &domain.Site{
		CompanyID:    companyID,
		Name:         "Main Office",
		AddressLine1: "Storgatan 1",
		City:         "Stockholm",
	}
	if err := tx.Create(s).Error; err != nil {
		tb.Fatalf("failed to seed site: %v", err)
	}
	return s
}

func SeedLead(tb testing.TB, tx *gorm.DB, companyID uuid.UUID) *domain.Lead {
	tb.Helper()
	l := &domain.Lead{
		CompanyID: companyID,
		Name:      "Prospect AB",
		Email:     "prospect@example.com",
		Status:    domain.LeadStatusNew,
	}
	if err := tx.Create(l).Error; err != nil {
		tb.Fatalf("failed to seed lead: %v", err)
	}
	return l
}

// SeedTemplateVersion creates an active template plus one version carrying
// the handful of items the gate rules key on: a required score, the
// deviation reason field and a required timestamp.
func SeedTemplateVersion(tb testing.TB, tx *gorm.DB, companyID uuid.UUID) *domain.ChecklistTemplateVersion {
	tb.Helper()

	tpl := &domain.ChecklistTemplate{
		CompanyID: companyID,
		Name:      "Standard Cleaning Inspection",
		IsActive:  true,
	}
	if err := tx.Create(tpl).Error; err != nil {
		tb.Fatalf("failed to seed template: %v", err)
	}

	v := &domain.ChecklistTemplateVersion{
		CompanyID:     companyID,
		TemplateID:    tpl.ID,
		VersionNumber: 1,
		Name:          tpl.Name,
		IsActive:      true,
	}
	if err := tx.Create(v).Error; err != nil {
		tb.Fatalf("failed to seed template version: %v", err)
	}

	items := []domain.ChecklistItem{
		{
			CompanyID:         companyID,
			TemplateVersionID: v.ID,
			Section:           domain.SectionCoreQuality,
			SortOrder:         0,
			ItemKey:           "floors_score",
			Label:             "Floors",
			ItemType:          domain.ItemTypeRating,
			Required:          true,
			ValidationRules:   datatypes.JSON([]byte(`{"min":1,"max":5}`)),
		},
		{
			CompanyID:         companyID,
			TemplateVersionID: v.ID,
			Section:           domain.SectionCoreQuality,
			SortOrder:         1,
			ItemKey:           "surfaces_score",
			Label:             "Surfaces",
			ItemType:          domain.ItemTypeRating,
			Required:          false,
			ValidationRules:   datatypes.JSON([]byte(`{"min":1,"max":5}`)),
		},
		{
			CompanyID:         companyID,
			TemplateVersionID: v.ID,
			Section:           domain.SectionFinalization,
			SortOrder:         0,
			ItemKey:           "deviation_reason",
			Label:             "Deviation reason",
			ItemType:          domain.ItemTypeTextarea,
			Required:          false,
			ValidationRules:   datatypes.JSON([]byte(`{"max_length":2000}`)),
		},
		{
			CompanyID:         companyID,
			TemplateVersionID: v.ID,
			Section:           domain.SectionFinalization,
			SortOrder:         1,
			ItemKey:           "completed_at",
			Label:             "Completed at",
			ItemType:          domain.ItemTypeTimestamp,
			Required:          true,
		},
	}
	if err := tx.Create(&items).Error; err != nil {
		tb.Fatalf("failed to seed checklist items: %v", err)
	}
	v.Items = items
	return v
}

func SeedInspection(tb testing.TB, tx *gorm.DB, companyID, assignedTo uuid.UUID, versionID *uuid.UUID) *domain.Inspection {
	tb.Helper()
	i := &domain.Inspection{
		CompanyID:                  companyID,
		Status:                     domain.InspectionStatusOpen,
		AssignedTo:                 assignedTo,
		ChecklistTemplateVersionID: versionID,
		SiteNameSnapshot:           "Main Office",
	}
	if err := tx.Create(i).Error; err != nil {
		tb.Fatalf("failed to seed inspection: %v", err)
	}
	return i
}
