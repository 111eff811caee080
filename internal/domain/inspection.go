package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InspectionStatus string

const (
	InspectionStatusOpen       InspectionStatus = "open"
	InspectionStatusInProgress InspectionStatus = "in_progress"
	InspectionStatusSubmitted  InspectionStatus = "submitted"
	InspectionStatusReviewed   InspectionStatus = "reviewed"
)

// Editable reports whether the inspection status still accepts worker
// edits. Submitted and reviewed inspections are locked for workers.
func (s InspectionStatus) Editable() bool {
	return s == InspectionStatusOpen || s == InspectionStatusInProgress
}

type Inspection struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	LeadID      *uuid.UUID `gorm:"type:uuid;index" json:"lead_id,omitempty"`
	SiteID      *uuid.UUID `gorm:"type:uuid;index" json:"site_id,omitempty"`
	ScheduledAt *time.Time `gorm:"column:scheduled_at" json:"scheduled_at,omitempty"`

	Status     InspectionStatus `gorm:"not null;default:'open';index" json:"status"`
	AssignedTo uuid.UUID        `gorm:"column:assigned_to;type:uuid;not null;index" json:"assigned_to"`

	// ChecklistTemplateVersionID is resolved lazily and never overwritten
	// once set.
	ChecklistTemplateVersionID *uuid.UUID `gorm:"column:checklist_template_version_id;type:uuid" json:"checklist_template_version_id,omitempty"`

	SubmittedBy *uuid.UUID `gorm:"column:submitted_by;type:uuid" json:"submitted_by,omitempty"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`

	Notes               string `gorm:"type:text" json:"notes,omitempty"`
	SiteNameSnapshot    string `gorm:"column:site_name_snapshot" json:"site_name_snapshot,omitempty"`
	SiteAddressSnapshot string `gorm:"column:site_address_snapshot" json:"site_address_snapshot,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Inspection) TableName() string { return "inspections" }

// InspectionResponse stores the answer for one checklist item on one
// inspection. Rows are unique per (company, inspection, item) and written
// as idempotent upserts; empty values are never persisted.
type InspectionResponse struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_inspection_responses_key,priority:1" json:"company_id"`
	InspectionID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_inspection_responses_key,priority:2" json:"inspection_id"`
	ChecklistItemID uuid.UUID `gorm:"column:checklist_item_id;type:uuid;not null;uniqueIndex:ux_inspection_responses_key,priority:3" json:"checklist_item_id"`

	Value datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	Note  string         `gorm:"type:text" json:"note,omitempty"`

	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (InspectionResponse) TableName() string { return "inspection_responses" }

type InspectionFile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	InspectionID uuid.UUID `gorm:"type:uuid;not null;index" json:"inspection_id"`
	// ChecklistItemID is nil for general attachments not tied to one item.
	ChecklistItemID *uuid.UUID `gorm:"column:checklist_item_id;type:uuid;index" json:"checklist_item_id,omitempty"`

	StoragePath string `gorm:"column:storage_path;not null" json:"storage_path"`
	FileName    string `gorm:"column:file_name;not null" json:"file_name"`
	FileSize    int64  `gorm:"column:file_size" json:"file_size"`
	MimeType    string `gorm:"column:mime_type" json:"mime_type"`
	UploadedBy  uuid.UUID `gorm:"column:uploaded_by;type:uuid;not null" json:"uploaded_by"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (InspectionFile) TableName() string { return "inspection_files" }
