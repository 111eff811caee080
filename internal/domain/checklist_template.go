package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChecklistSection string

const (
	SectionMeta         ChecklistSection = "meta"
	SectionCoreQuality  ChecklistSection = "core_quality"
	SectionModules      ChecklistSection = "modules"
	SectionExtras       ChecklistSection = "extras"
	SectionFinalization ChecklistSection = "finalization"
)

type ItemType string

const (
	ItemTypeRating      ItemType = "rating"
	ItemTypeBoolean     ItemType = "boolean"
	ItemTypeEnum        ItemType = "enum"
	ItemTypeInteger     ItemType = "integer"
	ItemTypeText        ItemType = "text"
	ItemTypeTextarea    ItemType = "textarea"
	ItemTypeTimestamp   ItemType = "timestamp"
	ItemTypeMultiSelect ItemType = "multi_select"
)

type ChecklistTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ChecklistTemplate) TableName() string { return "checklist_templates" }

// ChecklistTemplateVersion is an immutable-once-populated snapshot of a
// checklist. At most one version is active per company at any time; edits
// produce a new version rather than mutating an existing one.
type ChecklistTemplateVersion struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"company_id"`
	TemplateID uuid.UUID          `gorm:"type:uuid;not null;index" json:"template_id"`
	Template   *ChecklistTemplate `gorm:"foreignKey:TemplateID;references:ID" json:"template,omitempty"`

	VersionNumber int    `gorm:"not null" json:"version_number"`
	Name          string `gorm:"not null" json:"name"`
	Description   string `gorm:"type:text" json:"description,omitempty"`
	IsActive      bool   `gorm:"not null;default:false;index" json:"is_active"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`

	Items []ChecklistItem `gorm:"foreignKey:TemplateVersionID;references:ID" json:"items,omitempty"`
}

func (ChecklistTemplateVersion) TableName() string { return "checklist_template_versions" }

type ChecklistItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	TemplateVersionID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_checklist_items_version_key,priority:1" json:"template_version_id"`

	Section   ChecklistSection `gorm:"not null" json:"section"`
	SortOrder int              `gorm:"not null;default:0" json:"sort_order"`
	// ItemKey is the stable handle rules cross-reference: "_score" suffixed
	// rating items and the literal key "deviation_reason".
	ItemKey  string   `gorm:"column:item_key;not null;uniqueIndex:ux_checklist_items_version_key,priority:2" json:"item_key"`
	Label    string   `gorm:"not null" json:"label"`
	HelpText string   `gorm:"column:help_text;type:text" json:"help_text,omitempty"`
	ItemType ItemType `gorm:"column:item_type;not null" json:"item_type"`
	Required bool     `gorm:"not null;default:false" json:"required"`

	ValidationRules datatypes.JSON `gorm:"column:validation_rules;type:jsonb" json:"validation_rules,omitempty"`
	// ConditionalLogic is reserved for show/hide rules; the submission gate
	// does not evaluate it.
	ConditionalLogic datatypes.JSON `gorm:"column:conditional_logic;type:jsonb" json:"conditional_logic,omitempty"`
	EnumOptions      datatypes.JSON `gorm:"column:enum_options;type:jsonb" json:"enum_options,omitempty"`
	DefaultValue     datatypes.JSON `gorm:"column:default_value;type:jsonb" json:"default_value,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ChecklistItem) TableName() string { return "checklist_items" }

// ValidationRules is the decoded shape of ChecklistItem.ValidationRules.
type ValidationRules struct {
	Min       *int `json:"min,omitempty"`
	Max       *int `json:"max,omitempty"`
	MaxLength *int `json:"max_length,omitempty"`
}

// EnumOption is one entry of ChecklistItem.EnumOptions, order preserved.
type EnumOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
