package domain

import (
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusDiscarded LeadStatus = "discarded"
)

type Lead struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	Name    string     `gorm:"not null" json:"name"`
	Phone   string     `json:"phone,omitempty"`
	Email   string     `json:"email,omitempty"`
	Address string     `json:"address,omitempty"`
	Status  LeadStatus `gorm:"not null;default:'new'" json:"status"`
	Notes   string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Lead) TableName() string { return "leads" }

type Site struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	Name         string `gorm:"not null" json:"name"`
	AddressLine1 string `gorm:"column:address_line1" json:"address_line1,omitempty"`
	AddressLine2 string `gorm:"column:address_line2" json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Site) TableName() string { return "sites" }
