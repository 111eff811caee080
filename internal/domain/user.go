package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDispatcher Role = "dispatcher"
	RoleWorker     Role = "worker"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDispatcher, RoleWorker:
		return true
	}
	return false
}

type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Company) TableName() string { return "companies" }

// User is the per-company profile consumed for role resolution. Account
// provisioning and invitations live in a separate system; this table is
// read-only here.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Company   *Company  `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`

	Role     Role   `gorm:"not null;default:'worker'" json:"role"`
	FullName string `gorm:"column:full_name" json:"full_name,omitempty"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string `json:"phone,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (User) TableName() string { return "app_users" }
