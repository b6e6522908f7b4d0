package models

import (
	"time"
)

// Role represents an organizational role interviewed during an assessment
// (e.g. CISO, HR lead). Interviews are associated with one or more roles.
type Role struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CompanyID uint       `gorm:"not null;index:idx_roles_company_id" json:"company_id"`
	Company   *Company   `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	IsDeleted *bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleFilter represents filter criteria for role queries
type RoleFilter struct {
	ID        *uint
	CompanyID *uint
	IsDeleted *bool
}
