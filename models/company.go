// Package models contains domain entities and business models for the compliance assessment platform
package models

import (
	"time"
)

// Company represents a tenant of the platform. Every row written by the
// provisioning workflow is scoped to a company.
type Company struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	IsActive  *bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}

// CompanyFilter represents filter criteria for company queries
type CompanyFilter struct {
	ID       *uint
	Name     *string
	IsActive *bool
}
