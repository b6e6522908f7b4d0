package models

import (
	"time"
)

// Contact represents a person at a company who can be the subject of a
// public individual interview.
type Contact struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CompanyID uint       `gorm:"not null;index:idx_contacts_company_id" json:"company_id"`
	Company   *Company   `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	FirstName string     `gorm:"size:255;not null" json:"first_name"`
	LastName  string     `gorm:"size:255;not null" json:"last_name"`
	Email     string     `gorm:"size:255;not null;index:idx_contacts_email" json:"email"`
	Title     *string    `gorm:"size:255" json:"title,omitempty"`
	IsDeleted *bool      `gorm:"default:false;index:idx_contacts_is_deleted" json:"is_deleted"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (Contact) TableName() string {
	return "contacts"
}

// FullName returns the contact's display name
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ContactFilter represents filter criteria for contact queries
type ContactFilter struct {
	ID        *uint
	CompanyID *uint
	Email     *string
	IsDeleted *bool
}
