package models

import (
	"time"
)

// Questionnaire is the root of a section -> step -> question hierarchy.
// Provisioning flattens the hierarchy into an ordered question-id list;
// soft-deleted nodes are skipped at every level.
type Questionnaire struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CompanyID uint       `gorm:"not null;index:idx_questionnaires_company_id" json:"company_id"`
	Company   *Company   `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	IsDeleted *bool      `gorm:"default:false" json:"is_deleted"`
	CreatedBy uint       `gorm:"not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (Questionnaire) TableName() string {
	return "questionnaires"
}

// QuestionnaireFilter represents filter criteria for questionnaire queries
type QuestionnaireFilter struct {
	ID        *uint
	CompanyID *uint
	IsDeleted *bool
}

// QuestionnaireSection is a top-level grouping within a questionnaire
type QuestionnaireSection struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	QuestionnaireID uint           `gorm:"not null;index:idx_questionnaire_sections_questionnaire_id" json:"questionnaire_id"`
	Questionnaire   *Questionnaire `gorm:"foreignKey:QuestionnaireID;references:ID" json:"questionnaire,omitempty"`
	Title           string         `gorm:"size:512;not null" json:"title"`
	IsDeleted       *bool          `gorm:"default:false" json:"is_deleted"`
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (QuestionnaireSection) TableName() string {
	return "questionnaire_sections"
}

// QuestionnaireStep is a grouping of questions within a section
type QuestionnaireStep struct {
	ID        uint                  `gorm:"primaryKey" json:"id"`
	SectionID uint                  `gorm:"not null;index:idx_questionnaire_steps_section_id" json:"section_id"`
	Section   *QuestionnaireSection `gorm:"foreignKey:SectionID;references:ID" json:"section,omitempty"`
	Title     string                `gorm:"size:512;not null" json:"title"`
	IsDeleted *bool                 `gorm:"default:false" json:"is_deleted"`
	CreatedAt time.Time             `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (QuestionnaireStep) TableName() string {
	return "questionnaire_steps"
}

// QuestionnaireQuestion is a single question within a step. Provisioning
// creates one placeholder response row per non-deleted question.
type QuestionnaireQuestion struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	StepID    uint               `gorm:"not null;index:idx_questionnaire_questions_step_id" json:"step_id"`
	Step      *QuestionnaireStep `gorm:"foreignKey:StepID;references:ID" json:"step,omitempty"`
	Text      string             `gorm:"type:text;not null" json:"text"`
	IsDeleted *bool              `gorm:"default:false" json:"is_deleted"`
	CreatedAt time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (QuestionnaireQuestion) TableName() string {
	return "questionnaire_questions"
}
