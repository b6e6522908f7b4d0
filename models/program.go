package models

import (
	"time"
)

// Program represents an assessment program for a company. The questionnaire
// used for provisioning is chosen per interview type: onsite interviews use
// OnsiteQuestionnaireID, presite interviews use PresiteQuestionnaireID.
// Either may be unset if the program has not been configured for that type.
type Program struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	CompanyID              uint           `gorm:"not null;index:idx_programs_company_id" json:"company_id"`
	Company                *Company       `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	Name                   string         `gorm:"size:255;not null" json:"name"`
	OnsiteQuestionnaireID  *uint          `gorm:"index:idx_programs_onsite_questionnaire_id" json:"onsite_questionnaire_id,omitempty"`
	OnsiteQuestionnaire    *Questionnaire `gorm:"foreignKey:OnsiteQuestionnaireID;references:ID" json:"onsite_questionnaire,omitempty"`
	PresiteQuestionnaireID *uint          `gorm:"index:idx_programs_presite_questionnaire_id" json:"presite_questionnaire_id,omitempty"`
	PresiteQuestionnaire   *Questionnaire `gorm:"foreignKey:PresiteQuestionnaireID;references:ID" json:"presite_questionnaire,omitempty"`
	IsDeleted              *bool          `gorm:"default:false" json:"is_deleted"`
	CreatedBy              uint           `gorm:"not null" json:"created_by"`
	CreatedAt              time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt              *time.Time     `json:"updated_at,omitempty"`
}

func (Program) TableName() string {
	return "programs"
}

// QuestionnaireIDForType returns the questionnaire configured on the program
// for the given interview type, or nil if none is configured.
func (p *Program) QuestionnaireIDForType(interviewType InterviewType) *uint {
	switch interviewType {
	case InterviewTypePresite:
		return p.PresiteQuestionnaireID
	default:
		return p.OnsiteQuestionnaireID
	}
}

// ProgramFilter represents filter criteria for program queries
type ProgramFilter struct {
	ID        *uint
	CompanyID *uint
	IsDeleted *bool
}

// ProgramPhase represents one phase of an assessment program. Interviews are
// provisioned against a specific phase.
type ProgramPhase struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProgramID uint       `gorm:"not null;index:idx_program_phases_program_id" json:"program_id"`
	Program   *Program   `gorm:"foreignKey:ProgramID;references:ID" json:"program,omitempty"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Position  int        `gorm:"not null;default:0" json:"position"`
	IsDeleted *bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (ProgramPhase) TableName() string {
	return "program_phases"
}

// ProgramPhaseFilter represents filter criteria for program phase queries
type ProgramPhaseFilter struct {
	ID        *uint
	ProgramID *uint
	IsDeleted *bool
}
