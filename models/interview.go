package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InterviewType represents the kind of interview a questionnaire is run as
type InterviewType string

const (
	InterviewTypeOnsite  InterviewType = "onsite"
	InterviewTypePresite InterviewType = "presite"
)

// String returns the string representation of the type
func (t InterviewType) String() string {
	return string(t)
}

// Valid checks if the interview type is valid
func (t InterviewType) Valid() bool {
	switch t {
	case InterviewTypeOnsite, InterviewTypePresite:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for InterviewType
func (t *InterviewType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = InterviewType(v)
	case []byte:
		*t = InterviewType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into InterviewType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for InterviewType
func (t InterviewType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid InterviewType: %s", t)
	}
	return string(t), nil
}

// InterviewStatus represents the lifecycle status of an interview
type InterviewStatus string

const (
	InterviewStatusPending    InterviewStatus = "pending"
	InterviewStatusInProgress InterviewStatus = "in-progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
)

// String returns the string representation of the status
func (s InterviewStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewStatusPending, InterviewStatusInProgress, InterviewStatusCompleted:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for InterviewStatus
func (s *InterviewStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = InterviewStatus(v)
	case []byte:
		*s = InterviewStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into InterviewStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for InterviewStatus
func (s InterviewStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid InterviewStatus: %s", s)
	}
	return string(s), nil
}

// Interview is the header row of an interview aggregate. The aggregate also
// owns its role links, response placeholders and (for single-role public
// interviews) response-role links; all owned rows share the interview's
// lifetime and are removed together when provisioning compensates.
type Interview struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UUID            uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_interviews_uuid" json:"uuid"`
	Name            string          `gorm:"size:512;not null" json:"name"`
	ProgramID       uint            `gorm:"not null;index:idx_interviews_program_id" json:"program_id"`
	PhaseID         uint            `gorm:"not null;index:idx_interviews_phase_id" json:"phase_id"`
	QuestionnaireID uint            `gorm:"not null;index:idx_interviews_questionnaire_id" json:"questionnaire_id"`
	ContactID       *uint           `gorm:"index:idx_interviews_contact_id" json:"contact_id,omitempty"`
	Contact         *Contact        `gorm:"foreignKey:ContactID;references:ID" json:"contact,omitempty"`
	CompanyID       uint            `gorm:"not null;index:idx_interviews_company_id" json:"company_id"`
	InterviewType   InterviewType   `gorm:"type:interview_type_enum;not null" json:"interview_type"`
	IsPublic        bool            `gorm:"not null;default:false" json:"is_public"`
	Enabled         *bool           `gorm:"default:true" json:"enabled"`
	AccessCode      *string         `gorm:"size:64;index:idx_interviews_access_code" json:"access_code,omitempty"`
	Status          InterviewStatus `gorm:"type:interview_status_enum;not null;index:idx_interviews_status" json:"status"`
	CreatedBy       uint            `gorm:"not null" json:"created_by"`
	CreatedAt       time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

func (Interview) TableName() string {
	return "interviews"
}

// InterviewFilter represents filter criteria for interview queries
type InterviewFilter struct {
	ID        *uint
	UUID      *uuid.UUID
	ProgramID *uint
	PhaseID   *uint
	ContactID *uint
	CompanyID *uint
	IsPublic  *bool
	Status    *InterviewStatus
}

// InterviewRole links an interview to one of the roles it covers
type InterviewRole struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InterviewID uint      `gorm:"not null;index:idx_interview_roles_interview_id" json:"interview_id"`
	RoleID      uint      `gorm:"not null;index:idx_interview_roles_role_id" json:"role_id"`
	CompanyID   uint      `gorm:"not null" json:"company_id"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InterviewRole) TableName() string {
	return "interview_roles"
}

// InterviewResponse is the placeholder answer row created at provisioning
// time so that every question has a row to be filled in later. Rating,
// comments and answered-at stay null until the interview is taken.
type InterviewResponse struct {
	ID                      uint       `gorm:"primaryKey" json:"id"`
	InterviewID             uint       `gorm:"not null;index:idx_interview_responses_interview_id" json:"interview_id"`
	QuestionnaireQuestionID uint       `gorm:"not null;index:idx_interview_responses_question_id" json:"questionnaire_question_id"`
	CompanyID               uint       `gorm:"not null" json:"company_id"`
	RatingScore             *int       `json:"rating_score,omitempty"`
	Comments                *string    `gorm:"type:text" json:"comments,omitempty"`
	AnsweredAt              *time.Time `json:"answered_at,omitempty"`
	IsApplicable            *bool      `gorm:"default:true" json:"is_applicable"`
	CreatedBy               uint       `gorm:"not null" json:"created_by"`
	CreatedAt               time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InterviewResponse) TableName() string {
	return "interview_responses"
}

// InterviewResponseRole pre-populates the answering role for response rows of
// public single-role interviews
type InterviewResponseRole struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	InterviewResponseID uint      `gorm:"not null;index:idx_interview_response_roles_response_id" json:"interview_response_id"`
	InterviewID         uint      `gorm:"not null;index:idx_interview_response_roles_interview_id" json:"interview_id"`
	RoleID              uint      `gorm:"not null" json:"role_id"`
	CompanyID           uint      `gorm:"not null" json:"company_id"`
	CreatedBy           uint      `gorm:"not null" json:"created_by"`
	CreatedAt           time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InterviewResponseRole) TableName() string {
	return "interview_response_roles"
}
