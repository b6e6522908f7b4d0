// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/attestix/attestix/models"
)

// Repository is the capability surface the provisioning workflow consumes:
// row-level reads, single inserts, batched inserts and deletes against one
// collection. No cross-collection transaction is offered.
type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	DeleteByID(ctx context.Context, id uint) error
}

// ProgramRepository defines operations for programs and their phases
type ProgramRepository interface {
	Repository[models.Program, models.ProgramFilter]
	PhaseByID(ctx context.Context, programID, phaseID uint) (*models.ProgramPhase, error)
}

// QuestionnaireRepository defines the hierarchy reads the structure resolver
// needs. Every method filters soft-deleted rows and returns rows in natural
// storage order (ascending primary key).
type QuestionnaireRepository interface {
	Repository[models.Questionnaire, models.QuestionnaireFilter]
	SectionsByQuestionnaireID(ctx context.Context, questionnaireID uint) ([]*models.QuestionnaireSection, error)
	StepsBySectionID(ctx context.Context, sectionID uint) ([]*models.QuestionnaireStep, error)
	QuestionsByStepID(ctx context.Context, stepID uint) ([]*models.QuestionnaireQuestion, error)
}

// InterviewRepository defines operations for interview aggregates. The
// Delete* methods exist for compensation: the storage layer has no cascading
// deletes, so owned collections are removed explicitly in reverse creation
// order.
type InterviewRepository interface {
	Repository[models.Interview, models.InterviewFilter]
	SaveRoles(ctx context.Context, roles []*models.InterviewRole) error
	SaveResponses(ctx context.Context, responses []*models.InterviewResponse) error
	SaveResponseRoles(ctx context.Context, responseRoles []*models.InterviewResponseRole) error
	DeleteRolesByInterviewID(ctx context.Context, interviewID uint) error
	DeleteResponsesByInterviewID(ctx context.Context, interviewID uint) error
	DeleteResponseRolesByInterviewID(ctx context.Context, interviewID uint) error
	RolesByInterviewID(ctx context.Context, interviewID uint) ([]*models.InterviewRole, error)
	ResponsesByInterviewID(ctx context.Context, interviewID uint) ([]*models.InterviewResponse, error)
	ResponseRolesByInterviewID(ctx context.Context, interviewID uint) ([]*models.InterviewResponseRole, error)
}

// ContactRepository defines operations for contacts
type ContactRepository interface {
	Repository[models.Contact, models.ContactFilter]
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByCompany(ctx context.Context, companyID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
}
