package repository

import (
	"context"
	"fmt"

	"github.com/attestix/attestix/models"
	"gorm.io/gorm"
)

// InterviewRepositoryImpl implements the InterviewRepository interface
type InterviewRepositoryImpl struct {
	*BaseRepository[models.Interview, models.InterviewFilter]
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &InterviewRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Interview, models.InterviewFilter](db),
	}
}

// SaveRoles inserts the role links of an interview as one batched write
func (r *InterviewRepositoryImpl) SaveRoles(ctx context.Context, roles []*models.InterviewRole) error {
	if len(roles) == 0 {
		return nil
	}

	db := r.getDB(ctx)
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(roles, 100).Error
	}); err != nil {
		return fmt.Errorf("failed to save interview roles: %w", err)
	}

	return nil
}

// SaveResponses inserts the response placeholders of an interview as one
// batched write
func (r *InterviewRepositoryImpl) SaveResponses(ctx context.Context, responses []*models.InterviewResponse) error {
	if len(responses) == 0 {
		return nil
	}

	db := r.getDB(ctx)
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(responses, 100).Error
	}); err != nil {
		return fmt.Errorf("failed to save interview responses: %w", err)
	}

	return nil
}

// SaveResponseRoles inserts the response-role links of an interview as one
// batched write
func (r *InterviewRepositoryImpl) SaveResponseRoles(ctx context.Context, responseRoles []*models.InterviewResponseRole) error {
	if len(responseRoles) == 0 {
		return nil
	}

	db := r.getDB(ctx)
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(responseRoles, 100).Error
	}); err != nil {
		return fmt.Errorf("failed to save interview response roles: %w", err)
	}

	return nil
}

// DeleteRolesByInterviewID removes all role links of an interview
func (r *InterviewRepositoryImpl) DeleteRolesByInterviewID(ctx context.Context, interviewID uint) error {
	db := r.getDB(ctx)

	if err := db.Where("interview_id = ?", interviewID).Delete(&models.InterviewRole{}).Error; err != nil {
		return fmt.Errorf("failed to delete roles of interview %d: %w", interviewID, err)
	}

	return nil
}

// DeleteResponsesByInterviewID removes all response placeholders of an interview
func (r *InterviewRepositoryImpl) DeleteResponsesByInterviewID(ctx context.Context, interviewID uint) error {
	db := r.getDB(ctx)

	if err := db.Where("interview_id = ?", interviewID).Delete(&models.InterviewResponse{}).Error; err != nil {
		return fmt.Errorf("failed to delete responses of interview %d: %w", interviewID, err)
	}

	return nil
}

// DeleteResponseRolesByInterviewID removes all response-role links of an interview
func (r *InterviewRepositoryImpl) DeleteResponseRolesByInterviewID(ctx context.Context, interviewID uint) error {
	db := r.getDB(ctx)

	if err := db.Where("interview_id = ?", interviewID).Delete(&models.InterviewResponseRole{}).Error; err != nil {
		return fmt.Errorf("failed to delete response roles of interview %d: %w", interviewID, err)
	}

	return nil
}

// RolesByInterviewID retrieves the role links of an interview
func (r *InterviewRepositoryImpl) RolesByInterviewID(ctx context.Context, interviewID uint) ([]*models.InterviewRole, error) {
	db := r.getDB(ctx)

	var roles []*models.InterviewRole
	if err := db.Where("interview_id = ?", interviewID).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}

	return roles, nil
}

// ResponsesByInterviewID retrieves the response placeholders of an interview
func (r *InterviewRepositoryImpl) ResponsesByInterviewID(ctx context.Context, interviewID uint) ([]*models.InterviewResponse, error) {
	db := r.getDB(ctx)

	var responses []*models.InterviewResponse
	if err := db.Where("interview_id = ?", interviewID).Order("id ASC").Find(&responses).Error; err != nil {
		return nil, err
	}

	return responses, nil
}

// ResponseRolesByInterviewID retrieves the response-role links of an interview
func (r *InterviewRepositoryImpl) ResponseRolesByInterviewID(ctx context.Context, interviewID uint) ([]*models.InterviewResponseRole, error) {
	db := r.getDB(ctx)

	var responseRoles []*models.InterviewResponseRole
	if err := db.Where("interview_id = ?", interviewID).Order("id ASC").Find(&responseRoles).Error; err != nil {
		return nil, err
	}

	return responseRoles, nil
}
