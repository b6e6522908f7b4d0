package repository

import (
	"context"

	"github.com/attestix/attestix/models"
	"gorm.io/gorm"
)

// QuestionnaireRepositoryImpl implements the QuestionnaireRepository interface
type QuestionnaireRepositoryImpl struct {
	*BaseRepository[models.Questionnaire, models.QuestionnaireFilter]
}

// NewQuestionnaireRepository creates a new questionnaire repository
func NewQuestionnaireRepository(db *gorm.DB) QuestionnaireRepository {
	return &QuestionnaireRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Questionnaire, models.QuestionnaireFilter](db),
	}
}

// SectionsByQuestionnaireID retrieves the non-deleted sections of a
// questionnaire in natural storage order
func (r *QuestionnaireRepositoryImpl) SectionsByQuestionnaireID(ctx context.Context, questionnaireID uint) ([]*models.QuestionnaireSection, error) {
	db := r.getDB(ctx)

	var sections []*models.QuestionnaireSection
	err := db.Where("questionnaire_id = ? AND is_deleted = ?", questionnaireID, false).
		Order("id ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}

	return sections, nil
}

// StepsBySectionID retrieves the non-deleted steps of a section in natural
// storage order
func (r *QuestionnaireRepositoryImpl) StepsBySectionID(ctx context.Context, sectionID uint) ([]*models.QuestionnaireStep, error) {
	db := r.getDB(ctx)

	var steps []*models.QuestionnaireStep
	err := db.Where("section_id = ? AND is_deleted = ?", sectionID, false).
		Order("id ASC").
		Find(&steps).Error
	if err != nil {
		return nil, err
	}

	return steps, nil
}

// QuestionsByStepID retrieves the non-deleted questions of a step in natural
// storage order
func (r *QuestionnaireRepositoryImpl) QuestionsByStepID(ctx context.Context, stepID uint) ([]*models.QuestionnaireQuestion, error) {
	db := r.getDB(ctx)

	var questions []*models.QuestionnaireQuestion
	err := db.Where("step_id = ? AND is_deleted = ?", stepID, false).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	return questions, nil
}
