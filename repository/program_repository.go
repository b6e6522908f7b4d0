package repository

import (
	"context"
	"errors"

	"github.com/attestix/attestix/models"
	"gorm.io/gorm"
)

// ProgramRepositoryImpl implements the ProgramRepository interface
type ProgramRepositoryImpl struct {
	*BaseRepository[models.Program, models.ProgramFilter]
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &ProgramRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Program, models.ProgramFilter](db),
	}
}

// PhaseByID retrieves a phase of the given program. Returns nil without error
// when the phase does not exist or belongs to another program.
func (r *ProgramRepositoryImpl) PhaseByID(ctx context.Context, programID, phaseID uint) (*models.ProgramPhase, error) {
	db := r.getDB(ctx)

	var phase models.ProgramPhase
	err := db.Where("program_id = ?", programID).Last(&phase, phaseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &phase, nil
}
