// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// BaseRepository provides common row-level operations against one collection.
// It deliberately exposes no cross-collection transaction support: callers
// that need multi-table consistency own their compensation protocol.
type BaseRepository[T any, F any] struct {
	DB *gorm.DB
}

// NewBaseRepository creates a new base repository instance
func NewBaseRepository[T any, F any](db *gorm.DB) *BaseRepository[T, F] {
	return &BaseRepository[T, F]{
		DB: db,
	}
}

// getDB returns the database handle bound to the caller's context so that
// cancellation and deadlines propagate into every query
func (r *BaseRepository[T, F]) getDB(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx)
}

// ByID retrieves an entity by its ID. Returns nil without error when no row
// exists.
func (r *BaseRepository[T, F]) ByID(ctx context.Context, id uint) (*T, error) {
	db := r.getDB(ctx)

	var entity T
	err := db.Last(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find entity by ID %d: %w", id, err)
	}

	return &entity, nil
}

// Save inserts a new entity
func (r *BaseRepository[T, F]) Save(ctx context.Context, entity *T) error {
	db := r.getDB(ctx)

	if err := db.Create(entity).Error; err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}

	return nil
}

// SaveBatch inserts multiple entities as a single batched write. The batch
// runs inside one statement-level transaction, so a failure leaves no partial
// rows behind.
func (r *BaseRepository[T, F]) SaveBatch(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}

	db := r.getDB(ctx)

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(entities, 100).Error
	}); err != nil {
		return fmt.Errorf("failed to save batch entities: %w", err)
	}

	return nil
}

// DeleteByID removes an entity by its ID. Deleting a row that no longer
// exists is not an error.
func (r *BaseRepository[T, F]) DeleteByID(ctx context.Context, id uint) error {
	db := r.getDB(ctx)

	var entity T
	if err := db.Delete(&entity, id).Error; err != nil {
		return fmt.Errorf("failed to delete entity by ID %d: %w", id, err)
	}

	return nil
}
