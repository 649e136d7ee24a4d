package repository

import (
	"errors"

	"gorm.io/gorm"
)

// CRUD provides the shared storage operations for a single record type.
// Entity repositories embed it and add their own queries on top.
//
// Lookups return a nil record instead of an error when nothing matches;
// deciding whether that is a 404 is the caller's job.
type CRUD[T any] struct {
	db *gorm.DB
}

func NewCRUD[T any](db *gorm.DB) CRUD[T] {
	return CRUD[T]{db: db}
}

// Get returns the record with the given id, or nil when absent.
func (r CRUD[T]) Get(id uint) (*T, error) {
	var rec T
	err := r.db.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns at most limit records after skipping skip, in the
// storage's default order.
func (r CRUD[T]) List(skip, limit int) ([]T, error) {
	var recs []T
	err := r.db.Offset(skip).Limit(limit).Find(&recs).Error
	return recs, err
}

// Insert persists a new record. The id and server-set defaults are
// filled in on the passed record.
func (r CRUD[T]) Insert(rec *T) error {
	return r.db.Create(rec).Error
}

// Save writes back an already-loaded record.
func (r CRUD[T]) Save(rec *T) error {
	return r.db.Save(rec).Error
}

// Remove deletes the record with the given id and returns it, or nil
// when no such record exists.
func (r CRUD[T]) Remove(id uint) (*T, error) {
	rec, err := r.Get(id)
	if err != nil || rec == nil {
		return rec, err
	}
	if err := r.db.Delete(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}
