// Package repository provides the persistence capability set shared by every
// entity: point reads, full and paginated listings, counting, writes,
// deletes and transactional batching. One GORM-backed implementation serves
// all tables; entity packages wrap it with their own query extensions.
package repository

import (
	"gorm.io/gorm"

	"github.com/rodrigoluft/rh-backoffice/pkg/pagination"
)

type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the underlying handle for entity-specific queries.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

func (r *Repository[T]) GetByID(id int64) (*T, error) {
	var entity T
	err := r.db.Where("id = ?", id).First(&entity).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *Repository[T]) GetAll() ([]*T, error) {
	var entities []*T
	err := r.db.Order("id ASC").Find(&entities).Error
	return entities, err
}

// GetPage returns one page of rows ordered by id. Coordinates follow the
// strict contract: pageNumber >= 1 and pageSize within [1, 100].
func (r *Repository[T]) GetPage(req pagination.Request) ([]*T, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var entities []*T
	err := r.db.Order("id ASC").Offset(req.Offset()).Limit(req.PageSize).Find(&entities).Error
	return entities, err
}

func (r *Repository[T]) Count() (int64, error) {
	var entity T
	var count int64
	err := r.db.Model(&entity).Count(&count).Error
	return count, err
}

func (r *Repository[T]) Create(entity *T) error {
	return r.db.Create(entity).Error
}

func (r *Repository[T]) Update(entity *T) error {
	return r.db.Save(entity).Error
}

// DeleteByID removes the row and reports whether it existed.
func (r *Repository[T]) DeleteByID(id int64) (bool, error) {
	var entity T
	result := r.db.Where("id = ?", id).Delete(&entity)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Transaction runs fn against a repository bound to a single database
// transaction. A nil return commits the batch; any error rolls it back.
func (r *Repository[T]) Transaction(fn func(tx *Repository[T]) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository[T]{db: tx})
	})
}
