package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// EntityMapper converts between a domain type D and its database model E.
// Fields that live in other tables are left zero by ToDomain; the owning
// store assembles them.
type EntityMapper[D any, E any] interface {
	ToDomain(entity E) D
	ToModel(domain D) E
}

// Repository provides generic Query-based persistence operations shared by
// the concrete stores.
type Repository[D any, E any] struct {
	db     Database
	mapper EntityMapper[D, E]
	label  string
}

// NewRepository creates a Repository; label names the entity in errors.
func NewRepository[D any, E any](db Database, mapper EntityMapper[D, E], label string) Repository[D, E] {
	return Repository[D, E]{db: db, mapper: mapper, label: label}
}

// Find retrieves all entities matching the query.
func (r Repository[D, E]) Find(ctx context.Context, query Query) ([]D, error) {
	var entities []E
	if result := query.Apply(r.modelDB(ctx)).Find(&entities); result.Error != nil {
		return nil, fmt.Errorf("find %s: %w", r.label, result.Error)
	}

	domains := make([]D, len(entities))
	for i, entity := range entities {
		domains[i] = r.mapper.ToDomain(entity)
	}
	return domains, nil
}

// FindOne retrieves the first entity matching the query, or ErrNotFound.
func (r Repository[D, E]) FindOne(ctx context.Context, query Query) (D, error) {
	var entity E
	if result := query.Apply(r.db.Session(ctx)).First(&entity); result.Error != nil {
		var zero D
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return zero, fmt.Errorf("%w: %s", ErrNotFound, r.label)
		}
		return zero, fmt.Errorf("find one %s: %w", r.label, result.Error)
	}
	return r.mapper.ToDomain(entity), nil
}

// Count returns the number of entities matching the query.
func (r Repository[D, E]) Count(ctx context.Context, query Query) (int64, error) {
	var count int64
	if result := query.Apply(r.modelDB(ctx)).Count(&count); result.Error != nil {
		return 0, fmt.Errorf("count %s: %w", r.label, result.Error)
	}
	return count, nil
}

// Exists reports whether any entity matches the query.
func (r Repository[D, E]) Exists(ctx context.Context, query Query) (bool, error) {
	count, err := r.Count(ctx, query)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteBy removes all entities matching the query.
func (r Repository[D, E]) DeleteBy(ctx context.Context, query Query) error {
	if result := query.Apply(r.db.Session(ctx)).Delete(new(E)); result.Error != nil {
		return fmt.Errorf("delete %s: %w", r.label, result.Error)
	}
	return nil
}

// DB returns a plain GORM session for store-specific queries.
func (r Repository[D, E]) DB(ctx context.Context) *gorm.DB {
	return r.db.Session(ctx)
}

// Mapper returns the entity mapper.
func (r Repository[D, E]) Mapper() EntityMapper[D, E] {
	return r.mapper
}

func (r Repository[D, E]) modelDB(ctx context.Context) *gorm.DB {
	return r.db.Session(ctx).Model(new(E))
}
