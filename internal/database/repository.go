package database

import (
	"fmt"
	"sort"
	"strings"
)

// Key selects rows by column equality.
type Key map[string]any

func (k Key) String() string {
	cols := make([]string, 0, len(k))
	for col := range k {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, fmt.Sprintf("%s=%v", col, k[col]))
	}
	return strings.Join(parts, ",")
}

// Descriptor binds the generic Repository to one entity type T and its
// partial form P.
type Descriptor[T any, P any] struct {
	// Name appears in error messages.
	Name string

	// KeyOf returns the primary key of a stored row.
	KeyOf func(T) Key

	// Build turns a create patch into a new row. It reports missing required
	// fields with Missing.
	Build func(P) (T, error)

	// Merge folds a patch onto a loaded row.
	Merge func(T, P) T

	// Columns lists the column values Update writes back.
	Columns func(T) map[string]any

	// Check validates a patch beyond its struct tags. Optional.
	Check func(P) error

	// OrderBy sorts FetchAll and FetchWhere. Defaults to "id".
	OrderBy string
}

// Repository implements fetch/create/update/delete for one entity type.
// It holds no state besides its descriptor; every call runs in the
// caller's Scope.
type Repository[T any, P any] struct {
	desc Descriptor[T, P]
}

func NewRepository[T any, P any](desc Descriptor[T, P]) Repository[T, P] {
	if desc.OrderBy == "" {
		desc.OrderBy = "id"
	}
	return Repository[T, P]{desc: desc}
}

// FetchOne returns the single row matching key. Zero rows is ErrNotFound,
// more than one is ErrAmbiguous.
func (r Repository[T, P]) FetchOne(s *Scope, key Key) (*T, error) {
	var rows []T
	if err := s.Tx().Where(map[string]any(key)).Limit(2).Find(&rows).Error; err != nil {
		return nil, classify(err)
	}

	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("%s %s: %w", r.desc.Name, key, ErrNotFound)
	case 1:
		return &rows[0], nil
	default:
		return nil, fmt.Errorf("%s %s: %w", r.desc.Name, key, ErrAmbiguous)
	}
}

// FetchAll loads every row into memory.
func (r Repository[T, P]) FetchAll(s *Scope) ([]T, error) {
	return r.FetchWhere(s, nil)
}

// FetchWhere loads every row matching key. A nil key matches all rows.
func (r Repository[T, P]) FetchWhere(s *Scope, key Key) ([]T, error) {
	rows := []T{}
	query := s.Tx().Order(r.desc.OrderBy)
	if len(key) > 0 {
		query = query.Where(map[string]any(key))
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// Count returns the number of stored rows.
func (r Repository[T, P]) Count(s *Scope) (int64, error) {
	var n int64
	if err := s.Tx().Model(new(T)).Count(&n).Error; err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// Create validates and inserts a new row, then returns it as stored.
func (r Repository[T, P]) Create(s *Scope, patch P) (*T, error) {
	if err := r.validate(patch); err != nil {
		return nil, err
	}

	row, err := r.desc.Build(patch)
	if err != nil {
		return nil, err
	}
	return r.Insert(s, row)
}

// Insert stores an already built row. The key is taken from the INSERT
// itself, then the row is re-read so server defaults are populated.
func (r Repository[T, P]) Insert(s *Scope, row T) (*T, error) {
	if err := s.Tx().Create(&row).Error; err != nil {
		return nil, classify(err)
	}
	return r.FetchOne(s, r.desc.KeyOf(row))
}

// Update loads the row at key, merges patch onto it, writes it back and
// returns the stored result.
func (r Repository[T, P]) Update(s *Scope, key Key, patch P) (*T, error) {
	if err := r.validate(patch); err != nil {
		return nil, err
	}

	current, err := r.FetchOne(s, key)
	if err != nil {
		return nil, err
	}

	merged := r.desc.Merge(*current, patch)
	if err := s.Tx().Model(new(T)).Where(map[string]any(key)).Updates(r.desc.Columns(merged)).Error; err != nil {
		return nil, classify(err)
	}
	return r.FetchOne(s, r.desc.KeyOf(merged))
}

// Delete removes the rows matching key and reports how many went away.
// Deleting a missing key is not an error.
func (r Repository[T, P]) Delete(s *Scope, key Key) (int64, error) {
	result := s.Tx().Where(map[string]any(key)).Delete(new(T))
	if result.Error != nil {
		return 0, classify(result.Error)
	}
	return result.RowsAffected, nil
}

func (r Repository[T, P]) validate(patch P) error {
	if err := Validate(patch); err != nil {
		return err
	}
	if r.desc.Check != nil {
		return r.desc.Check(patch)
	}
	return nil
}
