// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository()
//	user, err := repo.Create(scope, entities.UserPatch{Name: entities.Ptr("ada")})
//	user, err = repo.Adopt(scope, 42, entities.UserPatch{Name: entities.Ptr("grace")})
package users

import (
	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

var descriptor = database.Descriptor[entities.User, entities.UserPatch]{
	Name: "user",
	KeyOf: func(u entities.User) database.Key {
		return byID(u.ID)
	},
	Build: func(p entities.UserPatch) (entities.User, error) {
		if p.Name == nil || *p.Name == "" {
			return entities.User{}, database.Missing("name")
		}
		return entities.User{}.Merge(p), nil
	},
	Merge: entities.User.Merge,
	Columns: func(u entities.User) map[string]any {
		return map[string]any{"name": u.Name}
	},
}

func byID(id uint8) database.Key {
	return database.Key{"id": id}
}

// Repository handles all user database operations.
type Repository struct {
	base database.Repository[entities.User, entities.UserPatch]
}

// NewRepository creates a new users repository.
func NewRepository() *Repository {
	return &Repository{base: database.NewRepository(descriptor)}
}

func (r *Repository) FetchOne(s *database.Scope, id uint8) (*entities.User, error) {
	return r.base.FetchOne(s, byID(id))
}

func (r *Repository) FetchAll(s *database.Scope) ([]entities.User, error) {
	return r.base.FetchAll(s)
}

// Create stores a user under the next free id. Ids stop at 255; beyond that
// the store rejects the insert with ErrConstraintViolation.
func (r *Repository) Create(s *database.Scope, patch entities.UserPatch) (*entities.User, error) {
	return r.base.Create(s, patch)
}

// Adopt stores a user under an id chosen by the caller, e.g. one carried
// over from another system. A taken id is a constraint violation.
func (r *Repository) Adopt(s *database.Scope, id uint8, patch entities.UserPatch) (*entities.User, error) {
	if id == 0 {
		return nil, &database.ValidationError{Field: "id", Reason: "must be at least 1"}
	}
	if err := database.Validate(patch); err != nil {
		return nil, err
	}

	user, err := descriptor.Build(patch)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return r.base.Insert(s, user)
}

func (r *Repository) Update(s *database.Scope, id uint8, patch entities.UserPatch) (*entities.User, error) {
	return r.base.Update(s, byID(id), patch)
}

// Delete removes the user. Users with recorded progress cannot be deleted.
func (r *Repository) Delete(s *database.Scope, id uint8) (int64, error) {
	return r.base.Delete(s, byID(id))
}

func (r *Repository) Count(s *database.Scope) (int64, error) {
	return r.base.Count(s)
}
