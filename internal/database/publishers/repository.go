// Package publishers provides database operations for publishers.
package publishers

import (
	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/entities"
)

var descriptor = database.Descriptor[entities.Publisher, entities.PublisherPatch]{
	Name: "publisher",
	KeyOf: func(p entities.Publisher) database.Key {
		return byID(p.ID)
	},
	Build: func(p entities.PublisherPatch) (entities.Publisher, error) {
		if p.Name == nil || *p.Name == "" {
			return entities.Publisher{}, database.Missing("name")
		}
		if p.Description == nil || *p.Description == "" {
			return entities.Publisher{}, database.Missing("description")
		}
		return entities.Publisher{}.Merge(p), nil
	},
	Merge: entities.Publisher.Merge,
	Columns: func(p entities.Publisher) map[string]any {
		return map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"city":        p.City,
		}
	},
	Check: func(p entities.PublisherPatch) error {
		return database.CheckNullable("city", p.City, "min=1,max=128")
	},
}

func byID(id uint16) database.Key {
	return database.Key{"id": id}
}

type Repository struct {
	base database.Repository[entities.Publisher, entities.PublisherPatch]
}

func NewRepository() *Repository {
	return &Repository{base: database.NewRepository(descriptor)}
}

func (r *Repository) FetchOne(s *database.Scope, id uint16) (*entities.Publisher, error) {
	return r.base.FetchOne(s, byID(id))
}

func (r *Repository) FetchAll(s *database.Scope) ([]entities.Publisher, error) {
	return r.base.FetchAll(s)
}

// Create requires both name and description.
func (r *Repository) Create(s *database.Scope, patch entities.PublisherPatch) (*entities.Publisher, error) {
	return r.base.Create(s, patch)
}

func (r *Repository) Update(s *database.Scope, id uint16, patch entities.PublisherPatch) (*entities.Publisher, error) {
	return r.base.Update(s, byID(id), patch)
}

// Delete removes the publisher. Its books stay, with publisher_id cleared.
func (r *Repository) Delete(s *database.Scope, id uint16) (int64, error) {
	return r.base.Delete(s, byID(id))
}

func (r *Repository) Count(s *database.Scope) (int64, error) {
	return r.base.Count(s)
}
