package entities

import (
	"time"

	"github.com/oapi-codegen/nullable"
)

type Publisher struct {
	ID              uint16    `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `gorm:"not null" json:"description"`
	City            *string   `json:"city"`
	DateAdded       time.Time `gorm:"<-:false" json:"date_added"`
	DateLastUpdated time.Time `gorm:"<-:false" json:"date_last_updated"`
}

func (Publisher) TableName() string {
	return "publisher"
}

type PublisherPatch struct {
	Name        *string                   `json:"name,omitempty" validate:"omitempty,min=1,max=256"`
	Description *string                   `json:"description,omitempty" validate:"omitempty,min=1"`
	City        nullable.Nullable[string] `json:"city,omitempty"`
}

func (p Publisher) Merge(patch PublisherPatch) Publisher {
	setText(&p.Name, patch.Name)
	setText(&p.Description, patch.Description)
	setNullable(&p.City, patch.City)
	return p
}
