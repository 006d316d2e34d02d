package entities

import (
	"time"

	"github.com/oapi-codegen/nullable"
	"gorm.io/datatypes"
)

type Author struct {
	ID              uint64          `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Description     *string         `json:"description"`
	Birth           *datatypes.Date `json:"birth"`
	DateAdded       time.Time       `gorm:"<-:false" json:"date_added"`
	DateLastUpdated time.Time       `gorm:"<-:false" json:"date_last_updated"`
}

func (Author) TableName() string {
	return "author"
}

// AuthorPatch is the partial form of Author used by create and update.
type AuthorPatch struct {
	Name        *string                           `json:"name,omitempty" validate:"omitempty,min=1,max=512"`
	Description nullable.Nullable[string]         `json:"description,omitempty"`
	Birth       nullable.Nullable[datatypes.Date] `json:"birth,omitempty"`
}

// Merge folds p onto a copy of a.
func (a Author) Merge(p AuthorPatch) Author {
	setText(&a.Name, p.Name)
	setNullable(&a.Description, p.Description)
	setNullable(&a.Birth, p.Birth)
	return a
}
