package entities

import "time"

// Progress is how far a user got in a book. There is at most one row per
// (user, book) pair.
type Progress struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	UserID          uint8     `gorm:"not null" json:"user_id"`
	BookID          uint64    `gorm:"not null" json:"book_id"`
	CurrentPage     uint16    `gorm:"not null" json:"current_page"`
	DateAdded       time.Time `gorm:"<-:false" json:"date_added"`
	DateLastUpdated time.Time `gorm:"<-:false" json:"date_last_updated"`
}

func (Progress) TableName() string {
	return "progress"
}

type ProgressPatch struct {
	UserID      *uint8  `json:"user_id,omitempty" validate:"omitempty,min=1"`
	BookID      *uint64 `json:"book_id,omitempty" validate:"omitempty,min=1"`
	CurrentPage *uint16 `json:"current_page,omitempty"`
}

func (p Progress) Merge(patch ProgressPatch) Progress {
	setRequired(&p.UserID, patch.UserID)
	setRequired(&p.BookID, patch.BookID)
	setRequired(&p.CurrentPage, patch.CurrentPage)
	return p
}
