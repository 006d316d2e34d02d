package entities

import (
	"time"

	"github.com/oapi-codegen/nullable"
	"gorm.io/datatypes"
)

type Book struct {
	ID              uint64          `gorm:"primaryKey" json:"id"`
	ISBN            *string         `gorm:"column:isbn" json:"isbn"`
	Name            string          `gorm:"not null" json:"name"`
	Description     *string         `json:"description"`
	Language        *string         `json:"language"`
	NSFW            bool            `gorm:"column:nsfw;not null" json:"nsfw"`
	PageCount       uint16          `gorm:"not null" json:"page_count"`
	ImageFormatted  bool            `gorm:"not null" json:"image_formatted"`
	PublisherID     *uint16         `json:"publisher_id"`
	DatePublished   *datatypes.Date `json:"date_published"`
	DateAdded       time.Time       `gorm:"<-:false" json:"date_added"`
	DateLastUpdated time.Time       `gorm:"<-:false" json:"date_last_updated"`
}

func (Book) TableName() string {
	return "book"
}

// BookPatch is the partial form of Book. NSFW, PageCount and ImageFormatted
// are non-null columns with defaults, so they follow the required-field rule.
type BookPatch struct {
	Name           *string                           `json:"name,omitempty" validate:"omitempty,min=1,max=512"`
	ISBN           nullable.Nullable[string]         `json:"isbn,omitempty"`
	Description    nullable.Nullable[string]         `json:"description,omitempty"`
	Language       nullable.Nullable[string]         `json:"language,omitempty"`
	NSFW           *bool                             `json:"nsfw,omitempty"`
	PageCount      *uint16                           `json:"page_count,omitempty"`
	ImageFormatted *bool                             `json:"image_formatted,omitempty"`
	PublisherID    nullable.Nullable[uint16]         `json:"publisher_id,omitempty"`
	DatePublished  nullable.Nullable[datatypes.Date] `json:"date_published,omitempty"`
}

func (b Book) Merge(p BookPatch) Book {
	setText(&b.Name, p.Name)
	setNullable(&b.ISBN, p.ISBN)
	setNullable(&b.Description, p.Description)
	setNullable(&b.Language, p.Language)
	setRequired(&b.NSFW, p.NSFW)
	setRequired(&b.PageCount, p.PageCount)
	setRequired(&b.ImageFormatted, p.ImageFormatted)
	setNullable(&b.PublisherID, p.PublisherID)
	setNullable(&b.DatePublished, p.DatePublished)
	return b
}

// BookAuthor links a book to one of its authors.
type BookAuthor struct {
	BookID    uint64    `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	AuthorID  uint64    `gorm:"primaryKey;autoIncrement:false" json:"author_id"`
	DateAdded time.Time `gorm:"<-:false" json:"date_added"`
}

func (BookAuthor) TableName() string {
	return "book_author"
}
