package entities

import "time"

// User ids are a single byte wide; the schema rejects anything above 255.
type User struct {
	ID              uint8     `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	DateAdded       time.Time `gorm:"<-:false" json:"date_added"`
	DateLastUpdated time.Time `gorm:"<-:false" json:"date_last_updated"`
}

func (User) TableName() string {
	return "user"
}

type UserPatch struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

func (u User) Merge(p UserPatch) User {
	setText(&u.Name, p.Name)
	return u
}
