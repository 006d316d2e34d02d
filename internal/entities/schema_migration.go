package entities

import "time"

// SchemaMigration records one applied schema version.
type SchemaMigration struct {
	Version   uint      `gorm:"primaryKey;autoIncrement:false" json:"version"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	AppliedAt time.Time `gorm:"not null" json:"applied_at"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}
