package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/readtrack/internal/entities"
)

// Step is one schema version. Statements run one at a time, in order, for the
// dialect of the open database.
type Step struct {
	Version    uint
	Name       string
	Statements map[Dialect][]string
}

// StepStatus reports whether a known step has been applied.
type StepStatus struct {
	Version   uint
	Name      string
	AppliedAt *time.Time
}

func (s StepStatus) Applied() bool {
	return s.AppliedAt != nil
}

// Migrator applies Steps in version order and records each applied version
// in schema_migrations.
type Migrator struct {
	db    *Database
	steps []Step
}

// Migrator returns a migrator over the built-in schema steps.
func (d *Database) Migrator() *Migrator {
	return NewMigrator(d, Steps)
}

func NewMigrator(db *Database, steps []Step) *Migrator {
	return &Migrator{db: db, steps: steps}
}

// Migrate brings the schema up to date.
func (d *Database) Migrate(ctx context.Context) error {
	return d.Migrator().Up(ctx)
}

// Up applies every pending step inside a single transaction. On failure
// nothing is applied and the error wraps ErrMigration. Running Up on an
// up-to-date schema changes nothing.
func (m *Migrator) Up(ctx context.Context) error {
	err := m.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureVersionTable(tx); err != nil {
			return err
		}

		applied, err := appliedVersions(tx)
		if err != nil {
			return err
		}

		for _, step := range m.steps {
			if _, ok := applied[step.Version]; ok {
				continue
			}
			if err := m.apply(tx, step); err != nil {
				return err
			}
			log.Printf("Applied schema migration %d (%s)", step.Version, step.Name)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMigration, err)
	}
	return nil
}

func (m *Migrator) apply(tx *gorm.DB, step Step) error {
	statements, ok := step.Statements[m.db.dialect]
	if !ok {
		return fmt.Errorf("step %d %s on %s: %w", step.Version, step.Name, m.db.dialect, ErrNotImplemented)
	}

	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("step %d %s: %w", step.Version, step.Name, err)
		}
	}

	record := entities.SchemaMigration{
		Version:   step.Version,
		Name:      step.Name,
		AppliedAt: time.Now().UTC(),
	}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("record step %d: %w", step.Version, err)
	}
	return nil
}

// Status lists every known step with the time it was applied, if it was.
func (m *Migrator) Status(ctx context.Context) ([]StepStatus, error) {
	tx := m.db.DB.WithContext(ctx)

	applied := map[uint]time.Time{}
	if tx.Migrator().HasTable(&entities.SchemaMigration{}) {
		var err error
		if applied, err = appliedVersions(tx); err != nil {
			return nil, classify(err)
		}
	}

	statuses := make([]StepStatus, 0, len(m.steps))
	for _, step := range m.steps {
		status := StepStatus{Version: step.Version, Name: step.Name}
		if at, ok := applied[step.Version]; ok {
			status.AppliedAt = &at
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func ensureVersionTable(tx *gorm.DB) error {
	if tx.Migrator().HasTable(&entities.SchemaMigration{}) {
		return nil
	}
	if err := tx.Migrator().CreateTable(&entities.SchemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func appliedVersions(tx *gorm.DB) (map[uint]time.Time, error) {
	var rows []entities.SchemaMigration
	if err := tx.Order("version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}

	applied := make(map[uint]time.Time, len(rows))
	for _, row := range rows {
		applied[row.Version] = row.AppliedAt
	}
	return applied, nil
}
