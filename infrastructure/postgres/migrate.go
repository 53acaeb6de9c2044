package postgres

import (
	"embed"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"taskboard/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// migrationRecord is one row of the ledger of applied migration filenames.
type migrationRecord struct {
	ID         int    `gorm:"primaryKey;autoIncrement"`
	Name       string `gorm:"size:255;not null"`
	ExecutedAt time.Time
}

func (migrationRecord) TableName() string {
	return "migrations"
}

// RunMigrations applies the embedded SQL migrations in filename order,
// skipping those already recorded in the migrations ledger. Each migration
// runs in its own transaction together with its ledger insert, so a failed
// migration leaves neither schema change nor ledger entry behind.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			executed_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var applied []string
	if err := db.Model(&migrationRecord{}).Pluck("name", &applied).Error; err != nil {
		return fmt.Errorf("failed to read migrations ledger: %w", err)
	}
	appliedSet := make(map[string]bool, len(applied))
	for _, name := range applied {
		appliedSet[name] = true
	}

	for _, name := range names {
		if appliedSet[name] {
			logger.Debug("Skipping applied migration", "name", name)
			continue
		}

		sql, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(sql)).Error; err != nil {
				return err
			}
			return tx.Create(&migrationRecord{Name: name, ExecutedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", name, err)
		}

		logger.Info("Migration applied", "name", name)
	}

	return nil
}
