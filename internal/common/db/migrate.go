package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"postboard/internal/common/logger"
)

// ApplyMigrations runs all pending migrations from migrationsDir
// against databaseURL.
func ApplyMigrations(log *logger.Logger, databaseURL, migrationsDir string) error {
	m, err := migrate.New("file://"+migrationsDir, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Infof("migrations: no change")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Infof("migrations applied")
	return nil
}
