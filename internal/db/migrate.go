// internal/db/migrate.go
package db

import (
	"errors"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies pending schema migrations from sourcePath.
func Migrate(dsn, sourcePath string) error {
	m, err := migrate.New("file://"+sourcePath, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("migrations: nothing to apply")
			return nil
		}
		return err
	}

	log.Println("✅ Migrations applied")
	return nil
}
