// Package migrations embebe el esquema SQL y lo aplica con golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

//go:embed *.sql
var files embed.FS

// Up aplica las migraciones pendientes sobre el pool. ErrNoChange no es error.
func Up(pool *pgxpool.Pool, log zerolog.Logger) error {
	src, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("migrations: fuente: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	driver, err := pgx.WithInstance(db, &pgx.Config{})
	if err != nil {
		return fmt.Errorf("migrations: driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("migrations: instancia: %w", err)
	}

	defer func() { _, _ = m.Close() }()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: up: %w", err)
	}
	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("migrations: version: %w", verr)
	}
	if dirty {
		return fmt.Errorf("migrations: versión %d marcada como dirty", version)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Uint("version", version).Msg("migraciones al día")
	} else {
		log.Info().Uint("version", version).Msg("migraciones aplicadas")
	}
	return nil
}
