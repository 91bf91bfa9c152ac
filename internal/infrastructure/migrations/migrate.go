// Package migrations aplica el esquema SQL embebido con golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var files embed.FS

const sourcePath = "sql"

// Migrator ejecuta las migraciones sobre el pool de la aplicación.
type Migrator struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewMigrator construye el migrador.
func NewMigrator(pool *pgxpool.Pool, log zerolog.Logger) *Migrator {
	return &Migrator{pool: pool, log: log}
}

// Up aplica todas las migraciones pendientes.
func (m *Migrator) Up() error {
	mig, err := m.open()
	if err != nil {
		return err
	}
	defer mig.Close()

	if err := mig.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info().Msg("migraciones: sin cambios pendientes")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	return m.logVersion(mig, "migraciones aplicadas")
}

// Down revierte una versión.
func (m *Migrator) Down() error {
	mig, err := m.open()
	if err != nil {
		return err
	}
	defer mig.Close()

	if err := mig.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info().Msg("migraciones: nada que revertir")
			return nil
		}
		return fmt.Errorf("migrate down: %w", err)
	}
	return m.logVersion(mig, "migración revertida")
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	source, err := iofs.New(files, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("fuente de migraciones: %w", err)
	}

	// El driver cierra el *sql.DB con mig.Close(); no cierra el pool.
	db := stdlib.OpenDBFromPool(m.pool)
	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("driver pgx: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("crear migrador: %w", err)
	}
	return mig, nil
}

func (m *Migrator) logVersion(mig *migrate.Migrate, msg string) error {
	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("versión de migración: %w", err)
	}
	m.log.Info().Uint("version", version).Bool("dirty", dirty).Msg(msg)
	return nil
}
