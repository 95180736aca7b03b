package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Config holds the connection parameters for the shared database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the key=value lib/pq connection string (no search_path).
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the URL form of the DSN used by golang-migrate.
func (c Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.Name, c.SSLMode)
}

// InitDB opens and pings the shared (public schema) connection pool.
func InitDB(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("Connected to database")
	return db, nil
}

// RunPublicMigrations applies the shared-schema migrations (clinics, users).
func RunPublicMigrations(cfg Config, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, cfg.URL())
	if err != nil {
		return fmt.Errorf("failed to init public migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply public migrations: %w", err)
	}
	log.Info().Msg("Public schema migrations applied")
	return nil
}

// ProvisionTenantSchema creates a tenant schema and applies the tenant
// migration set inside it. Safe to call again for an existing tenant; an
// up-to-date schema is a no-op.
func ProvisionTenantSchema(db *sql.DB, cfg Config, schema, migrationsPath string) error {
	if _, err := db.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %q`, schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", schema, err)
	}

	tenantURL := fmt.Sprintf("%s&search_path=%s&x-migrations-table=schema_migrations", cfg.URL(), schema)
	m, err := migrate.New("file://"+migrationsPath, tenantURL)
	if err != nil {
		return fmt.Errorf("failed to init tenant migrations for %s: %w", schema, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply tenant migrations for %s: %w", schema, err)
	}
	log.Info().Str("schema", schema).Msg("Tenant schema provisioned")
	return nil
}
