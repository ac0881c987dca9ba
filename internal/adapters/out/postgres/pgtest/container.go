// Package pgtest starts a throwaway PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a running container plus a GORM connection to it.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and migrates models into it.
func Start(ctx context.Context, models ...any) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(models...); err != nil {
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties the given tables.
func (d *Database) Truncate(tables ...string) error {
	return d.DB.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
