// Package migrations holds the database schema as goose SQL migrations
// embedded into the binary.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

// SetLogger routes goose's progress messages to logger.
func SetLogger(logger *zap.Logger) {
	goose.SetLogger(gooseLogger{logger.Sugar()})
}

type gooseLogger struct {
	sugar *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.sugar.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.sugar.Fatalf(strings.TrimSuffix(format, "\n"), v...)
}

// Up applies every pending migration to the database at dsn.
func Up(ctx context.Context, dsn string) error {
	return run(ctx, dsn, func(db *sql.DB) error {
		return goose.UpContext(ctx, db, ".")
	})
}

// Down rolls back the latest applied migration.
func Down(ctx context.Context, dsn string) error {
	return run(ctx, dsn, func(db *sql.DB) error {
		return goose.DownContext(ctx, db, ".")
	})
}

// Version reports the version of the latest applied migration.
func Version(ctx context.Context, dsn string) (int64, error) {
	var version int64
	err := run(ctx, dsn, func(db *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		version = v
		return err
	})
	return version, err
}

func run(ctx context.Context, dsn string, fn func(db *sql.DB) error) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open db error: %w", err)
	}
	defer db.Close()

	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db error: %w", err)
	}

	goose.SetBaseFS(files)
	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err = fn(db); err != nil {
		return fmt.Errorf("goose error: %w", err)
	}
	return nil
}
