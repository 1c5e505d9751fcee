//go:build integration

package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Gunvolt24/jobboard/migrations"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver name = "pgx"
	"github.com/pressly/goose/v3"
)

// MigrationsStatus — признак применения по версии миграции.
type MigrationsStatus map[int64]bool

// openGoose — goose-провайдер поверх отдельного database/sql подключения по DSN.
func openGoose(dsn string) (*goose.Provider, func() error, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	p, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("goose provider: %w", err)
	}
	return p, p.Close, nil
}

// ApplyMigrationsGoose — применяет все миграции к базе по DSN.
func ApplyMigrationsGoose(ctx context.Context, dsn string) error {
	p, closeFn, err := openGoose(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// RedoMigrationsGoose — откатывает схему до нуля и накатывает заново.
// Падает, если down-секция не убирает всё, что создаёт up.
func RedoMigrationsGoose(ctx context.Context, dsn string) (MigrationsStatus, error) {
	p, closeFn, err := openGoose(dsn)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFn() }()

	if _, err := p.DownTo(ctx, 0); err != nil {
		return nil, fmt.Errorf("goose down: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return nil, fmt.Errorf("goose up after down: %w", err)
	}

	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("goose status: %w", err)
	}
	out := make(MigrationsStatus, len(statuses))
	for _, s := range statuses {
		out[s.Source.Version] = s.State == goose.StateApplied
	}
	return out, nil
}
