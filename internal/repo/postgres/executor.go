package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/txn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB — общий контракт pgxpool.Pool и pgx.Tx (и pgxmock в тестах).
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// executor — выбирает транзакцию из контекста, если она открыта, иначе пул.
type executor struct {
	pool DB
}

func (e executor) db(ctx context.Context) DB {
	if tx, ok := txn.TxFromContext(ctx); ok {
		return tx
	}
	return e.pool
}

// atomically — выполняет fn в транзакции (или в savepoint, если транзакция уже открыта).
func (e executor) atomically(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := e.db(ctx).Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// После Commit откат вернёт ErrTxClosed — это штатно.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const pgForeignKeyViolation = "23503"

// mapErr — переводит ошибки драйвера в ошибки домена.
func mapErr(kind domain.Kind, id string, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound(kind, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return &domain.ReferenceError{
			Kind:       kind,
			ID:         id,
			Constraint: pgErr.ConstraintName,
			OnDelete:   op == "delete",
		}
	}
	return fmt.Errorf("%s %s: %w", op, kind, err)
}

// collect — читает все строки через scan и закрывает rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// affectedOrNotFound — UPDATE/DELETE без затронутых строк означает отсутствие записи.
func affectedOrNotFound(tag pgconn.CommandTag, kind domain.Kind, id string) error {
	if tag.RowsAffected() == 0 {
		return domain.NotFound(kind, id)
	}
	return nil
}
