package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func New(dsn string, cfg PoolConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// withTx runs fn inside a transaction, rolling back when fn fails.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// updateSet accumulates "col = $n" fragments for partial updates.
type updateSet struct {
	parts []string
	args  []any
}

func newUpdateSet(args ...any) *updateSet {
	return &updateSet{parts: []string{"updated_at = NOW()"}, args: args}
}

func (u *updateSet) add(column string, value any) {
	u.args = append(u.args, value)
	u.parts = append(u.parts, fmt.Sprintf("%s = $%d", column, len(u.args)))
}

func (u *updateSet) clause() string {
	return strings.Join(u.parts, ", ")
}

// whereSet accumulates AND-ed predicates with positional args.
type whereSet struct {
	clauses []string
	args    []any
}

func (w *whereSet) add(format string, value any) {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *whereSet) next() int {
	return len(w.args) + 1
}

func (w *whereSet) clause() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.clauses, " AND ")
}

func trimmed(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return strings.TrimSpace(*ptr)
}
