package seeder

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/Lumos-Labs-HQ/dashseed/internal/database"
)

// DB is the subset of *sql.DB the seeder uses.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type Options struct {
	BcryptCost int       // 0 means DefaultBcryptCost
	Out        io.Writer // progress lines; nil means stdout
	ErrOut     io.Writer // failure diagnostics; nil means stderr
}

type Stage string

const (
	StageCreate Stage = "create"
	StageHash   Stage = "hash"
	StageInsert Stage = "insert"
	StageCommit Stage = "commit"
)

// StepError reports which table and stage of the seeding run failed.
type StepError struct {
	Table string
	Stage Stage
	Key   string // primary key of the offending row, if any
	Err   error
}

func (e *StepError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Stage, e.Table, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Table, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Constraint names the violated constraint kind for insert failures.
func (e *StepError) Constraint() string {
	switch {
	case database.IsUniqueViolation(e.Err):
		return "unique"
	case database.IsNotNullViolation(e.Err):
		return "not null"
	default:
		return ""
	}
}

type TableCount struct {
	Table  string
	Exists bool
	Rows   int64
}
