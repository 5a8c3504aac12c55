// Package sqlrepo implements the collecte repositories on database/sql through
// sqlx. The same code serves postgres (lib/pq) in production and sqlite
// (modernc.org/sqlite) for local runs and tests; queries are written with "?"
// placeholders and rebound for the active driver.
package sqlrepo

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/models/m_outbox"
	"github.com/light-bringer/collecte-service/internal/pkg/ddl"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed schema.sql
var schema string

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to the database and verifies the connection. For sqlite the
// dsn is a file path; foreign keys are switched on and timestamps are
// written in a sortable text form.
func Open(ctx context.Context, driver, dsn string, opts Options) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
		// sqlite serialises writers anyway; one connection avoids SQLITE_BUSY
		opts.MaxOpenConns = 1
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	log.Printf("[SQL] connected driver=%s", driver)
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range ddl.Split(schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// DBExecutor is satisfied by *sqlx.DB and *sqlx.Tx.
type DBExecutor interface {
	sqlx.ExtContext
}

// withTx runs fn in a transaction, committing on success.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isDuplicate reports a unique constraint violation on either driver.
func isDuplicate(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

// writeError maps a failed write: a unique violation, or a pre-check that
// already returned target, becomes target.
func writeError(err, target error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, target) || isDuplicate(err) {
		return target
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func getOne(ctx context.Context, q DBExecutor, dest interface{}, b *query.Builder) error {
	stmt, args := b.BuildSQL()
	return sqlx.GetContext(ctx, q, dest, q.Rebind(stmt), args...)
}

func selectAll(ctx context.Context, q DBExecutor, dest interface{}, b *query.Builder) error {
	stmt, args := b.BuildSQL()
	return sqlx.SelectContext(ctx, q, dest, q.Rebind(stmt), args...)
}

func count(ctx context.Context, q DBExecutor, b *query.Builder) (int64, error) {
	var n int64
	if err := getOne(ctx, q, &n, b.Count()); err != nil {
		return 0, err
	}
	return n, nil
}

// namedInsert renders an INSERT for sqlx named binding.
func namedInsert(table string, cols []string) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(names, ", "))
}

var errNoRowsUpdated = errors.New("no rows updated")

// updateColumns writes set on the row identified by keyCol = key.
func updateColumns(ctx context.Context, q DBExecutor, table, keyCol, key string, set map[string]interface{}) error {
	cols := make([]string, 0, len(set))
	for c := range set {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	assignments := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, c := range cols {
		assignments[i] = c + " = ?"
		args = append(args, set[c])
	}
	args = append(args, key)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", table, strings.Join(assignments, ", "), keyCol)
	res, err := q.ExecContext(ctx, q.Rebind(stmt), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNoRowsUpdated
	}
	return nil
}

type outboxRow struct {
	EventID      string         `db:"event_id"`
	EventType    string         `db:"event_type"`
	AggregateID  string         `db:"aggregate_id"`
	Payload      sql.NullString `db:"payload"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	ProcessedAt  sql.NullTime   `db:"processed_at"`
	RetryCount   int64          `db:"retry_count"`
	ErrorMessage sql.NullString `db:"error_message"`
}

// insertEvents writes pending domain events to the outbox inside the
// caller's transaction.
func insertEvents(ctx context.Context, q DBExecutor, events []domain.DomainEvent, now time.Time) error {
	if len(events) == 0 {
		return nil
	}
	enriched, err := contracts.EnrichEvents(events, now)
	if err != nil {
		return err
	}
	stmt := namedInsert(m_outbox.TableName, m_outbox.Columns)
	for _, ev := range enriched {
		row := outboxRow{
			EventID:     ev.EventID,
			EventType:   ev.EventType,
			AggregateID: ev.AggregateID,
			Payload:     nullString(ev.Payload),
			Status:      ev.Status,
			CreatedAt:   ev.CreatedAt.UTC(),
		}
		if _, err := sqlx.NamedExecContext(ctx, q, stmt, row); err != nil {
			return fmt.Errorf("failed to insert outbox event: %w", err)
		}
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
