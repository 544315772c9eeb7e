package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/creditgen/internal/domain/model"
	_ "modernc.org/sqlite"
)

// Run metadata stamped on every generation run.
const (
	DataSource = "Generated"
	ScoreModel = "FICO_8"
)

// SQLiteSink stores runs, scores and events in a sqlite database.
type SQLiteSink struct {
	db  *sql.DB
	now func() time.Time
}

// SQLiteOption configures a SQLiteSink.
type SQLiteOption func(*SQLiteSink)

// WithSQLiteClock sets the clock used for loaded_at.
func WithSQLiteClock(now func() time.Time) SQLiteOption {
	return func(s *SQLiteSink) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSQLiteSink opens (creating if needed) the database at path and applies
// the schema.
func NewSQLiteSink(ctx context.Context, path string, opts ...SQLiteOption) (*SQLiteSink, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty sqlite path", ErrInvalidInput)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	s := &SQLiteSink{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// sqliteDSN builds a file URI so '?' and '#' in path stay part of the name.
func sqliteDSN(path string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     path,
		OmitHost: true,
		RawQuery: "_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
	}
	return u.String()
}

func (s *SQLiteSink) migrate(ctx context.Context) error {
	for _, schema := range allSchemas() {
		if _, err := s.db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// WriteScores inserts scores for runID in one transaction.
func (s *SQLiteSink) WriteScores(ctx context.Context, runID string, scores []model.ScoreRecord) error {
	const query = `
		INSERT INTO credit_scores (run_id, seq, customer_id, bureau_name, credit_score, score_date, risk_category, score_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	return s.insertBatch(ctx, runID, query, len(scores), func(stmt *sql.Stmt, i int) error {
		r := scores[i]
		_, err := stmt.ExecContext(ctx, runID, i, r.CustomerID, string(r.Bureau), r.Score,
			r.AsOfDate.Format(time.DateOnly), string(r.RiskCategory), string(r.Kind))
		return err
	})
}

// WriteEvents inserts events for runID in one transaction.
func (s *SQLiteSink) WriteEvents(ctx context.Context, runID string, events []model.CreditEvent) error {
	const query = `
		INSERT INTO credit_events (run_id, seq, customer_id, event_type, event_date, impact_score, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	return s.insertBatch(ctx, runID, query, len(events), func(stmt *sql.Stmt, i int) error {
		e := events[i]
		_, err := stmt.ExecContext(ctx, runID, i, e.CustomerID, string(e.EventType),
			e.EventDate.Format(time.DateOnly), e.ImpactScore, e.Description)
		return err
	})
}

func (s *SQLiteSink) insertBatch(ctx context.Context, runID, query string, n int, exec func(*sql.Stmt, int) error) (err error) {
	if runID == "" {
		return fmt.Errorf("%w: empty run id", ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO generation_runs (run_id, loaded_at, data_source, score_model) VALUES (?, ?, ?, ?)`,
		runID, s.now().UTC(), DataSource, ScoreModel,
	); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range n {
		if err = exec(stmt, i); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// CountScores returns the number of score rows stored for runID.
func (s *SQLiteSink) CountScores(ctx context.Context, runID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM credit_scores WHERE run_id = ?`, runID)
}

// CountEvents returns the number of event rows stored for runID.
func (s *SQLiteSink) CountEvents(ctx context.Context, runID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM credit_events WHERE run_id = ?`, runID)
}

func (s *SQLiteSink) count(ctx context.Context, query, runID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

// Run returns the metadata stored for runID.
func (s *SQLiteSink) Run(ctx context.Context, runID string) (loadedAt time.Time, source, scoreModel string, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT loaded_at, data_source, score_model FROM generation_runs WHERE run_id = ?`, runID,
	).Scan(&loadedAt, &source, &scoreModel)
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("get run %q: %w", runID, err)
	}
	return loadedAt, source, scoreModel, nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
