// Package storage persists export run history in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thirukguru/ocsf-export/service/config"
	_ "modernc.org/sqlite"
)

const defaultDBPath = "~/.ocsf-export/history.db"

const timestampLayout = "2006-01-02 15:04:05"

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("export run not found")

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	if strings.TrimSpace(dbPath) == "" {
		dbPath = defaultDBPath
	}
	resolved, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db}, nil
}

type service struct {
	db *sql.DB
}

func (s *service) SaveRun(ctx context.Context, input SaveRunInput) (runID int64, err error) {
	if input.AccountID == "" {
		return 0, errors.New("account id is required")
	}
	if input.Region == "" {
		input.Region = "unknown"
	}
	if input.RunUUID == "" {
		input.RunUUID = uuid.NewString()
	}
	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now()
	}
	if input.FiltersJSON == "" {
		input.FiltersJSON = "{}"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO export_runs (
			run_uuid, account_id, region, profile, run_timestamp, duration_ms,
			filters, total_findings, page_count, output_path, cli_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.RunUUID, input.AccountID, input.Region, input.Profile,
		input.Timestamp.UTC().Format(timestampLayout), input.DurationMS,
		input.FiltersJSON, input.Total, len(input.Pages), input.OutputPath, input.Version)
	if err != nil {
		return 0, err
	}
	runID, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, p := range input.Pages {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO export_pages (run_id, page_index, item_count, running_total)
			VALUES (?, ?, ?, ?)
		`, runID, p.Index, p.Items, p.Total)
		if err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

const runColumns = `run_id, run_uuid, account_id, region, run_timestamp, duration_ms,
	total_findings, page_count, COALESCE(output_path, ''), COALESCE(cli_version, '')`

func scanSummary(row interface{ Scan(...any) error }, extra ...any) (RunSummary, error) {
	var r RunSummary
	dest := append([]any{&r.RunID, &r.RunUUID, &r.AccountID, &r.Region, &r.RunTimestamp, &r.DurationMS,
		&r.TotalFindings, &r.PageCount, &r.OutputPath, &r.Version}, extra...)
	err := row.Scan(dest...)
	return r, err
}

func (s *service) GetRecentRuns(ctx context.Context, accountID string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	query := "SELECT " + runColumns + " FROM export_runs"
	args := []any{}
	if accountID != "" {
		query += " WHERE account_id=?"
		args = append(args, accountID)
	}
	query += " ORDER BY run_timestamp DESC, run_id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		r, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *service) GetRun(ctx context.Context, runID int64) (*RunDetail, error) {
	detail := &RunDetail{}
	row := s.db.QueryRowContext(ctx,
		"SELECT "+runColumns+", COALESCE(profile, ''), filters FROM export_runs WHERE run_id=?", runID)
	summary, err := scanSummary(row, &detail.Profile, &detail.FiltersJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	detail.RunSummary = summary

	rows, err := s.db.QueryContext(ctx, `
		SELECT page_index, item_count, running_total
		FROM export_pages WHERE run_id=? ORDER BY page_index ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	detail.Pages = []PageRecord{}
	for rows.Next() {
		var p PageRecord
		if err := rows.Scan(&p.Index, &p.Items, &p.Total); err != nil {
			return nil, err
		}
		detail.Pages = append(detail.Pages, p)
	}
	return detail, rows.Err()
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM export_runs WHERE run_timestamp < DATETIME('now', ?)
	`, fmt.Sprintf("-%d day", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
