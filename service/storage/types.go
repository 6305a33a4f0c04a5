package storage

import (
	"context"
	"time"
)

// Service defines persistence of export run history.
type Service interface {
	SaveRun(ctx context.Context, input SaveRunInput) (int64, error)
	GetRecentRuns(ctx context.Context, accountID string, limit int) ([]RunSummary, error)
	GetRun(ctx context.Context, runID int64) (*RunDetail, error)
	Vacuum(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveRunInput is the payload saved for a completed export.
type SaveRunInput struct {
	RunUUID     string
	AccountID   string
	Region      string
	Profile     string
	Timestamp   time.Time
	DurationMS  int64
	FiltersJSON string
	Total       int
	OutputPath  string
	Version     string
	Pages       []PageRecord
}

// PageRecord is one retrieved page of an export run.
type PageRecord struct {
	Index int `json:"index"`
	Items int `json:"items"`
	Total int `json:"total"`
}

// RunSummary provides compact export run metadata.
type RunSummary struct {
	RunID         int64     `json:"run_id"`
	RunUUID       string    `json:"run_uuid"`
	AccountID     string    `json:"account_id"`
	Region        string    `json:"region"`
	RunTimestamp  time.Time `json:"run_timestamp"`
	DurationMS    int64     `json:"duration_ms"`
	TotalFindings int       `json:"total_findings"`
	PageCount     int       `json:"page_count"`
	OutputPath    string    `json:"output_path"`
	Version       string    `json:"version"`
}

// RunDetail is a run with its filter expression and page breakdown.
type RunDetail struct {
	RunSummary
	Profile     string       `json:"profile"`
	FiltersJSON string       `json:"filters"`
	Pages       []PageRecord `json:"pages"`
}
