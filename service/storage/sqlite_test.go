package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	svc, err := NewService(dbPath)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestSaveRunAndQueries(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	runID, err := svc.SaveRun(ctx, SaveRunInput{
		AccountID:   "111111111111",
		Region:      "us-east-1",
		Profile:     "audit",
		DurationMS:  1200,
		FiltersJSON: `{"CompositeFilters":[]}`,
		Total:       3,
		OutputPath:  "findings.json",
		Version:     "v1.0.0",
		Pages: []PageRecord{
			{Index: 1, Items: 2, Total: 2},
			{Index: 2, Items: 1, Total: 3},
		},
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("expected positive runID, got %d", runID)
	}

	recent, err := svc.GetRecentRuns(ctx, "111111111111", 10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent run, got %d", len(recent))
	}
	r := recent[0]
	if r.Region != "us-east-1" || r.TotalFindings != 3 || r.PageCount != 2 || r.RunUUID == "" {
		t.Fatalf("unexpected recent run values: %+v", r)
	}
	if r.RunTimestamp.IsZero() {
		t.Fatalf("expected run timestamp to be set")
	}

	detail, err := svc.GetRun(ctx, runID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if detail.Profile != "audit" || detail.FiltersJSON != `{"CompositeFilters":[]}` {
		t.Fatalf("unexpected run detail: %+v", detail)
	}
	if len(detail.Pages) != 2 || detail.Pages[1].Total != 3 {
		t.Fatalf("unexpected pages: %+v", detail.Pages)
	}
}

func TestSaveRunRequiresAccount(t *testing.T) {
	svc := newTestStorage(t)
	if _, err := svc.SaveRun(context.Background(), SaveRunInput{}); err == nil {
		t.Fatalf("expected error without account id")
	}
}

func TestGetRecentRunsFiltersAndOrders(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	for i, acct := range []string{"111111111111", "222222222222", "111111111111"} {
		_, err := svc.SaveRun(ctx, SaveRunInput{
			AccountID: acct,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Total:     i,
		})
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := svc.GetRecentRuns(ctx, "111111111111", 10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].TotalFindings != 2 || runs[1].TotalFindings != 0 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	if runs[0].Region != "unknown" {
		t.Fatalf("expected default region, got %q", runs[0].Region)
	}

	all, err := svc.GetRecentRuns(ctx, "", 2)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(all))
	}
}

func TestGetRunNotFound(t *testing.T) {
	svc := newTestStorage(t)
	_, err := svc.GetRun(context.Background(), 42)
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	oldID, err := svc.SaveRun(ctx, SaveRunInput{
		AccountID: "111111111111",
		Timestamp: time.Now().AddDate(0, 0, -90),
		Pages:     []PageRecord{{Index: 1, Items: 1, Total: 1}},
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if _, err := svc.SaveRun(ctx, SaveRunInput{AccountID: "111111111111"}); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	purged, err := svc.PurgeOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("PurgeOlderThan failed: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged run, got %d", purged)
	}
	if _, err := svc.GetRun(ctx, oldID); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected purged run to be gone, got %v", err)
	}
	if err := svc.Vacuum(ctx); err != nil {
		t.Fatalf("Vacuum failed: %v", err)
	}

	if _, err := svc.PurgeOlderThan(ctx, 0); err == nil {
		t.Fatalf("expected error for non-positive days")
	}
}
