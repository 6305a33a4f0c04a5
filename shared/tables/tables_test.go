package tables

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thirukguru/ocsf-export/service/storage"
)

func TestRenderPageTable(t *testing.T) {
	var buf bytes.Buffer
	RenderPageTable(&buf, []storage.PageRecord{{Index: 1, Items: 100, Total: 100}, {Index: 2, Items: 7, Total: 107}})

	out := buf.String()
	assert.Contains(t, out, "RUNNING TOTAL")
	assert.Contains(t, out, "107")
}

func TestRenderHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	RenderHistoryTable(&buf, []storage.RunSummary{{
		RunID:         3,
		RunTimestamp:  time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC),
		AccountID:     "111111111111",
		Region:        "us-east-1",
		TotalFindings: 12,
		PageCount:     1,
	}})

	out := buf.String()
	assert.Contains(t, out, "2026-02-10 08:30:00")
	assert.Contains(t, out, "111111111111")
	assert.Contains(t, out, "stdout")
}
