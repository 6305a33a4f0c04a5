package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVerboseLogsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, false)
	log.Info().Int("page", 1).Msg("Retrieved page")

	assert.Contains(t, buf.String(), "Retrieved page")
	assert.Contains(t, buf.String(), "page=1")
}

func TestNewQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, false)
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
