package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeFile(t, `
profile: audit
region: eu-west-1
page_size: 50
max_items: 500
output_file: findings.json
store: true
db_path: /tmp/exports.db
verbose: true
`)
	cfg, err := NewService().Load(path)
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{
		Profile:    "audit",
		Region:     "eu-west-1",
		PageSize:   50,
		MaxItems:   500,
		OutputFile: "findings.json",
		Store:      true,
		DBPath:     "/tmp/exports.db",
		Verbose:    true,
	}, cfg)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := NewService().Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, cfg)
}

func TestLoadMissingDefaultIsEmpty(t *testing.T) {
	svc := &service{defaultPath: filepath.Join(t.TempDir(), "absent.yaml")}
	cfg, err := svc.Load("")
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, cfg)
}

func TestLoadMissingExplicitFails(t *testing.T) {
	_, err := NewService().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := NewService().Load(writeFile(t, "pagesize: 10\n"))
	assert.Error(t, err)
}

func TestLoadRejectsNegativeSizes(t *testing.T) {
	_, err := NewService().Load(writeFile(t, "max_items: -1\n"))
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/.ocsf-export/history.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ocsf-export", "history.db"), got)

	got, err = ExpandHome("/var/tmp/../tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/x.db", got)
}
