package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `schema_version: 1
file_type: preflight_config
project:
  name: demo
sheets:
  clients: data/clients.csv
  tasks: data/tasks.csv
  workers: data/workers.csv
watch:
  debounce_ms: 150
output:
  format: json
`

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Project.Name)
	assert.Equal(t, "data/clients.csv", cfg.Sheets.Clients)
	assert.Equal(t, 150, cfg.Watch.DebounceMS)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("schema_version: 1\nfile_type: preflight_config\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounceMS, cfg.Watch.DebounceMS)
	assert.Equal(t, DefaultFormat, cfg.Output.Format)
}

func TestParse_HeaderRejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing version", "file_type: preflight_config\n", "schema_version"},
		{"future version", "schema_version: 99\nfile_type: preflight_config\n", "unsupported"},
		{"missing file type", "schema_version: 1\n", "missing file_type"},
		{"wrong file type", "schema_version: 1\nfile_type: scheduler_state\n", "mismatch"},
		{"not yaml", "{{{", "parse config header"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preflight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Project.Name)

	_, err = Load(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}
