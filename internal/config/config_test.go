package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, ".timecard.json", cfg.GitHub.TimecardPath)
}

func TestLoad_FileAndEnv(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "host: https://repocard.example.com\n" +
		"github:\n" +
		"  perpage: 50\n" +
		"  timecardpath: docs/timecard.json\n" +
		"db:\n" +
		"  name: cards\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("REPOCARD_GITHUB_TOKEN", "secret")
	t.Setenv("REPOCARD_DB_NAME", "from-env")

	// when
	cfg, err := Load(path)

	// then
	require.NoError(t, err)
	assert.Equal(t, "https://repocard.example.com", cfg.Host)
	assert.Equal(t, 50, cfg.GitHub.PerPage)
	assert.Equal(t, "docs/timecard.json", cfg.GitHub.TimecardPath)
	assert.Equal(t, "secret", cfg.GitHub.Token)
	assert.Equal(t, "from-env", cfg.Database.Name)
	assert.Equal(t, 1000, cfg.GitHub.MaxCommits)
}

func TestLoad_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github: [unclosed"), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}
