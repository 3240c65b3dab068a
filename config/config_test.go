package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONConfig_FlatAndSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"AppPort": "9000",
		"database": {"DBDriver": "postgres", "DBHost": "db.internal"},
		"log": {"LogLevel": "debug"},
		"admin": {"AdminUsernames": ["root", "mod"]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	var c AppConfig
	require.NoError(t, loadJSONConfig(path, &c))
	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, "db.internal", c.DBHost)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, []string{"root", "mod"}, c.AdminUsernames)
}

func TestLoadJSONConfig_MissingFileIsIgnored(t *testing.T) {
	var c AppConfig
	assert.NoError(t, loadJSONConfig(filepath.Join(t.TempDir(), "absent.json"), &c))
	assert.Equal(t, AppConfig{}, c)
}

func TestLoadJSONConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	var c AppConfig
	assert.Error(t, loadJSONConfig(path, &c))
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	_, err := OpenDatabase(AppConfig{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestToGormLogLevel(t *testing.T) {
	assert.NotEqual(t, toGormLogLevel("debug"), toGormLogLevel("silent"))
	assert.Equal(t, toGormLogLevel("info"), toGormLogLevel("unknown"))
}
