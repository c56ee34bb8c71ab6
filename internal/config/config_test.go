package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "employees.csv", cfg.DataFile)
	assert.Equal(t, "bar.html", cfg.Template)
	assert.Equal(t, 5000, cfg.ServerPort)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"SERVER_PORT": 8081, "DATA_FILE": "people.csv", "DEBUG": false}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, "people.csv", cfg.DataFile)
	assert.False(t, cfg.Debug)
	// untouched keys keep their defaults
	assert.Equal(t, "bar.html", cfg.Template)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"SERVER_PORT": `), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"BARCHART_PORT":  "9090",
		"BARCHART_DATA":  "/tmp/staff.csv",
		"BARCHART_DEBUG": "false",
		"BARCHART_HOST":  "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "/tmp/staff.csv", cfg.DataFile)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost, "empty values are ignored")
}

func TestEnvOverrideBadValue(t *testing.T) {
	t.Setenv("BARCHART_PORT", "five thousand")

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "BARCHART_PORT")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.ServerPort = 70000
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "chatty"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.DataFile = ""
	assert.Error(t, cfg.Validate())
}
