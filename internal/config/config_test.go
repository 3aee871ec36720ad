package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			DataPath: "/some/path",
			Backend:  BackendBadger,
		},
		Search: SearchConfig{
			Enabled:   true,
			IndexPath: "/some/path/search",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Backends(t *testing.T) {
	tests := []struct {
		backend string
		valid   bool
	}{
		{BackendBadger, true},
		{BackendSQLite, true},
		{"postgres", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := validConfig()
			cfg.Storage.Backend = tt.backend

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		cfg := validConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/tearlog", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tearlog"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("/abs/path", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}

func TestExpandSearchPath_Default(t *testing.T) {
	cfg := validConfig()
	cfg.Search.IndexPath = ""

	require.NoError(t, cfg.expandSearchPath())
	assert.Equal(t, filepath.Join(cfg.Storage.DataPath, "search"), cfg.Search.IndexPath)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nTEARLOG_TEST_KEY=hello\nTEARLOG_QUOTED=\"world\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("TEARLOG_TEST_KEY", "")
	t.Setenv("TEARLOG_QUOTED", "")
	os.Unsetenv("TEARLOG_TEST_KEY")
	os.Unsetenv("TEARLOG_QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("TEARLOG_TEST_KEY"))
	assert.Equal(t, "world", os.Getenv("TEARLOG_QUOTED"))
}
