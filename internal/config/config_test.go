package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"matchman/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
matches:
  dir: "/home/test/espanso/match"
  patterns: ["*.yml", "*.yaml"]
ui:
  confirm_delete: false
  watch_enabled: true
  theme: "dark"
debug: true
`
	invalidSyntaxYAML = `
matches:
  patterns: ["*.yml
ui:
  confirm_delete: maybe
`
	invalidThemeYAML = `
ui:
  theme: "neon"
`
	invalidPatternYAML = `
matches:
  patterns: ["[unclosed"]
`
)

func TestLoadFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		configFile := createTestYAML(t, validYAML)
		cfg, err := config.LoadFile(configFile)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "/home/test/espanso/match", cfg.Matches.Dir)
		assert.Equal(t, "/home/test/espanso/match", cfg.MatchDir())
		assert.Equal(t, []string{"*.yml", "*.yaml"}, cfg.Matches.Patterns)
		assert.False(t, cfg.UI.ConfirmDelete)
		assert.True(t, cfg.UI.WatchEnabled)
		assert.Equal(t, "dark", cfg.UI.Theme)
		assert.True(t, cfg.Debug)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		nonExistentPath := filepath.Join(t.TempDir(), "does_not_exist.yaml")
		cfg, err := config.LoadFile(nonExistentPath)

		require.NoError(t, err, "Loading non-existent file should return default config, not an error")
		require.NotNil(t, cfg)

		defaultCfg := config.New()
		assert.Equal(t, defaultCfg.Matches.Patterns, cfg.Matches.Patterns)
		assert.Equal(t, defaultCfg.UI.ConfirmDelete, cfg.UI.ConfirmDelete)
		assert.Equal(t, defaultCfg.UI.Theme, cfg.UI.Theme)
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		configFile := createTestYAML(t, invalidSyntaxYAML)
		_, err := config.LoadFile(configFile)

		require.Error(t, err, "Loading invalid YAML should return an error")
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	t.Run("load file with invalid theme", func(t *testing.T) {
		configFile := createTestYAML(t, invalidThemeYAML)
		_, err := config.LoadFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "invalid theme")
	})

	t.Run("load file with invalid glob pattern", func(t *testing.T) {
		configFile := createTestYAML(t, invalidPatternYAML)
		_, err := config.LoadFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid glob")
	})
}

func TestDefaultMatchDir(t *testing.T) {
	cfg := config.New()
	assert.Empty(t, cfg.Matches.Dir)
	assert.Contains(t, cfg.MatchDir(), filepath.Join("espanso", "match"))
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Matches.Dir = "/tmp/matches"
	cfg.UI.Theme = "light"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, config.Save(cfg, path))

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Matches.Dir, loaded.Matches.Dir)
	assert.Equal(t, "light", loaded.UI.Theme)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *config.Config) {}, wantErr: false},
		{
			name:    "empty pattern list",
			mutate:  func(c *config.Config) { c.Matches.Patterns = nil },
			wantErr: true,
		},
		{
			name:    "blank pattern",
			mutate:  func(c *config.Config) { c.Matches.Patterns = []string{""} },
			wantErr: true,
		},
		{
			name:    "bad theme",
			mutate:  func(c *config.Config) { c.UI.Theme = "sunset" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
