package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/bradbev/memeland/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the test away from any real memeland.yaml.
func isolate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestDefaults(t *testing.T) {
	isolate(t)
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	level, err := c.SlogLevel()
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
	assert.Equal(t, "meme.png", c.OutputPath())
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MEMELAND_CONTENT_DIR", "/srv/memes")
	t.Setenv("MEMELAND_PANEL_WIDTH", "300")
	t.Setenv("MEMELAND_LOG_LEVEL", "debug")

	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/memes", c.ContentDir)
	assert.Equal(t, 300, c.PanelWidth)
	level, _ := c.SlogLevel()
	assert.Equal(t, slog.LevelDebug, level)
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: /tmp/out\nwindow_width: 1600\n"), 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", c.OutputDir)
	assert.Equal(t, 1600, c.WindowWidth)
	assert.Equal(t, 800, c.WindowHeight)
}

func TestDefaultFileInWorkingDir(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("memeland.yaml", []byte("output_name: caption.png\n"), 0o644))

	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "caption.png", c.OutputName)
}

func TestMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*config.Config){
		"empty content":  func(c *config.Config) { c.ContentDir = "" },
		"nested output":  func(c *config.Config) { c.OutputName = "a/b.png" },
		"zero window":    func(c *config.Config) { c.WindowHeight = 0 },
		"panel too wide": func(c *config.Config) { c.PanelWidth = c.WindowWidth },
		"unknown level":  func(c *config.Config) { c.LogLevel = "chatty" },
	} {
		c := config.Default()
		mutate(&c)
		assert.ErrorIs(t, c.Validate(), config.ErrInvalid, name)
	}
	assert.NoError(t, config.Default().Validate())
}
