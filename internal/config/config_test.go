package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "tools-and-commands.csv", cfg.TablePath)
	assert.Equal(t, "local", cfg.LocalOrigin)
	assert.Equal(t, 25, cfg.TolerancePct)
	assert.Equal(t, Duration(5*time.Second), cfg.GitTimeout)
	assert.NotEmpty(t, cfg.Categories)
	assert.NotEmpty(t, cfg.Scaffold)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, Duration(300*time.Millisecond), cfg.Watch.DebounceWindow)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	content := `
table_path: custom.csv
local_origin: workstation
tolerance_pct: 10
roots:
  commands:
    - origin: workstation
      path: commands
seeds:
  - kind: Workflow
    origin: workstation
    name: feature-delivery
    description: Plan, build, verify
`
	path := filepath.Join(t.TempDir(), "artcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom.csv", cfg.TablePath)
	assert.Equal(t, "workstation", cfg.LocalOrigin)
	assert.Equal(t, 10, cfg.TolerancePct)
	require.Len(t, cfg.Roots.Commands, 1)
	assert.Equal(t, "commands", cfg.Roots.Commands[0].Path)
	require.Len(t, cfg.Seeds, 1)
	assert.Equal(t, "feature-delivery", cfg.Seeds[0].Name)

	// Untouched settings keep their defaults.
	assert.Equal(t, Duration(5*time.Second), cfg.GitTimeout)
	assert.NotEmpty(t, cfg.Categories)
}

func TestLoadParsesDurations(t *testing.T) {
	content := `
git_timeout: 10s
gen:
  timeout: 1m30s
watch:
  debounce_window: 250ms
`
	path := filepath.Join(t.TempDir(), "artcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Duration(10*time.Second), cfg.GitTimeout)
	assert.Equal(t, Duration(90*time.Second), cfg.Gen.Timeout)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.Watch.DebounceWindow)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("git_timeout: soon\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
