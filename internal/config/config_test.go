package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archmap.yaml")
	yaml := `
project:
  root: ./web
  ignore_dirs:
    - storybook
hierarchy:
  architecture_dirs:
    - workspaces
output:
  snapshot: out/facts.json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./web", cfg.Project.Root)
	assert.Equal(t, []string{"storybook"}, cfg.Project.IgnoreDirs)
	assert.Equal(t, []string{"workspaces"}, cfg.Hierarchy.ArchitectureDirs)
	assert.Equal(t, "out/facts.json", cfg.Output.Snapshot)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Project.Root)
	assert.Equal(t, ".archmap/facts.json", cfg.Output.Snapshot)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("ARCHMAP_PROJECT_ROOT", "/somewhere/else")
	t.Setenv("ARCHMAP_SNAPSHOT", "custom.json")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/somewhere/else", cfg.Project.Root)
	assert.Equal(t, "custom.json", cfg.Output.Snapshot)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: ["), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
