package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoConfigFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	content := `policy: per-item
sheetName: Results
maxColumnWidth: 40
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flatsheet.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "per-item", cfg.Policy)
	assert.Equal(t, "Results", cfg.SheetName)
	assert.Equal(t, 40.0, cfg.MaxColumnWidth)
	assert.True(t, cfg.Verbose)
}

func TestLoad_YamlExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flatsheet.yaml"), []byte("policy: per-high-order\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "per-high-order", cfg.Policy)
}

func TestLoad_UnknownPolicy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flatsheet.yml"), []byte("policy: merged\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merged")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flatsheet.yml"), []byte("policy: [unclosed\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
