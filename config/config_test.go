package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/shelf/errors"
)

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelf.yml")
	content := []byte(`
version: "1.0"
library:
  path: /var/lib/shelf/library.db
  scope: research
picker:
  move_title: "File Under"
  exclude:
    - trash
    - archive
  watch_external: true
keys:
  confirm:
    - enter
    - "ctrl+d"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "/var/lib/shelf/library.db", cfg.Library.Path)
	assert.Equal(t, "research", cfg.DefaultScope())
	require.NotNil(t, cfg.Picker)
	assert.Equal(t, "File Under", cfg.MoveTitle())
	assert.Equal(t, []string{"trash", "archive"}, cfg.Picker.Exclude)
	assert.True(t, cfg.Picker.WatchExternal)
	assert.Equal(t, []string{"enter", "ctrl+d"}, cfg.Keys["confirm"])
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelf.toml")
	content := []byte(`
version = "1.0"

[library]
path = "library.db"

[picker]
exclude = ["trash"]
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "library.db", cfg.Library.Path)
	require.NotNil(t, cfg.Picker)
	assert.Equal(t, []string{"trash"}, cfg.Picker.Exclude)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`version: "1.0"`))
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.DefaultScope())
	assert.Equal(t, "Move to Collection", cfg.MoveTitle())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "shelf.yml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelf.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("SHELF_TEST_DB", "/tmp/from-env.db")

	cfg, err := LoadFromBytes([]byte(`
version: "1.0"
library:
  path: ${SHELF_TEST_DB}
`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.Library.Path)
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	configPath := filepath.Join(root, "shelf.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`version: "1.0"`), 0644))

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, configPath, found)
}

func TestFindConfigFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shelf.toml"), []byte(`version = "1.0"`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shelf.yml"), []byte(`version: "1.0"`), 0644))

	found, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shelf.yml"), found)
}

// TestExtensions verifies that custom top-level sections in shelf.yml are
// captured and can be decoded by their owners.
func TestExtensions(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
version: "1.0"
library:
  path: library.db

logging:
  level: debug
  format:
    preset: json
`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Extensions == nil {
		t.Fatal("Extensions map should not be nil")
	}
	if _, ok := cfg.Extensions["logging"]; !ok {
		t.Fatal("Expected 'logging' extension to be present")
	}

	type logConfig struct {
		Level  string `yaml:"level"`
		Format struct {
			Preset string `yaml:"preset"`
		} `yaml:"format"`
	}

	var logCfg logConfig
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}
	if logCfg.Level != "debug" {
		t.Errorf("Expected level to be 'debug', got '%s'", logCfg.Level)
	}
	if logCfg.Format.Preset != "json" {
		t.Errorf("Expected preset to be 'json', got '%s'", logCfg.Format.Preset)
	}

	// Missing extensions decode to the zero value without error.
	var missing logConfig
	if err := cfg.UnmarshalExtension("absent", &missing); err != nil {
		t.Fatalf("Unexpected error for absent extension: %v", err)
	}
	if missing.Level != "" {
		t.Errorf("Expected zero value for absent extension, got '%s'", missing.Level)
	}
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"version"`)
	assert.Contains(t, s, `"library"`)
	assert.Contains(t, s, `"picker"`)
	assert.NotContains(t, s, "Extensions")
}
