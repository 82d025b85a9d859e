package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// Config is the root of shelf.yml (or shelf.toml).
type Config struct {
	Version string `yaml:"version" toml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`

	Library LibraryConfig `yaml:"library" toml:"library" jsonschema:"description=Location of the library database"`

	Picker *PickerConfig `yaml:"picker,omitempty" toml:"picker,omitempty" jsonschema:"description=Defaults for the collection picker"`

	Keys map[string][]string `yaml:"keys,omitempty" toml:"keys,omitempty" jsonschema:"description=Keybinding overrides for the picker TUI (action name to key list)"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// LibraryConfig locates the library database.
type LibraryConfig struct {
	// Path is the SQLite database file. Environment variables in the form
	// ${VAR} are expanded at load time.
	Path string `yaml:"path" toml:"path" jsonschema:"description=Path to the library database file"`
	// Scope is the default library scope used when a command does not name
	// one explicitly.
	Scope string `yaml:"scope,omitempty" toml:"scope,omitempty" jsonschema:"description=Default library scope"`
}

// PickerConfig carries picker defaults.
type PickerConfig struct {
	// MoveTitle is the fixed title of the single-selection picker.
	MoveTitle string `yaml:"move_title,omitempty" toml:"move_title,omitempty" jsonschema:"description=Title of the single-selection (move) picker"`
	// Exclude lists collection keys never offered in the picker.
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty" jsonschema:"description=Collection keys hidden from the picker"`
	// WatchExternal enables the file watcher that picks up writes from
	// other processes sharing the library.
	WatchExternal bool `yaml:"watch_external,omitempty" toml:"watch_external,omitempty" jsonschema:"description=Watch the database file for external writers"`
}

// DefaultScope returns the configured default scope, falling back to "main".
func (c *Config) DefaultScope() string {
	if c.Library.Scope != "" {
		return c.Library.Scope
	}
	return "main"
}

// MoveTitle returns the single-mode picker title, with its default.
func (c *Config) MoveTitle() string {
	if c.Picker != nil && c.Picker.MoveTitle != "" {
		return c.Picker.MoveTitle
	}
	return "Move to Collection"
}

// UnmarshalExtension decodes an extension section of the loaded config into
// the provided target struct. The target must be a pointer. This provides a
// type-safe way for extensions to access their custom configuration
// sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
