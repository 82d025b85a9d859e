package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the base JSON Schema for the shelf configuration.
// It reflects the Config struct from types.go but excludes the 'Extensions'
// field, which will be handled by schema composition.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Do not allow unknown fields, extensions will be added explicitly during composition.
		AllowAdditionalProperties: false,
		// Expand struct references instead of using $ref for cleaner base schema.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	// Create a temporary struct that omits the Extensions field
	// so it's not included in the base schema.
	type BaseConfig struct {
		Version string              `yaml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
		Library LibraryConfig       `yaml:"library" jsonschema:"description=Location of the library database"`
		Picker  *PickerConfig       `yaml:"picker,omitempty" jsonschema:"description=Defaults for the collection picker"`
		Keys    map[string][]string `yaml:"keys,omitempty" jsonschema:"description=Keybinding overrides for the picker TUI (action name to key list)"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "Shelf Configuration"
	schema.Description = "Base schema for core shelf.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
