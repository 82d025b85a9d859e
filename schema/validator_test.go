package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	data := map[string]interface{}{
		"version": "1.0",
		"library": map[string]interface{}{
			"path":  "library.db",
			"scope": "main",
		},
		"picker": map[string]interface{}{
			"move_title":     "File Under",
			"exclude":        []interface{}{"trash"},
			"watch_external": true,
		},
		"keys": map[string]interface{}{
			"confirm": []interface{}{"enter"},
		},
	}
	assert.NoError(t, v.Validate(data))
}

func TestValidateRejectsMissingVersion(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	data := map[string]interface{}{
		"library": map[string]interface{}{"path": "library.db"},
	}
	err = v.Validate(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestValidateRejectsWrongTypes(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	data := map[string]interface{}{
		"version": "1.0",
		"picker": map[string]interface{}{
			"exclude": "trash",
		},
	}
	err = v.Validate(data)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "/picker/exclude"))
}

func TestValidateAllowsExtensionSections(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	data := map[string]interface{}{
		"version": "1.0",
		"logging": map[string]interface{}{"level": "debug"},
	}
	assert.NoError(t, v.Validate(data))
}
