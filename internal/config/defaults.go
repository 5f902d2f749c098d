package config

import "strings"

// Default configuration values.
const (
	DefaultType      = "sqlite"
	DefaultName      = "csvto"
	DefaultExtension = "csv"
)

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}

	t.Type = strings.ToLower(t.Type)
	if t.Type == "" {
		t.Type = DefaultType
	}

	// Apply default schema based on type
	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}

	// Apply type-specific defaults
	switch t.Type {
	case "postgres":
		if t.Port == 0 {
			t.Port = 5432
		}
	case "mysql":
		if t.Port == 0 {
			t.Port = 3306
		}
	}
}
