package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/leapstack-labs/csvto/internal/config"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "CSVTO_"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// findConfigFile finds the config file to use.
// Priority: explicit path > csvto.yaml/csvto.yml in or above the working directory
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return intconfig.FindConfigUpward(cwd)
}

// envKey maps CSVTO_ONE_TABLE to one_table and CSVTO_TARGET__PASSWORD to
// target.password.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// flagKey maps a flag to its config key. Kebab-case becomes snake_case;
// --state and --dir are short for state_path and dirs.
func flagKey(name string) string {
	key := strings.ReplaceAll(name, "-", "_")
	switch key {
	case "state":
		return "state_path"
	case "dir":
		return "dirs"
	}
	return key
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"extension":   DefaultExtension,
		"name":        DefaultName,
		"concurrency": DefaultConcurrency,
		"delimiter":   DefaultDelimiter,
		"state_path":  DefaultStateFile,
		"log_level":   DefaultLogLevel,
		"output":      DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (CSVTO_ prefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// ConfigKey returns the context key used for storing the loaded config.
func ConfigKey() any {
	return configKey{}
}

// GetConfig retrieves the config from the command context, or defaults
// when none was loaded.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		Extension:    DefaultExtension,
		Name:         DefaultName,
		Concurrency:  DefaultConcurrency,
		Delimiter:    DefaultDelimiter,
		StatePath:    DefaultStateFile,
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
	}
}

// ResolveTarget builds the storage target.
//
// A target block from the config file is used as written when no
// connection string is given; --type still overrides its type. Otherwise
// the target is parsed from type, connection and name, and the block only
// contributes schema, options and params.
func (c *Config) ResolveTarget() (*TargetConfig, error) {
	if c.Target != nil && c.Connection == "" {
		t := *c.Target
		if c.Type != "" {
			t.Type = c.Type
		}
		if t.Type == "" {
			t.Type = intconfig.DefaultType
		}
		t.Password = intconfig.ExpandEnvVars(t.Password)
		t.User = intconfig.ExpandEnvVars(t.User)
		t.Host = intconfig.ExpandEnvVars(t.Host)
		t.Database = intconfig.ExpandEnvVars(t.Database)
		if t.Database == "" && intconfig.IsFileBased(t.Type) {
			parsed, err := intconfig.ParseTarget(t.Type, "", c.Name)
			if err != nil {
				return nil, err
			}
			t.Database = parsed.Database
		}
		intconfig.ApplyTargetDefaults(&t)
		if err := t.Validate(); err != nil {
			return nil, err
		}
		return &t, nil
	}

	t, err := intconfig.ParseTarget(c.Type, c.Connection, c.Name)
	if err != nil {
		return nil, err
	}
	if c.Target != nil {
		t = MergeTargetConfig(t, &TargetConfig{
			Schema:  c.Target.Schema,
			Options: c.Target.Options,
			Params:  c.Target.Params,
		})
	}
	return t, nil
}

// MergeTargetConfig merges two target configs, with override taking precedence.
func MergeTargetConfig(base, override *TargetConfig) *TargetConfig {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a copy of base
	merged := *base
	merged.Options = make(map[string]string)
	merged.Params = make(map[string]any)

	for k, v := range base.Options {
		merged.Options[k] = v
	}
	for k, v := range base.Params {
		merged.Params[k] = v
	}

	// Apply overrides
	if override.Type != "" {
		merged.Type = override.Type
	}
	if override.Connection != "" {
		merged.Connection = override.Connection
	}
	if override.Database != "" {
		merged.Database = override.Database
	}
	if override.Host != "" {
		merged.Host = override.Host
	}
	if override.Port != 0 {
		merged.Port = override.Port
	}
	if override.User != "" {
		merged.User = override.User
	}
	if override.Password != "" {
		merged.Password = override.Password
	}
	if override.Schema != "" {
		merged.Schema = override.Schema
	}

	for k, v := range override.Options {
		merged.Options[k] = v
	}
	for k, v := range override.Params {
		merged.Params[k] = v
	}

	return &merged
}
