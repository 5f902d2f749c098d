package postgres

// Params holds PostgreSQL-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// SSLMode overrides Options["sslmode"] (disable, require, verify-full...).
	SSLMode string `mapstructure:"sslmode"`

	// SearchPath sets the session search_path. Defaults to Config.Schema.
	SearchPath string `mapstructure:"search_path"`

	// ApplicationName is reported in pg_stat_activity.
	ApplicationName string `mapstructure:"application_name"`

	// ConnectTimeout in seconds.
	ConnectTimeout int `mapstructure:"connect_timeout"`
}
