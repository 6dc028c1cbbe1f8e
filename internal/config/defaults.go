package config

// Default values applied when neither file nor environment sets a field.
const (
	DefaultLayout            = "flat"
	DefaultMySQLDriverFamily = "mysql"
	DefaultKeystoreType      = "PKCS12"
	DefaultOutputFormat      = "properties"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultInspectListenAddr = "127.0.0.1:8089"
)

// applyDefaults sets default values for unspecified configuration
func applyDefaults(cfg *Config) {
	if cfg.Bindings.Layout == "" {
		cfg.Bindings.Layout = DefaultLayout
	}
	if cfg.URLs.MySQLDriverFamily == "" {
		cfg.URLs.MySQLDriverFamily = DefaultMySQLDriverFamily
	}
	if cfg.Keystore.Type == "" {
		cfg.Keystore.Type = DefaultKeystoreType
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Inspect.ListenAddr == "" {
		cfg.Inspect.ListenAddr = DefaultInspectListenAddr
	}
}
