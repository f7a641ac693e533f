package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	S3       S3Config       `mapstructure:"s3"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Prefs    PrefsConfig    `mapstructure:"prefs"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// AuthConfig defines session token and email-confirmation behavior.
type AuthConfig struct {
	JWTSecret                string        `mapstructure:"jwt_secret"`
	JWTExpiration            time.Duration `mapstructure:"jwt_expiration"`
	RequireEmailConfirmation bool          `mapstructure:"require_email_confirmation"`
}

// S3Config configures the data-export target. Export is optional: when the
// bucket is unset the export endpoint reports itself unavailable.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// PrefsConfig points at the local preference file; empty means the
// platform default location.
type PrefsConfig struct {
	Path string `mapstructure:"path"`
}

// BackendConfigured reports whether the pieces auth actions depend on are
// present. Their absence must fail login/signup immediately with a
// configuration error instead of producing a confusing network error.
func (c Config) BackendConfigured() bool {
	return c.Database.URI != "" && c.Auth.JWTSecret != ""
}

// ExportConfigured reports whether the S3 export target is usable.
func (c Config) ExportConfigured() bool {
	return c.S3.BucketName != ""
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment override: auth.jwt_secret -> AUTH_JWT_SECRET etc.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "fitrek")
	viper.SetDefault("auth.jwt_expiration", "24h")
	viper.SetDefault("auth.require_email_confirmation", true)
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("logging.level", "info")

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No config file is fine; env vars and defaults carry the load.
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
