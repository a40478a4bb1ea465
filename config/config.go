package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultMaxUploadBytes is the upload size cap applied when none is configured (50 MiB).
const DefaultMaxUploadBytes = 50 << 20

// Config holds all runtime settings for the service.
type Config struct {
	Port           int      `mapstructure:"port"`
	UploadsDir     string   `mapstructure:"uploads_dir"`
	MetadataFile   string   `mapstructure:"metadata_file"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
}

// Load reads configuration from the environment (TRACKDROP_* variables) and an
// optional trackdrop.yaml in the working directory, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 4000)
	v.SetDefault("uploads_dir", filepath.Join(".", "uploads"))
	v.SetDefault("metadata_file", filepath.Join(".", "songs.json"))
	v.SetDefault("max_upload_bytes", int64(DefaultMaxUploadBytes))
	v.SetDefault("cors_origins", []string{
		"http://localhost:3000",
		"http://localhost:4000",
		"http://localhost:5173",
	})

	v.SetEnvPrefix("trackdrop")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("trackdrop")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
