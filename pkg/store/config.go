package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/filmdeck/pkg/gate"
)

// Config locates the catalog on disk.
type Config interface {
	BasePath() string
}

// FileConfig is the resolved configuration for filmdeck.
type FileConfig struct {
	Path     string        `json:"path"`
	PageSize int           `json:"page_size"`
	Gate     gate.Options  `json:"gate"`
	LogFile  string        `json:"log_file"`
	LogLevel string        `json:"log_level"`
	Author   string        `json:"author"`
	Shake    time.Duration `json:"shake"`
}

// BasePath implements Config.
func (f *FileConfig) BasePath() string {
	return f.Path
}

// LoadConfig reads .filmdeck.yaml from FILMDECK_CONFIG_PATH or the working
// directory, with FILMDECK_* environment overrides. A .env file next to the
// binary is honored first.
func LoadConfig() (*FileConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".filmdeck") // .yaml is implicit
	v.SetEnvPrefix("FILMDECK")
	v.AutomaticEnv()

	if override := os.Getenv("FILMDECK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	defaults := gate.DefaultOptions()
	v.SetDefault("path", "~/.filmdeck.db")
	v.SetDefault("page_size", 5)
	v.SetDefault("gate.lower", defaults.Lower)
	v.SetDefault("gate.upper", defaults.Upper)
	v.SetDefault("gate.limit", defaults.Limit)
	v.SetDefault("gate.timeout", defaults.Timeout)
	v.SetDefault("log.file", "~/.filmdeck.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("author", "Anonymous")
	v.SetDefault("shake", 600*time.Millisecond)
}

func fromViper(v *viper.Viper) (*FileConfig, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logFile := v.GetString("log.file")
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("store: expand log file: %w", err)
		}
	}
	cfg := &FileConfig{
		Path:     path,
		PageSize: v.GetInt("page_size"),
		Gate: gate.Options{
			Lower:   v.GetDuration("gate.lower"),
			Upper:   v.GetDuration("gate.upper"),
			Limit:   v.GetInt64("gate.limit"),
			Timeout: v.GetDuration("gate.timeout"),
		},
		LogFile:  logFile,
		LogLevel: v.GetString("log.level"),
		Author:   v.GetString("author"),
		Shake:    v.GetDuration("shake"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the UI cannot work with.
func (f *FileConfig) Validate() error {
	if f.Path == "" {
		return errors.New("store: path required")
	}
	if f.PageSize <= 0 {
		return fmt.Errorf("store: page_size must be positive, got %d", f.PageSize)
	}
	if f.Gate.Limit <= 0 {
		return fmt.Errorf("store: gate.limit must be positive, got %d", f.Gate.Limit)
	}
	if f.Gate.Upper < f.Gate.Lower {
		return fmt.Errorf("store: gate.upper (%s) below gate.lower (%s)", f.Gate.Upper, f.Gate.Lower)
	}
	return nil
}
