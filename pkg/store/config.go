package store

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultServer = "http://localhost:8000"
	DefaultPath   = "~/.diary.db"
)

type Config interface {
	// BasePath is the directory holding the session and settings.
	BasePath() string
	// Server is the root URL of the diary service.
	Server() string
	LogLevel() string
	LogFormat() string
}

// LoadConfig reads .diary.yaml from $DIARY_CONFIG_PATH, the working
// directory or $HOME, with DIARY_* environment overrides. A .env file in the
// working directory is loaded first when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("server", DefaultServer)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetConfigName(".diary") // .yaml is implicit
	v.SetEnvPrefix("DIARY")
	v.AutomaticEnv()
	_ = v.BindEnv("log.level", "DIARY_LOG_LEVEL")
	_ = v.BindEnv("log.format", "DIARY_LOG_FORMAT")

	if override := os.Getenv("DIARY_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("expand path %q: %w", v.GetString("path"), err)
	}

	return &fileConfig{
		Path:   path,
		URL:    v.GetString("server"),
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}, nil
}

type fileConfig struct {
	Path   string `json:"path"`
	URL    string `json:"server"`
	Level  string `json:"log_level"`
	Format string `json:"log_format"`
}

func (f *fileConfig) BasePath() string  { return f.Path }
func (f *fileConfig) Server() string    { return f.URL }
func (f *fileConfig) LogLevel() string  { return f.Level }
func (f *fileConfig) LogFormat() string { return f.Format }

// StaticConfig is a Config with fixed values.
type StaticConfig struct {
	Path   string
	URL    string
	Level  string
	Format string
}

func (s StaticConfig) BasePath() string { return s.Path }

func (s StaticConfig) Server() string {
	if s.URL == "" {
		return DefaultServer
	}
	return s.URL
}

func (s StaticConfig) LogLevel() string {
	if s.Level == "" {
		return "warn"
	}
	return s.Level
}

func (s StaticConfig) LogFormat() string { return s.Format }
