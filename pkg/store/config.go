package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the data directory and carries the user settings.
type Config interface {
	BasePath() string
	Theme() string
	LogLevel() string
}

const (
	defaultPath     = "~/.daybook.db"
	defaultTheme    = "system"
	defaultLogLevel = "info"
)

// LoadConfig reads .daybook.yaml from $DAYBOOK_CONFIG_PATH or the working
// directory. Every key can be overridden with a DAYBOOK_ env var.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", defaultPath)
	viper.SetDefault("theme", defaultTheme)
	viper.SetDefault("log_level", defaultLogLevel)
	viper.SetConfigName(".daybook") // .yaml is implicit
	viper.SetEnvPrefix("DAYBOOK")
	viper.AutomaticEnv()

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:  path,
		Mode:  viper.GetString("theme"),
		Level: viper.GetString("log_level"),
	}, nil
}

// NewConfig returns a Config rooted at path with default settings.
func NewConfig(path string) Config {
	return &fileConfig{Path: path, Mode: defaultTheme, Level: defaultLogLevel}
}

type fileConfig struct {
	Path  string `json:"path"`
	Mode  string `json:"theme"`
	Level string `json:"log_level"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Theme() string {
	return f.Mode
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}
