package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Env         string            `mapstructure:"env"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Log         LogConfig         `mapstructure:"log"`
	Institution InstitutionConfig `mapstructure:"institution"`
}

type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMs int    `mapstructure:"busy_timeout_ms"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// InstitutionConfig names the school printed in the console banner.
type InstitutionConfig struct {
	Name string `mapstructure:"name"`
}

func Load() (*Config, error) {
	// Get environment from ENV, default to "local"
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	v := viper.New()
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")  // run from repo root
	v.AddConfigPath("../configs") // run from cmd/
	v.AddConfigPath("$HOME/.student-console")

	v.SetDefault("env", env)
	v.SetDefault("database.path", "student_management.db")
	v.SetDefault("database.busy_timeout_ms", 5000)
	v.SetDefault("log.level", "info")
	v.SetDefault("institution.name", "CyberDevPro")

	// Config file is optional - defaults and ENV cover everything
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables take precedence over the config file
	v.AutomaticEnv()
	v.BindEnv("database.path", "DB_PATH")
	v.BindEnv("log.level", "LOG_LEVEL")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
