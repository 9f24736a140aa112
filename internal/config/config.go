package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// Values are read from app.env and can be overridden by environment variables.
type Config struct {
	DBPath         string `mapstructure:"DB_PATH"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	MetricsEnabled bool   `mapstructure:"METRICS_ENABLED"`
}

// LoadConfig reads app.env from path. A missing file is not an error; the
// defaults and the environment still apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("DB_PATH", "data/spotfinder.db")
	v.SetDefault("SERVER_ADDRESS", "127.0.0.1:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_ENABLED", true)

	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	err = v.Unmarshal(&config)
	return config, err
}
