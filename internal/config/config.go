package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of the client.
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	RabbitMQURL string
	// AccessToken optionally seeds the session from the environment so
	// the client can run non-interactively with an existing token.
	AccessToken string
}

// Load reads configuration from environment variables with sane
// defaults. The default base URL matches the development backend.
func Load() *Config {
	viper.SetDefault("API_URL", "http://127.0.0.1:2003/api")
	viper.SetDefault("HTTP_TIMEOUT", "15s")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("ACCESS_TOKEN", "")
	viper.AutomaticEnv()

	return &Config{
		APIBaseURL:  viper.GetString("API_URL"),
		HTTPTimeout: viper.GetDuration("HTTP_TIMEOUT"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
		AccessToken: viper.GetString("ACCESS_TOKEN"),
	}
}
