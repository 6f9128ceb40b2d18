package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override, e.g. CLB_SERVER_PORT
const EnvPrefix = "CLB"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration for the current environment.
// A missing config file is not an error; defaults and environment variables apply.
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		return nil, err
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Environment variables override config values
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(v, &config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found; having none is fine
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	v.SetDefault("bank.name", "Command Line Bank")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("security.passwordHasher", "sha256")
	v.SetDefault("security.bcryptCost", 10)
	v.SetDefault("security.minPasswordLength", 8)

	v.SetDefault("messaging.enabled", false)
	v.SetDefault("messaging.natsUrl", "nats://127.0.0.1:4222")
	v.SetDefault("messaging.subjectPrefix", "bank.ledger")
	v.SetDefault("messaging.queueSize", 100)
	v.SetDefault("messaging.connectTimeout", 2) // seconds
}

// getEnvironment determines the environment from CLB_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides honors the conventional unprefixed variables
// when no prefixed override is set
func processEnvOverrides(v *viper.Viper) {
	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"_SERVER_PORT") == "" {
		v.Set("server.port", port)
	}
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" && os.Getenv(EnvPrefix+"_MESSAGING_NATSURL") == "" {
		v.Set("messaging.natsUrl", natsURL)
	}
}

// processDurations converts second counts to time.Duration
func processDurations(v *viper.Viper, config *Config) {
	seconds := func(key string) time.Duration {
		return time.Duration(v.GetInt(key)) * time.Second
	}

	config.Server.ReadTimeout = seconds("server.readTimeout")
	config.Server.WriteTimeout = seconds("server.writeTimeout")
	config.Server.IdleTimeout = seconds("server.idleTimeout")
	config.Server.ReadHeaderTimeout = seconds("server.readHeaderTimeout")
	config.Server.ShutdownTimeout = seconds("server.shutdownTimeout")
	config.Messaging.ConnectTimeout = seconds("messaging.connectTimeout")
}
