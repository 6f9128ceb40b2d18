package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Bank        BankConfig      `mapstructure:"bank"`
	Server      ServerConfig    `mapstructure:"server"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Security    SecurityConfig  `mapstructure:"security"`
	Messaging   MessagingConfig `mapstructure:"messaging"`
}

// BankConfig contains settings shown to customers
type BankConfig struct {
	Name string `mapstructure:"name"`
}

// ServerConfig contains HTTP server settings.
// Timeouts are whole seconds in files and environment variables.
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"-"`
	WriteTimeout      time.Duration `mapstructure:"-"`
	IdleTimeout       time.Duration `mapstructure:"-"`
	ReadHeaderTimeout time.Duration `mapstructure:"-"`
	ShutdownTimeout   time.Duration `mapstructure:"-"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsJSON reports whether logs should be structured JSON
func (l LoggerConfig) IsJSON() bool {
	return strings.EqualFold(l.Format, "json")
}

// SecurityConfig contains credential settings
type SecurityConfig struct {
	PasswordHasher    string `mapstructure:"passwordHasher"`
	BcryptCost        int    `mapstructure:"bcryptCost"`
	MinPasswordLength int    `mapstructure:"minPasswordLength"`
}

// MessagingConfig contains ledger event publishing settings
type MessagingConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	NatsURL        string        `mapstructure:"natsUrl"`
	SubjectPrefix  string        `mapstructure:"subjectPrefix"`
	QueueSize      int           `mapstructure:"queueSize"`
	ConnectTimeout time.Duration `mapstructure:"-"`
}

var (
	validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	validHashers   = map[string]bool{"sha256": true, "bcrypt": true}
)

// Validate reports every missing or invalid setting at once
func (c *Config) Validate() error {
	var problems []error

	switch c.Environment {
	case Development, Production, Test:
	default:
		problems = append(problems, fmt.Errorf("environment %q is not one of %s, %s, %s", c.Environment, Development, Production, Test))
	}
	if strings.TrimSpace(c.Bank.Name) == "" {
		problems = append(problems, errors.New("bank.name is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, errors.New("server.shutdownTimeout must be positive"))
	}
	if !validLogLevels[strings.ToLower(c.Logger.Level)] {
		problems = append(problems, fmt.Errorf("logger.level %q is not one of debug, info, warn, error", c.Logger.Level))
	}
	if !validHashers[strings.ToLower(c.Security.PasswordHasher)] {
		problems = append(problems, fmt.Errorf("security.passwordHasher %q is not one of sha256, bcrypt", c.Security.PasswordHasher))
	}
	if strings.EqualFold(c.Security.PasswordHasher, "bcrypt") && (c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31) {
		problems = append(problems, fmt.Errorf("security.bcryptCost %d is outside 4..31", c.Security.BcryptCost))
	}
	if c.Security.MinPasswordLength <= 0 {
		problems = append(problems, errors.New("security.minPasswordLength must be positive"))
	}
	if c.Messaging.Enabled && strings.TrimSpace(c.Messaging.NatsURL) == "" {
		problems = append(problems, errors.New("messaging.natsUrl is required when messaging is enabled"))
	}
	if c.Messaging.QueueSize <= 0 {
		problems = append(problems, errors.New("messaging.queueSize must be positive"))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
	}
	return nil
}
