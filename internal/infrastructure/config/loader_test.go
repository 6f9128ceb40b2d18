package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty temp dir and clears overrides
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	oldConfigPaths, oldDotEnvPaths := ConfigPaths, DotEnvPaths
	ConfigPaths = []string{dir}
	DotEnvPaths = []string{filepath.Join(dir, ".env")}
	t.Cleanup(func() {
		ConfigPaths, DotEnvPaths = oldConfigPaths, oldDotEnvPaths
	})

	for _, name := range []string{
		"CLB_ENV", "CLB_BANK_NAME", "CLB_SERVER_PORT", "CLB_LOGGER_LEVEL",
		"CLB_SECURITY_PASSWORDHASHER", "CLB_MESSAGING_ENABLED", "CLB_MESSAGING_NATSURL",
		"PORT", "NATS_URL",
	} {
		unsetEnv(t, name)
	}
	return dir
}

// unsetEnv removes name for the duration of the test
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	require.NoError(t, os.Unsetenv(name))
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "Command Line Bank", cfg.Bank.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.False(t, cfg.Logger.IsJSON())
	assert.Equal(t, "sha256", cfg.Security.PasswordHasher)
	assert.Equal(t, 8, cfg.Security.MinPasswordLength)
	assert.False(t, cfg.Messaging.Enabled)
	assert.Equal(t, 100, cfg.Messaging.QueueSize)
	assert.Equal(t, 2*time.Second, cfg.Messaging.ConnectTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CLB_ENV", "Production")

	yaml := `
bank:
  name: Test Bank
server:
  port: 9000
  shutdownTimeout: 3
logger:
  level: warn
  format: json
security:
  passwordHasher: bcrypt
  bcryptCost: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "production.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "Test Bank", cfg.Bank.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Logger.IsJSON())
	assert.Equal(t, "bcrypt", cfg.Security.PasswordHasher)
	assert.Equal(t, 4, cfg.Security.BcryptCost)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "development.yaml"), []byte("server:\n  port: 9000\n"), 0o600))

	t.Setenv("CLB_SERVER_PORT", "9100")
	t.Setenv("CLB_LOGGER_LEVEL", "debug")
	t.Setenv("CLB_MESSAGING_ENABLED", "true")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Messaging.Enabled)
	assert.Equal(t, "nats://broker:4222", cfg.Messaging.NatsURL)
}

func TestLoadConfigUnprefixedPort(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)

	t.Setenv("CLB_SERVER_PORT", "7171")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7171, cfg.Server.Port)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLB_BANK_NAME=Dotenv Bank\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Dotenv Bank", cfg.Bank.Name)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "development.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: Test,
			Bank:        BankConfig{Name: "Bank"},
			Server:      ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
			Logger:      LoggerConfig{Level: "info"},
			Security:    SecurityConfig{PasswordHasher: "sha256", MinPasswordLength: 8},
			Messaging:   MessagingConfig{QueueSize: 10},
		}
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		message string
	}{
		{"Unknown environment", func(c *Config) { c.Environment = "staging" }, "environment"},
		{"Bcrypt cost out of range", func(c *Config) {
			c.Security.PasswordHasher = "bcrypt"
			c.Security.BcryptCost = 2
		}, "bcryptCost"},
		{"Missing bank name", func(c *Config) { c.Bank.Name = " " }, "bank.name"},
		{"Port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"Zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "shutdownTimeout"},
		{"Unknown log level", func(c *Config) { c.Logger.Level = "verbose" }, "logger.level"},
		{"Unknown hasher", func(c *Config) { c.Security.PasswordHasher = "md5" }, "passwordHasher"},
		{"Non-positive password length", func(c *Config) { c.Security.MinPasswordLength = 0 }, "minPasswordLength"},
		{"Messaging without URL", func(c *Config) { c.Messaging.Enabled = true }, "natsUrl"},
		{"Zero queue size", func(c *Config) { c.Messaging.QueueSize = 0 }, "queueSize"},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
