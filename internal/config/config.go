// Package config provides configuration for the coordinator.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the coordinator configuration.
type Config struct {
	// Server settings
	HTTPPort int `yaml:"http_port"`

	// Command policy: path to a rego file, empty means the built-in
	// default policy.
	PolicyPath string `yaml:"policy_path"`

	// Timeouts
	ShutdownTimeout time.Duration `yaml:"-"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Raw string value for YAML unmarshaling
	ShutdownTimeoutRaw string `yaml:"shutdown_timeout"`
}

// Load loads configuration from environment variables, with an optional
// YAML file named by CONFIG_FILE applied first. Environment variables in
// the file in the format ${VAR_NAME} are expanded.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:        8080,
		PolicyPath:      "",
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.PolicyPath = getEnv("POLICY_PATH", cfg.PolicyPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if ms := getEnvInt("SHUTDOWN_TIMEOUT_MS", 0); ms > 0 {
		cfg.ShutdownTimeout = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	expanded := envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})

	if err := yaml.Unmarshal(expanded, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if c.ShutdownTimeoutRaw != "" {
		d, err := time.ParseDuration(c.ShutdownTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing shutdown_timeout: %w", err)
		}
		c.ShutdownTimeout = d
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
