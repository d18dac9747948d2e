package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// Store backend: memory, sqlite, or firestore
	DataBackend string

	// SQLite
	SQLiteDBPath string

	// Firestore
	FirestoreProjectID  string
	FirestoreCollection string
	CredentialsFile     string
	CredentialsJSON     string

	// Recognized user identities (closed set)
	Identities []string

	// Store call timeout for CLI operations
	StoreTimeout time.Duration
}

// fileConfig is the optional TOML config file shape. Environment variables
// always win over file values.
type fileConfig struct {
	Backend    string   `toml:"backend,omitempty"`
	SQLitePath string   `toml:"sqlite_path,omitempty"`
	Users      []string `toml:"users,omitempty"`

	Firestore struct {
		Project         string `toml:"project,omitempty"`
		Collection      string `toml:"collection,omitempty"`
		CredentialsFile string `toml:"credentials_file,omitempty"`
	} `toml:"firestore"`
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cadenbudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cadenbudget")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

func Load() *Config {
	var file fileConfig
	// A missing or unreadable config file just means defaults.
	_, _ = toml.DecodeFile(ConfigPath(), &file)

	users := file.Users
	if len(users) == 0 {
		users = []string{"caden", "ciara"}
	}

	cfg := &Config{
		DataBackend:  getEnv("DATA_BACKEND", fallback(file.Backend, "memory")),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", fallback(file.SQLitePath, "./data/cadenbudget.db")),

		FirestoreProjectID:  getEnv("FIRESTORE_PROJECT_ID", file.Firestore.Project),
		FirestoreCollection: getEnv("FIRESTORE_COLLECTION", fallback(file.Firestore.Collection, "budgets")),
		CredentialsFile:     getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", file.Firestore.CredentialsFile),
		CredentialsJSON:     getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),

		Identities: getEnvList("BUDGET_USERS", users),

		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 30*time.Second),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"memory", "sqlite", "firestore"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.DataBackend == "firestore" {
		if c.FirestoreProjectID == "" {
			errors = append(errors, "Firestore project id is required when using firestore backend")
		}
		if c.FirestoreCollection == "" {
			errors = append(errors, "Firestore collection cannot be empty when using firestore backend")
		}
		if c.CredentialsFile != "" {
			if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("service account file does not exist: %s", c.CredentialsFile))
			}
		}
	}

	if len(c.Identities) == 0 {
		errors = append(errors, "identity set cannot be empty")
	}
	for _, id := range c.Identities {
		if strings.TrimSpace(id) == "" {
			errors = append(errors, "identity set contains an empty name")
			break
		}
	}

	if c.StoreTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid store timeout %v: must be at least 1 second", c.StoreTimeout))
	} else if c.StoreTimeout > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid store timeout %v: must be at most 1 hour", c.StoreTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func fallback(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
