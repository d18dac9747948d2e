package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points the config dir at an empty temp dir and clears every
// environment variable Load reads.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{
		"DATA_BACKEND", "SQLITE_DB_PATH",
		"FIRESTORE_PROJECT_ID", "FIRESTORE_COLLECTION",
		"GOOGLE_SERVICE_ACCOUNT_FILE", "GOOGLE_SERVICE_ACCOUNT_JSON",
		"BUDGET_USERS", "STORE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg := Load()

	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want memory", cfg.DataBackend)
	}
	if cfg.SQLiteDBPath != "./data/cadenbudget.db" {
		t.Errorf("SQLiteDBPath = %q, want ./data/cadenbudget.db", cfg.SQLiteDBPath)
	}
	if cfg.FirestoreCollection != "budgets" {
		t.Errorf("FirestoreCollection = %q, want budgets", cfg.FirestoreCollection)
	}
	if len(cfg.Identities) != 2 || cfg.Identities[0] != "caden" || cfg.Identities[1] != "ciara" {
		t.Errorf("Identities = %v, want [caden ciara]", cfg.Identities)
	}
	if cfg.StoreTimeout != 30*time.Second {
		t.Errorf("StoreTimeout = %v, want 30s", cfg.StoreTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
	t.Setenv("BUDGET_USERS", " alice , bob ,")
	t.Setenv("STORE_TIMEOUT", "5s")

	cfg := Load()

	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %q, want sqlite", cfg.DataBackend)
	}
	if cfg.SQLiteDBPath != "/tmp/test.db" {
		t.Errorf("SQLiteDBPath = %q, want /tmp/test.db", cfg.SQLiteDBPath)
	}
	if len(cfg.Identities) != 2 || cfg.Identities[0] != "alice" || cfg.Identities[1] != "bob" {
		t.Errorf("Identities = %v, want [alice bob]", cfg.Identities)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("StoreTimeout = %v, want 5s", cfg.StoreTimeout)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)

	dir := filepath.Join(t.TempDir(), "cadenbudget")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	body := `backend = "firestore"
users = ["caden"]

[firestore]
project = "my-project"
collection = "envelopes"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Dir(dir))

	cfg := Load()

	if cfg.DataBackend != "firestore" {
		t.Errorf("DataBackend = %q, want firestore", cfg.DataBackend)
	}
	if cfg.FirestoreProjectID != "my-project" {
		t.Errorf("FirestoreProjectID = %q, want my-project", cfg.FirestoreProjectID)
	}
	if cfg.FirestoreCollection != "envelopes" {
		t.Errorf("FirestoreCollection = %q, want envelopes", cfg.FirestoreCollection)
	}
	if len(cfg.Identities) != 1 || cfg.Identities[0] != "caden" {
		t.Errorf("Identities = %v, want [caden]", cfg.Identities)
	}

	// Environment still wins over the file.
	t.Setenv("DATA_BACKEND", "memory")
	cfg = Load()
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want env override memory", cfg.DataBackend)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataBackend:  "memory",
			Identities:   []string{"caden", "ciara"},
			StoreTimeout: 30 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid memory", mutate: func(c *Config) {}},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.DataBackend = "redis" },
			wantErr: "invalid data backend",
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr: "database path cannot be empty",
		},
		{
			name:    "firestore without project",
			mutate:  func(c *Config) { c.DataBackend = "firestore"; c.FirestoreCollection = "budgets" },
			wantErr: "project id is required",
		},
		{
			name:    "no identities",
			mutate:  func(c *Config) { c.Identities = nil },
			wantErr: "identity set cannot be empty",
		},
		{
			name:    "blank identity",
			mutate:  func(c *Config) { c.Identities = []string{"caden", "  "} },
			wantErr: "empty name",
		},
		{
			name:    "timeout too small",
			mutate:  func(c *Config) { c.StoreTimeout = 100 * time.Millisecond },
			wantErr: "at least 1 second",
		},
		{
			name:    "timeout too large",
			mutate:  func(c *Config) { c.StoreTimeout = 2 * time.Hour },
			wantErr: "at most 1 hour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
