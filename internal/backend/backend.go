// Package backend selects and constructs the store backend from
// configuration.
package backend

import (
	"context"

	"github.com/Caden-Dane/cadenbudget/internal/store"
)

// Type identifies a store backend.
type Type string

const (
	SQLiteBackend    Type = "sqlite"
	FirestoreBackend Type = "firestore"
	MemoryBackend    Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, FirestoreBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the constructed backend and optional cleanup function.
type Result struct {
	Backend store.Backend
	Cleanup CleanupFunc
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Firestore specific
	FirestoreProjectID  string
	FirestoreCollection string
	CredentialsFile     string
	CredentialsJSON     string
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}
