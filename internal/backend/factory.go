package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Caden-Dane/cadenbudget/internal/store/firestore"
	"github.com/Caden-Dane/cadenbudget/internal/store/memory"
	"github.com/Caden-Dane/cadenbudget/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case FirestoreBackend:
		return f.createFirestoreBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	st, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite backend: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Backend: st,
		Cleanup: st.Close,
	}, nil
}

func (f *DefaultFactory) createFirestoreBackend(ctx context.Context, config Config) (*Result, error) {
	st, err := firestore.New(ctx, firestore.Config{
		ProjectID:       config.FirestoreProjectID,
		Collection:      config.FirestoreCollection,
		CredentialsFile: config.CredentialsFile,
		CredentialsJSON: config.CredentialsJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firestore backend: %w", err)
	}

	f.logger.Info("Initialized Firestore backend",
		"project", config.FirestoreProjectID,
		"collection", config.FirestoreCollection)

	return &Result{
		Backend: st,
		Cleanup: nil, // No cleanup needed for the Firestore backend
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	st := memory.New()

	f.logger.Info("Initialized memory backend")

	return &Result{
		Backend: st,
		Cleanup: nil, // No cleanup needed for the memory backend
	}, nil
}
