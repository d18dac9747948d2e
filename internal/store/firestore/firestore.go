// Package firestore provides the cloud document store backend, backed by the
// Firestore REST API. Each partition key maps to one Firestore document
// holding the serialized budget body.
package firestore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Caden-Dane/cadenbudget/internal/core"
	"github.com/Caden-Dane/cadenbudget/internal/store"

	gfirestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
)

type Store struct {
	svc        *gfirestore.Service
	projectID  string
	collection string
}

var _ store.Backend = (*Store)(nil)

// Config carries the connection settings for the Firestore backend.
type Config struct {
	ProjectID  string
	Collection string

	// Credentials resolution order: inline JSON, then file, then ADC.
	CredentialsJSON string
	CredentialsFile string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("missing Firestore project id")
	}
	collection := strings.TrimSpace(cfg.Collection)
	if collection == "" {
		collection = "budgets"
	}

	svc, err := newFirestoreService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("firestore service: %w", err)
	}

	return &Store{
		svc:        svc,
		projectID:  cfg.ProjectID,
		collection: collection,
	}, nil
}

// newFirestoreService initializes the REST client using service account
// credentials. Uses inline JSON, a credentials file, or the standard
// GOOGLE_APPLICATION_CREDENTIALS fallback.
func newFirestoreService(ctx context.Context, cfg Config) (*gfirestore.Service, error) {
	credentialsJSON := strings.TrimSpace(cfg.CredentialsJSON)
	credentialsFile := strings.TrimSpace(cfg.CredentialsFile)
	if credentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	opts := []goption.ClientOption{
		goption.WithScopes(gfirestore.DatastoreScope),
	}

	switch {
	case credentialsJSON != "":
		slog.InfoContext(ctx, "Using inline JSON credentials for Firestore")
		opts = append(opts, goption.WithCredentialsJSON([]byte(credentialsJSON)))
	case credentialsFile != "":
		slog.InfoContext(ctx, "Reading Firestore credentials from file", "path", credentialsFile)
		opts = append(opts, goption.WithCredentialsFile(credentialsFile))
	default:
		return nil, errors.New("missing service account credentials for Firestore backend")
	}

	svc, err := gfirestore.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore service: %w", err)
	}
	return svc, nil
}

// docName builds the full Firestore resource name for a partition key. The
// key is base64url-encoded into the document id so reserved characters in
// keys (':' and the probe '#') can never produce a malformed resource path
// or collide with another key's encoding.
func (s *Store) docName(key string) string {
	docID := base64.RawURLEncoding.EncodeToString([]byte(key))
	return fmt.Sprintf("projects/%s/databases/(default)/documents/%s/%s",
		s.projectID, s.collection, docID)
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	doc, err := s.svc.Projects.Databases.Documents.Get(s.docName(key)).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("firestore get: %v: %w", err, core.ErrStoreUnavailable)
	}

	body, ok := doc.Fields["body"]
	if !ok {
		// Document exists but carries no body; treat as never written.
		return nil, false, nil
	}
	return []byte(body.StringValue), true, nil
}

func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	doc := &gfirestore.Document{
		Fields: map[string]gfirestore.Value{
			"body": {StringValue: string(data)},
		},
	}

	// Patch without an update mask replaces the stored document whole,
	// creating it when absent.
	_, err := s.svc.Projects.Databases.Documents.Patch(s.docName(key), doc).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("firestore patch: %v: %w", err, core.ErrStoreUnavailable)
	}

	slog.DebugContext(ctx, "Document saved to Firestore", "key", key, "bytes", len(data))
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.svc.Projects.Databases.Documents.Delete(s.docName(key)).Context(ctx).Do()
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("firestore delete: %v: %w", err, core.ErrStoreUnavailable)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 404
}
