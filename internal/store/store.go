// Package store provides durable get/put of budget documents keyed by
// partition, with read-back verification on every write. All backends sit
// behind the Backend interface; the DocumentStore wrapper gives every caller
// identical durability guarantees regardless of the backing medium.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Caden-Dane/cadenbudget/internal/core"
	"github.com/Caden-Dane/cadenbudget/internal/identity"
)

// Backend is the raw byte-level medium behind a DocumentStore. Implementations
// wrap core.ErrStoreUnavailable when the medium itself cannot be reached.
type Backend interface {
	// Get returns the stored bytes for key. found is false when the key was
	// never written; that is not an error.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)

	// Set fully replaces the value under key. A Set either replaces the
	// prior value whole or leaves it untouched.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	Close() error
}

// DocumentStore performs document get/put against a Backend and verifies
// every put by reading the value back and structurally comparing it to the
// intended document. On mismatch it retries the write once, then fails with
// core.ErrWriteVerificationFailed rather than reporting a silent success.
type DocumentStore struct {
	backend Backend
}

func New(backend Backend) *DocumentStore {
	return &DocumentStore{backend: backend}
}

// Get loads the document under key. found is false when no document was
// ever written for the key; stored bytes always decode to a well-formed
// document via core.Decode.
func (s *DocumentStore) Get(ctx context.Context, key string) (core.BudgetDocument, bool, error) {
	data, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return core.NewDocument(), false, fmt.Errorf("get %s: %w", key, err)
	}
	if !found {
		return core.NewDocument(), false, nil
	}
	return core.Decode(data), true, nil
}

// Put persists the document under key and confirms the write.
func (s *DocumentStore) Put(ctx context.Context, key string, doc core.BudgetDocument) error {
	want := core.Normalize(doc)
	data, err := core.Encode(want)
	if err != nil {
		return fmt.Errorf("encode document for %s: %w", key, err)
	}

	// One immediate retry on verification mismatch is the only retry in the
	// whole system; failures after that surface to the initiating action.
	for attempt := 1; attempt <= 2; attempt++ {
		if err := s.backend.Set(ctx, key, data); err != nil {
			return fmt.Errorf("put %s: %w", key, err)
		}

		stored, found, err := s.backend.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("verify %s: %w", key, err)
		}
		if found && core.Decode(stored).Equal(want) {
			if attempt > 1 {
				slog.WarnContext(ctx, "Write verified on retry", "key", key)
			}
			return nil
		}

		slog.WarnContext(ctx, "Write verification mismatch", "key", key, "attempt", attempt)
	}

	return fmt.Errorf("put %s: %w", key, core.ErrWriteVerificationFailed)
}

// Probe checks that the backing medium works end to end by running a
// disposable write+read+delete cycle under the reserved probe key. Run once
// at process start; a failure means persistence is not working and the
// caller must surface it instead of proceeding.
func (s *DocumentStore) Probe(ctx context.Context) error {
	probe := core.NewDocument()
	probe.Income = 1

	if err := s.Put(ctx, identity.ProbeKey, probe); err != nil {
		return fmt.Errorf("probe write: %w", err)
	}
	if err := s.backend.Delete(ctx, identity.ProbeKey); err != nil {
		return fmt.Errorf("probe cleanup: %w", err)
	}
	return nil
}

func (s *DocumentStore) Close() error {
	return s.backend.Close()
}
