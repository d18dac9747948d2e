// Package identity maps user identities to storage partition keys.
//
// The recognized identity set is closed: anything outside it is rejected
// with core.ErrInvalidIdentity instead of being mapped to a default. A
// silent fallback here is exactly how one user's mutations end up in
// another user's partition, so the strict rejection must not be weakened.
package identity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Caden-Dane/cadenbudget/internal/core"
)

// KeyPrefix namespaces every partition key in the backing store.
const KeyPrefix = "budget:"

// ProbeKey is the reserved key used by the availability probe. It contains
// '#', which identity names may not, so it can never collide with a
// partition key.
const ProbeKey = KeyPrefix + "#probe"

// DefaultIdentities is the out-of-the-box two-user set.
var DefaultIdentities = []string{"caden", "ciara"}

// Resolver resolves identities from a fixed set to partition keys.
type Resolver struct {
	known map[string]struct{}
}

// NewResolver builds a resolver over the given identity set. Identities are
// trimmed; empty names, duplicates after trimming, and names with characters
// outside [a-zA-Z0-9._-] are rejected.
func NewResolver(identities []string) (*Resolver, error) {
	if len(identities) == 0 {
		return nil, fmt.Errorf("identity set is empty")
	}

	known := make(map[string]struct{}, len(identities))
	for _, id := range identities {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("empty identity in set")
		}
		if !validName(id) {
			return nil, fmt.Errorf("identity %q contains invalid characters", id)
		}
		if _, dup := known[id]; dup {
			return nil, fmt.Errorf("duplicate identity %q", id)
		}
		known[id] = struct{}{}
	}

	return &Resolver{known: known}, nil
}

// ResolveKey maps an identity to its partition key. Deterministic: the same
// identity always yields the same key, distinct identities always yield
// distinct keys (direct namespacing, no hashing).
func (r *Resolver) ResolveKey(id string) (string, error) {
	if _, ok := r.known[id]; !ok {
		return "", fmt.Errorf("identity %q: %w", id, core.ErrInvalidIdentity)
	}
	return KeyPrefix + id, nil
}

// Identities returns the recognized set in sorted order.
func (r *Resolver) Identities() []string {
	out := make([]string, 0, len(r.known))
	for id := range r.known {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func validName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
