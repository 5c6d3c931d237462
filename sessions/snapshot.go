package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/imovie-web/internal/errors"
)

// SnapshotKey is the key the identity snapshot is persisted under.
const SnapshotKey = "user"

// SnapshotStore is the key-value port the Session Store persists to.
// Implementations live in sessions/snapshots.
type SnapshotStore interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

func encodeSnapshot(identity *Identity) ([]byte, error) {
	return json.Marshal(identity)
}

// decodeSnapshot parses a persisted identity. Anything other than a JSON
// object describing an identity with a positive id is malformed.
func decodeSnapshot(data []byte) (*Identity, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, errors.ErrMalformedSnapshot
	}
	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedSnapshot, err)
	}
	if identity.ID <= 0 {
		return nil, fmt.Errorf("%w: missing id", errors.ErrMalformedSnapshot)
	}
	return identity.clone(), nil
}
