package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a "<stage>:<digest>" key from a pipeline stage name and the
// inputs that invalidate that stage. Components are JSON-encoded before
// hashing, which keeps map-valued inputs such as pinned positions
// deterministic.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return stage + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data. The pipeline uses it to
// fingerprint raw workflow definitions and serialized layout state.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
