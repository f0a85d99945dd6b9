package peekapi

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashConsumerID returns a stable, non-reversible identifier for raw,
// prefixed "hash_" followed by the first 6 bytes (12 hex characters) of
// its SHA-256 digest. Used to identify a consumer from a credential-
// bearing header without storing the credential itself.
func HashConsumerID(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return "hash_" + hex.EncodeToString(sum[:6])
}

// DefaultIdentifyConsumer derives a consumer id from request headers:
// the literal `x-api-key` header if present, otherwise a hash of the
// `authorization` header (which carries credentials and so is never
// stored as-is), otherwise no consumer id at all.
func DefaultIdentifyConsumer(get HeaderGetter) (string, bool) {
	if key, ok := get("x-api-key"); ok && key != "" {
		return key, true
	}
	if auth, ok := get("authorization"); ok && auth != "" {
		return HashConsumerID(auth), true
	}
	return "", false
}
