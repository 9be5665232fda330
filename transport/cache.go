package transport

import (
	"crypto/sha256"
	"encoding/base64"
	"sync"

	"github.com/vmihailenco/msgpack"
)

// cacheKey identifies a (schema, document-bytes) pair. It's msgpack
// encoded and base64'd the same way a cursor is elsewhere in this
// stack: a compact opaque string, not meant to be read by clients.
type cacheKey struct {
	SchemaFingerprint string
	DocumentDigest    []byte
}

func serializeCacheKey(k cacheKey) (string, error) {
	b, err := msgpack.Marshal(k)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// digest hashes the raw bytes of an incoming validate payload so
// repeated sends of the same persisted-query document don't re-walk
// it.
func digest(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

// ResultCache remembers the validation outcome for documents already
// seen on this schema, keyed by a digest of their raw bytes rather than
// any parsed representation.
type ResultCache struct {
	mu      sync.Mutex
	results map[string]string // cache key -> error message, "" for valid
}

func NewResultCache() *ResultCache {
	return &ResultCache{results: map[string]string{}}
}

func (c *ResultCache) Lookup(schemaFingerprint string, raw []byte) (message string, ok bool, key string) {
	key, err := serializeCacheKey(cacheKey{SchemaFingerprint: schemaFingerprint, DocumentDigest: digest(raw)})
	if err != nil {
		return "", false, ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	message, ok = c.results[key]
	return message, ok, key
}

func (c *ResultCache) Store(key string, message string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = message
}
