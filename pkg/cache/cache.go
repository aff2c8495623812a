// Package cache stores computed placement results so that re-running a scene
// with unchanged inputs does not repeat the work.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for servers running several replicas
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer] so that every entry point derives identical keys for
// identical inputs. [ScopedKeyer] prefixes keys for multi-tenant deployments.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// TTLPlacement is how long a placement result stays cached.
const TTLPlacement = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// PlacementKeyOpts are the inputs, besides the scene itself, that change a
// placement result.
type PlacementKeyOpts struct {
	Step        float64  `json:"step"`
	Clearance   float64  `json:"clearance"`
	Count       int      `json:"count"`
	Category    string   `json:"category"`
	TagCategory string   `json:"tag_category"`
	Family      string   `json:"family"`
	Patterns    []string `json:"patterns"`
	Region      string   `json:"region"`
	TagWidth    float64  `json:"tag_width"`
	TagHeight   float64  `json:"tag_height"`
}

// Keyer derives cache keys.
type Keyer interface {
	// PlacementKey returns the key for a placement run over the scene with the
	// given content hash.
	PlacementKey(sceneHash string, opts PlacementKeyOpts) string
}

// DefaultKeyer builds keys of the form "placement:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlacementKey hashes the scene hash together with every option.
func (DefaultKeyer) PlacementKey(sceneHash string, opts PlacementKeyOpts) string {
	return hashKey("placement", sceneHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
