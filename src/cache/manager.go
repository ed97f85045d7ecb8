package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/OneOfOne/xxhash"
	"github.com/redis/go-redis/v9"

	"github.com/verilens/verilens/src/factcheck"
)

const (
	verdictPrefix = "verdict:"
	defaultTTL    = time.Hour
)

// Manager caches canonical verdicts in redis, keyed by a hash of the
// normalized claim text. A nil Manager is a no-op.
type Manager struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewManager wraps a redis client. Zero ttl means the default of one hour.
func NewManager(rdb *redis.Client, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{rdb: rdb, ttl: ttl}
}

// Key returns the cache key for a claim. Surrounding whitespace does not
// change the key.
func Key(claim string) string {
	h := xxhash.Checksum64([]byte(strings.TrimSpace(claim)))
	return fmt.Sprintf("%s%x", verdictPrefix, h)
}

// Get returns the cached verdict for claim, or nil on miss or any error.
func (m *Manager) Get(ctx context.Context, claim string) *factcheck.CanonicalVerdict {
	if m == nil || m.rdb == nil {
		return nil
	}

	raw, err := m.rdb.Get(ctx, Key(claim)).Result()
	if err != nil {
		return nil
	}

	var verdict factcheck.CanonicalVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return nil
	}
	return &verdict
}

// Put stores a verdict best-effort; failures are reported but never block
// the response path.
func (m *Manager) Put(ctx context.Context, claim string, verdict *factcheck.CanonicalVerdict) error {
	if m == nil || m.rdb == nil || verdict == nil {
		return nil
	}

	raw, err := json.Marshal(verdict)
	if err != nil {
		return err
	}
	return m.rdb.Set(ctx, Key(claim), raw, m.ttl).Err()
}
