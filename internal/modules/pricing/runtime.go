// README: Runtime snapshot cache. Serves pricing reads from memory and
// revalidates against the store with a cheap change marker.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"umzug/internal/modules/catalog"
)

// ErrPricingUnavailable is returned when no snapshot can be served because
// the store failed and nothing fresh enough is cached.
var ErrPricingUnavailable = errors.New("pricing: runtime config unavailable")

// Snapshot is one immutable view of the pricing state, tagged with the
// marker version it was loaded under.
type Snapshot struct {
	Config         Config
	ServiceOptions []catalog.ServiceOption
	PromoRules     []PromoRule
	Version        string
	FetchedAt      time.Time
}

// SnapshotSource is implemented by Store.
type SnapshotSource interface {
	MarkerVersion(ctx context.Context) (string, error)
	FetchSnapshot(ctx context.Context) (*Snapshot, error)
}

const (
	defaultMaxAge      = 120 * time.Second
	defaultMarkerEvery = 15 * time.Second
)

type cacheState struct {
	snap            *Snapshot
	expiresAt       time.Time
	markerCheckedAt time.Time
}

// RuntimeCache serves snapshots from memory. Within the marker interval a
// read touches no storage at all; within the max age a read costs at most
// one marker query; only an expired or changed snapshot triggers a refetch.
type RuntimeCache struct {
	source      SnapshotSource
	maxAge      time.Duration
	markerEvery time.Duration
	now         func() time.Time

	mu    sync.Mutex
	state atomic.Pointer[cacheState]
}

func NewRuntimeCache(source SnapshotSource) *RuntimeCache {
	return &RuntimeCache{
		source:      source,
		maxAge:      defaultMaxAge,
		markerEvery: defaultMarkerEvery,
		now:         time.Now,
	}
}

// Get returns the current snapshot, revalidating or refetching as needed.
func (c *RuntimeCache) Get(ctx context.Context) (*Snapshot, error) {
	now := c.now()
	if st := c.state.Load(); st != nil &&
		now.Before(st.expiresAt) && now.Sub(st.markerCheckedAt) < c.markerEvery {
		return st.snap, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under the lock: another caller may have refreshed already.
	now = c.now()
	st := c.state.Load()
	if st != nil && now.Before(st.expiresAt) && now.Sub(st.markerCheckedAt) < c.markerEvery {
		return st.snap, nil
	}

	if st != nil && now.Before(st.expiresAt) {
		marker, err := c.source.MarkerVersion(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
		}
		if marker == st.snap.Version {
			c.state.Store(&cacheState{snap: st.snap, expiresAt: st.expiresAt, markerCheckedAt: now})
			return st.snap, nil
		}
	}

	snap, err := c.source.FetchSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}
	snap.FetchedAt = now
	c.state.Store(&cacheState{snap: snap, expiresAt: now.Add(c.maxAge), markerCheckedAt: now})
	return snap, nil
}

// Invalidate drops the cached snapshot. The next Get refetches.
func (c *RuntimeCache) Invalidate() {
	c.state.Store(nil)
}
