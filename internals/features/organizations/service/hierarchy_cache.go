// file: internals/features/organizations/service/hierarchy_cache.go
package service

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"cyberassess_backend/internals/configs"
)

// The org tree changes rarely (new units are an administrative event), so
// request handlers share one snapshot and refresh it on a TTL instead of
// reloading three tables per request. A replaced snapshot is a new value;
// readers holding the old one stay consistent.
type snapshotCache struct {
	mu       sync.RWMutex
	loadedAt time.Time
	h        *Hierarchy
}

var orgCache snapshotCache

func snapshotTTL() time.Duration {
	secs := configs.GetEnvInt("ORG_SNAPSHOT_TTL_SECONDS", 300)
	if secs < 1 {
		secs = 300
	}
	return time.Duration(secs) * time.Second
}

// CurrentHierarchy returns the cached snapshot, reloading it when stale.
func CurrentHierarchy(ctx context.Context, db *gorm.DB) (*Hierarchy, error) {
	ttl := snapshotTTL()

	orgCache.mu.RLock()
	if orgCache.h != nil && time.Since(orgCache.loadedAt) < ttl {
		h := orgCache.h
		orgCache.mu.RUnlock()
		return h, nil
	}
	orgCache.mu.RUnlock()

	orgCache.mu.Lock()
	defer orgCache.mu.Unlock()
	if orgCache.h != nil && time.Since(orgCache.loadedAt) < ttl {
		return orgCache.h, nil
	}

	h, err := LoadHierarchy(ctx, db)
	if err != nil {
		// Serve the stale snapshot over failing the request outright.
		if orgCache.h != nil {
			return orgCache.h, nil
		}
		return nil, err
	}
	orgCache.loadedAt = time.Now()
	orgCache.h = h
	return h, nil
}

// InvalidateHierarchy forces the next CurrentHierarchy call to reload.
func InvalidateHierarchy() {
	orgCache.mu.Lock()
	orgCache.h = nil
	orgCache.mu.Unlock()
}
