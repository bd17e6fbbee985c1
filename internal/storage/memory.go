package storage

import "sync"

// MemoryCache implements the Cache interface with process-local storage.
// It is the default backup when no Redis address is configured and the
// stand-in cache in tests.
type MemoryCache struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewMemoryCache creates a new in-memory cache instance.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (mc *MemoryCache) SetSnapshotBackup(snap *Snapshot) error {
	mc.mu.Lock()
	mc.snap = snap
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache) GetSnapshotBackup() (*Snapshot, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.snap, nil
}

func (mc *MemoryCache) Close() error {
	return nil
}
