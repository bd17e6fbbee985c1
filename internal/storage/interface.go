package storage

import "time"

// Cache is the backup store for ingested market snapshots. The live
// engine state stays in memory; the cache only lets a restarted process
// (or another pod) rehydrate without re-reading the source records.
type Cache interface {
	SetSnapshotBackup(snap *Snapshot) error
	GetSnapshotBackup() (*Snapshot, error)
	Close() error
}

type CacheOptions struct {
	DefaultTTL time.Duration
}

func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		DefaultTTL: 24 * time.Hour,
	}
}
