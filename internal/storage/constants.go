package storage

const (
	snapshotBackupKey = "risk:snapshot_backup"
)
