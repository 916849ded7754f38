package model

import "time"

// SyncCursor is the per-device bookmark kept in the sync state document.
type SyncCursor struct {
	DeviceID     string    `json:"deviceId"`
	LastSyncedAt time.Time `json:"lastSyncedAt"`
}
