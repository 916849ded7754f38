package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"axiapac.com/timeclock/model"
	"go.uber.org/zap"
)

const backupSuffix = ".bak"

// SyncState is the cursor document shared by every device.
type SyncState struct {
	Devices []model.SyncCursor `json:"devices"`
	LastRun *time.Time         `json:"lastRun,omitempty"`
}

func (s *SyncState) Get(deviceID string) (time.Time, bool) {
	for _, c := range s.Devices {
		if c.DeviceID == deviceID {
			return c.LastSyncedAt, true
		}
	}
	return time.Time{}, false
}

// Advance moves the device cursor forward. It reports whether anything changed;
// cursors never move backwards.
func (s *SyncState) Advance(deviceID string, t time.Time) bool {
	for i, c := range s.Devices {
		if c.DeviceID == deviceID {
			if !t.After(c.LastSyncedAt) {
				return false
			}
			s.Devices[i].LastSyncedAt = t
			return true
		}
	}
	s.Devices = append(s.Devices, model.SyncCursor{DeviceID: deviceID, LastSyncedAt: t})
	return true
}

func parseState(data []byte) (*SyncState, error) {
	var state SyncState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	for _, c := range state.Devices {
		if c.DeviceID == "" {
			return nil, fmt.Errorf("cursor without device id")
		}
	}
	return &state, nil
}

// Blob stores whole documents by name. Read returns an error wrapping
// fs.ErrNotExist for a missing document.
type Blob interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// CursorStore keeps the sync state in a primary document with a backup copy
// of the last good primary next to it.
type CursorStore struct {
	blob   Blob
	name   string
	logger *zap.Logger
}

func NewCursorStore(blob Blob, name string, logger *zap.Logger) *CursorStore {
	return &CursorStore{blob: blob, name: name, logger: logger}
}

// Load tries the primary, then the backup, then starts fresh. Only a storage
// failure on the primary is returned as an error.
func (s *CursorStore) Load(ctx context.Context) (*SyncState, error) {
	data, err := s.blob.Read(ctx, s.name)
	switch {
	case err == nil:
		state, perr := parseState(data)
		if perr == nil {
			return state, nil
		}
		s.logger.Warn("sync state unreadable, trying backup", zap.String("name", s.name), zap.Error(perr))
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("no sync state yet", zap.String("name", s.name))
	default:
		return nil, fmt.Errorf("failed to read sync state: %w", err)
	}

	data, err = s.blob.Read(ctx, s.name+backupSuffix)
	if err == nil {
		if state, perr := parseState(data); perr == nil {
			s.logger.Warn("sync state recovered from backup", zap.String("name", s.name+backupSuffix))
			return state, nil
		}
	}

	return &SyncState{}, nil
}

func (s *CursorStore) Save(ctx context.Context, state *SyncState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sync state: %w", err)
	}

	if current, err := s.blob.Read(ctx, s.name); err == nil {
		if _, perr := parseState(current); perr == nil {
			if err := s.blob.Write(ctx, s.name+backupSuffix, current); err != nil {
				s.logger.Warn("failed to write sync state backup", zap.Error(err))
			}
		}
	}

	if err := s.blob.Write(ctx, s.name, data); err != nil {
		return fmt.Errorf("failed to write sync state: %w", err)
	}
	return nil
}

// FileBlob stores documents on local disk. Names are file paths.
type FileBlob struct{}

func (FileBlob) Read(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Write replaces the file atomically through a temp file and rename.
func (FileBlob) Write(_ context.Context, name string, data []byte) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, name)
}

type ObjectStore interface {
	ReadFile(ctx context.Context, bucket string, key string, w io.Writer) error
	WriteFile(ctx context.Context, bucket string, key string, data []byte, contentType string) error
}

// S3Blob stores documents as objects in one bucket. Names are keys.
type S3Blob struct {
	objects ObjectStore
	bucket  string
}

func NewS3Blob(objects ObjectStore, bucket string) *S3Blob {
	return &S3Blob{objects: objects, bucket: bucket}
}

func (b *S3Blob) Read(ctx context.Context, name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := b.objects.ReadFile(ctx, b.bucket, name, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *S3Blob) Write(ctx context.Context, name string, data []byte) error {
	return b.objects.WriteFile(ctx, b.bucket, name, data, "application/json")
}
