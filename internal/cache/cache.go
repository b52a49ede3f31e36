// Package cache persists a best-effort snapshot of the note collection so
// a restarted session can render instantly before the store responds.
// Every failure here is logged and swallowed: a missing or corrupt cache
// must never block anything.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

// snapshot is the on-disk envelope. The checksum covers the notes payload;
// a mismatch means a torn or hand-edited file and the snapshot is dropped.
type snapshot struct {
	Notes    []models.Note `json:"notes"`
	Checksum string        `json:"checksum"`
	SavedAt  time.Time     `json:"saved_at"`
}

// Cache reads and writes the snapshot file.
type Cache struct {
	path string
}

// New creates a cache at the given file path. An empty path disables it.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Enabled reports whether a snapshot path is configured.
func (c *Cache) Enabled() bool { return c.path != "" }

// Save writes the current note collection atomically: tmp file, fsync,
// rename.
func (c *Cache) Save(notes []models.Note) {
	if !c.Enabled() {
		return
	}
	payload, err := json.Marshal(notes)
	if err != nil {
		slog.Warn("cache: marshal failed", slog.String("error", err.Error()))
		return
	}
	data, err := json.Marshal(snapshot{
		Notes:    notes,
		Checksum: sum(payload),
		SavedAt:  time.Now(),
	})
	if err != nil {
		slog.Warn("cache: marshal failed", slog.String("error", err.Error()))
		return
	}
	if err := writeAtomic(c.path, data); err != nil {
		slog.Warn("cache: save failed", slog.String("error", err.Error()))
	}
}

// Load returns the cached note collection and its save time, or (nil,
// zero) when there is no usable snapshot.
func (c *Cache) Load() ([]models.Note, time.Time) {
	if !c.Enabled() {
		return nil, time.Time{}
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("cache: read failed", slog.String("error", err.Error()))
		}
		return nil, time.Time{}
	}
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("cache: snapshot parse failed", slog.String("error", err.Error()))
		return nil, time.Time{}
	}
	payload, err := json.Marshal(s.Notes)
	if err != nil || sum(payload) != s.Checksum {
		slog.Warn("cache: snapshot checksum mismatch, discarding")
		return nil, time.Time{}
	}
	return s.Notes, s.SavedAt
}

// Clear removes the snapshot file.
func (c *Cache) Clear() {
	if !c.Enabled() {
		return
	}
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("cache: clear failed", slog.String("error", err.Error()))
	}
}

// writeAtomic writes content via tmp file, fsync, and rename.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".notes-cache-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true
	return nil
}

func sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
