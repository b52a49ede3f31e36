package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	c := New(path)

	notes := []models.Note{
		{ID: "n1", Title: "First", Type: models.TypeText},
		{ID: "n2", Title: "Second", Type: models.TypeChecklist, Content: "[]"},
	}
	c.Save(notes)

	got, savedAt := c.Load()
	if len(got) != 2 || got[0].ID != "n1" || got[1].ID != "n2" {
		t.Errorf("loaded = %v", got)
	}
	if savedAt.IsZero() {
		t.Error("save time missing")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "absent.json"))
	if notes, _ := c.Load(); notes != nil {
		t.Errorf("missing file should yield nil, got %v", notes)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(path)
	if notes, _ := c.Load(); notes != nil {
		t.Errorf("corrupt file should yield nil, got %v", notes)
	}
}

func TestLoad_ChecksumMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(`{"notes":[{"id":"n1"}],"checksum":"bogus"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(path)
	if notes, _ := c.Load(); notes != nil {
		t.Errorf("tampered snapshot should be discarded, got %v", notes)
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	c := New(path)
	c.Save([]models.Note{{ID: "n1"}})
	c.Clear()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("snapshot file survived Clear")
	}
	// Clearing twice is fine.
	c.Clear()
}

func TestDisabled(t *testing.T) {
	c := New("")
	c.Save([]models.Note{{ID: "n1"}})
	if notes, _ := c.Load(); notes != nil {
		t.Error("disabled cache should never return notes")
	}
}
