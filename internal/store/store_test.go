package store

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Archis03007/linked-notes-app/internal/apperr"
	"github.com/Archis03007/linked-notes-app/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "linked-notes-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testNote(id, title string) models.Note {
	now := time.Now().UTC()
	return models.Note{
		ID:        id,
		OwnerID:   "owner-1",
		Title:     title,
		Subtitle:  "sub",
		Content:   "<p>body</p>",
		Type:      models.TypeText,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	for _, table := range []string{"notes", "tags", "note_tags", "links", "profiles"} {
		var count int
		if err := db.conn.QueryRow(`SELECT count(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}
}

func TestInsertAndGetNote(t *testing.T) {
	db := testDB(t)
	n := testNote("n1", "Hello")
	if err := db.InsertNote(n, nil); err != nil {
		t.Fatalf("InsertNote: %v", err)
	}
	got, err := db.GetNote("n1")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Title != "Hello" || got.Type != models.TypeText {
		t.Errorf("got %+v", got)
	}
}

func TestInsertNote_Duplicate(t *testing.T) {
	db := testDB(t)
	n := testNote("n1", "Hello")
	if err := db.InsertNote(n, nil); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := db.InsertNote(n, nil); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate insert err = %v, want ErrAlreadyExists", err)
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	db := testDB(t)
	err := db.UpdateNote(testNote("missing", "x"), nil)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListNotes_NewestFirst(t *testing.T) {
	db := testDB(t)
	older := testNote("n1", "Older")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := testNote("n2", "Newer")
	if err := db.InsertNote(older, nil); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertNote(newer, nil); err != nil {
		t.Fatal(err)
	}
	notes, err := db.ListNotes("owner-1")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len = %d", len(notes))
	}
	if notes[0].ID != "n2" || notes[1].ID != "n1" {
		t.Errorf("order = %s, %s", notes[0].ID, notes[1].ID)
	}
}

func TestBacklinks_CaseInsensitive(t *testing.T) {
	db := testDB(t)
	if err := db.InsertNote(testNote("n1", "Source"), []string{"Target Note"}); err != nil {
		t.Fatal(err)
	}
	back, err := db.Backlinks("target note")
	if err != nil {
		t.Fatalf("Backlinks: %v", err)
	}
	if len(back) != 1 || back[0].ID != "n1" {
		t.Errorf("backlinks = %v", back)
	}
}

func TestUpdateNote_ReplacesLinks(t *testing.T) {
	db := testDB(t)
	n := testNote("n1", "Source")
	if err := db.InsertNote(n, []string{"Old"}); err != nil {
		t.Fatal(err)
	}
	if err := db.UpdateNote(n, []string{"New"}); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if back, _ := db.Backlinks("Old"); len(back) != 0 {
		t.Errorf("old link survived: %v", back)
	}
	if back, _ := db.Backlinks("New"); len(back) != 1 {
		t.Errorf("new link missing")
	}
}

func TestDeleteNote_CleansUp(t *testing.T) {
	db := testDB(t)
	if err := db.InsertNote(testNote("n1", "Doomed"), []string{"Target"}); err != nil {
		t.Fatal(err)
	}
	tag := models.Tag{ID: "t1", OwnerID: "owner-1", Name: "work", Color: "blue-500", CreatedAt: time.Now()}
	if err := db.InsertTag(tag); err != nil {
		t.Fatal(err)
	}
	if err := db.ReplaceNoteTags("n1", []string{"t1"}); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteNote("n1"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := db.GetNote("n1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("note survived delete")
	}
	if back, _ := db.Backlinks("Target"); len(back) != 0 {
		t.Errorf("links survived delete")
	}
	if ids, _ := db.NoteTagIDs("n1"); len(ids) != 0 {
		t.Errorf("note_tags survived delete")
	}
}

func TestTagsCRUD(t *testing.T) {
	db := testDB(t)
	tag := models.Tag{ID: "t1", OwnerID: "owner-1", Name: "work", Color: "blue-500", CreatedAt: time.Now()}
	if err := db.InsertTag(tag); err != nil {
		t.Fatalf("InsertTag: %v", err)
	}
	tag.Name = "home"
	tag.Color = "green-500"
	if err := db.UpdateTag(tag); err != nil {
		t.Fatalf("UpdateTag: %v", err)
	}
	tags, err := db.ListTags("owner-1")
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "home" || tags[0].Color != "green-500" {
		t.Errorf("tags = %v", tags)
	}
	if err := db.DeleteTag("t1"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	if err := db.DeleteTag("t1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestReplaceNoteTags(t *testing.T) {
	db := testDB(t)
	if err := db.InsertNote(testNote("n1", "Note"), nil); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"t1", "t2", "t3"} {
		tag := models.Tag{ID: id, OwnerID: "owner-1", Name: id, Color: "red-500", CreatedAt: time.Now()}
		if err := db.InsertTag(tag); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.ReplaceNoteTags("n1", []string{"t1", "t2"}); err != nil {
		t.Fatalf("ReplaceNoteTags: %v", err)
	}
	if err := db.ReplaceNoteTags("n1", []string{"t3"}); err != nil {
		t.Fatalf("ReplaceNoteTags second: %v", err)
	}
	ids, err := db.NoteTagIDs("n1")
	if err != nil {
		t.Fatalf("NoteTagIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != "t3" {
		t.Errorf("ids = %v, want [t3]", ids)
	}
}

func TestProfileUpsert(t *testing.T) {
	db := testDB(t)
	p := models.Profile{OwnerID: "owner-1", DisplayName: "Ada", Email: "ada@example.com", UpdatedAt: time.Now()}
	if err := db.UpsertProfile(p); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	p.DisplayName = "Ada L."
	if err := db.UpsertProfile(p); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err := db.GetProfile("owner-1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.DisplayName != "Ada L." {
		t.Errorf("display name = %q", got.DisplayName)
	}
}

func TestSearch_LikeFallback(t *testing.T) {
	db := testDB(t)
	n := testNote("n1", "Groceries")
	n.Content = "<p>buy milk and eggs</p>"
	if err := db.InsertNote(n, nil); err != nil {
		t.Fatal(err)
	}
	results, err := db.Search("owner-1", "milk", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "n1" {
		t.Errorf("results = %v", results)
	}
	// Other owners' notes never leak into results.
	results, err = db.Search("owner-2", "milk", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("cross-owner leak: %v", results)
	}
}
