package store

import "github.com/Archis03007/linked-notes-app/internal/models"

// Store defines the persistence operations consumed by the service layer.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type Store interface {
	InsertNote(n models.Note, links []string) error
	UpdateNote(n models.Note, links []string) error
	GetNote(id string) (*models.Note, error)
	ListNotes(ownerID string) ([]models.Note, error)
	DeleteNote(id string) error
	Backlinks(title string) ([]models.Note, error)

	InsertTag(t models.Tag) error
	UpdateTag(t models.Tag) error
	DeleteTag(id string) error
	ListTags(ownerID string) ([]models.Tag, error)
	ReplaceNoteTags(noteID string, tagIDs []string) error
	NoteTagIDs(noteID string) ([]string, error)

	UpsertProfile(p models.Profile) error
	GetProfile(ownerID string) (*models.Profile, error)

	Search(ownerID, query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

// SearchResult is one full-text search hit.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
