// Package noteservice coordinates the persistent store, the local snapshot
// cache, and the change feed for note, tag, and profile operations.
package noteservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Archis03007/linked-notes-app/internal/backlink"
	"github.com/Archis03007/linked-notes-app/internal/cache"
	"github.com/Archis03007/linked-notes-app/internal/content"
	"github.com/Archis03007/linked-notes-app/internal/models"
	"github.com/Archis03007/linked-notes-app/internal/store"
)

// Publisher receives note change notifications. The SSE broker implements
// it; a nil publisher disables the feed.
type Publisher interface {
	PublishNoteEvent(kind, id, title string)
}

// Service coordinates store, cache, and change-feed operations.
type Service struct {
	store store.Store
	cache *cache.Cache
	pub   Publisher
}

// NewService creates a new note service.
func NewService(st store.Store, c *cache.Cache, pub Publisher) *Service {
	if c == nil {
		c = cache.New("")
	}
	return &Service{store: st, cache: c, pub: pub}
}

// CreateNote creates a note of the given type with its seed content and
// optional initial tag set.
func (s *Service) CreateNote(_ context.Context, ownerID, title, subtitle string, typ models.NoteType, tagIDs []string) (*models.Note, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("noteservice: unknown note type %q", typ)
	}
	now := time.Now().UTC()
	n := models.Note{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Subtitle:  subtitle,
		Content:   content.InitialContent(typ),
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertNote(n, linkTargets(n)); err != nil {
		return nil, err
	}
	if len(tagIDs) > 0 {
		if err := s.store.ReplaceNoteTags(n.ID, tagIDs); err != nil {
			return nil, err
		}
	}
	s.notify("created", n)
	s.refreshCache(ownerID)
	return &n, nil
}

// UpdateNote persists a note's current fields and re-derives its outgoing
// links from the content markup.
func (s *Service) UpdateNote(_ context.Context, n models.Note) error {
	n.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateNote(n, linkTargets(n)); err != nil {
		return err
	}
	s.notify("updated", n)
	s.refreshCache(n.OwnerID)
	return nil
}

// DeleteNote removes a note from the store and drops the cached snapshot's
// stale copy.
func (s *Service) DeleteNote(_ context.Context, ownerID, id string) error {
	n, err := s.store.GetNote(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteNote(id); err != nil {
		return err
	}
	s.notify("deleted", *n)
	s.refreshCache(ownerID)
	return nil
}

// GetNote returns a single note by id.
func (s *Service) GetNote(_ context.Context, id string) (*models.Note, error) {
	return s.store.GetNote(id)
}

// ListNotes returns all of an owner's notes, newest first.
func (s *Service) ListNotes(_ context.Context, ownerID string) ([]models.Note, error) {
	return s.store.ListNotes(ownerID)
}

// Backlinks returns the notes whose content references the given title.
func (s *Service) Backlinks(_ context.Context, title string) ([]models.Note, error) {
	return s.store.Backlinks(title)
}

// Search delegates full-text search to the store.
func (s *Service) Search(_ context.Context, ownerID, query string, limit int) ([]store.SearchResult, error) {
	return s.store.Search(ownerID, query, limit)
}

// CreateTag creates a tag with a palette color.
func (s *Service) CreateTag(_ context.Context, ownerID, name, color string) (*models.Tag, error) {
	if !models.ValidTagColor(color) {
		return nil, fmt.Errorf("noteservice: color %q is not in the palette", color)
	}
	t := models.Tag{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertTag(t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTag replaces a tag's name and color.
func (s *Service) UpdateTag(_ context.Context, t models.Tag) error {
	if !models.ValidTagColor(t.Color) {
		return fmt.Errorf("noteservice: color %q is not in the palette", t.Color)
	}
	return s.store.UpdateTag(t)
}

// DeleteTag removes a tag and its associations.
func (s *Service) DeleteTag(_ context.Context, id string) error {
	return s.store.DeleteTag(id)
}

// ListTags returns an owner's tags in creation order.
func (s *Service) ListTags(_ context.Context, ownerID string) ([]models.Tag, error) {
	return s.store.ListTags(ownerID)
}

// ReplaceNoteTags replaces a note's full tag set.
func (s *Service) ReplaceNoteTags(_ context.Context, noteID string, tagIDs []string) error {
	return s.store.ReplaceNoteTags(noteID, tagIDs)
}

// NoteTagIDs returns the tag ids associated with a note.
func (s *Service) NoteTagIDs(_ context.Context, noteID string) ([]string, error) {
	return s.store.NoteTagIDs(noteID)
}

// Profile returns the owner's profile, or an empty profile when none was
// saved yet.
func (s *Service) Profile(_ context.Context, ownerID string) (models.Profile, error) {
	p, err := s.store.GetProfile(ownerID)
	if err != nil {
		return models.Profile{OwnerID: ownerID}, nil
	}
	return *p, nil
}

// SaveProfile upserts the owner's display identity.
func (s *Service) SaveProfile(_ context.Context, p models.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	return s.store.UpsertProfile(p)
}

// ClearCache drops the local snapshot, e.g. on sign-out.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// linkTargets derives the outgoing link index entries for a note. Only the
// rich-markup variants carry backlink annotations; checklist JSON never
// does.
func linkTargets(n models.Note) []string {
	if !content.Editable(n.Type) {
		return nil
	}
	return backlink.ExtractTitles(n.Content)
}

func (s *Service) notify(kind string, n models.Note) {
	if s.pub != nil {
		s.pub.PublishNoteEvent(kind, n.ID, n.Title)
	}
}

// refreshCache rewrites the snapshot from the store's current state.
// Cache trouble is logged by the cache itself and never fails the
// operation that triggered the refresh.
func (s *Service) refreshCache(ownerID string) {
	if !s.cache.Enabled() {
		return
	}
	notes, err := s.store.ListNotes(ownerID)
	if err != nil {
		slog.Warn("noteservice: cache refresh list failed", slog.String("error", err.Error()))
		return
	}
	s.cache.Save(notes)
}
