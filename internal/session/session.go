// Package session implements the editing session: it owns the in-memory
// note collection, the open editor surface, and the per-note debounced
// persistence pipeline. Child components only ever read the collection
// through lookups; every mutation funnels through here.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Archis03007/linked-notes-app/internal/apperr"
	"github.com/Archis03007/linked-notes-app/internal/auth"
	"github.com/Archis03007/linked-notes-app/internal/backlink"
	"github.com/Archis03007/linked-notes-app/internal/cache"
	"github.com/Archis03007/linked-notes-app/internal/content"
	"github.com/Archis03007/linked-notes-app/internal/editor"
	"github.com/Archis03007/linked-notes-app/internal/models"
	"github.com/Archis03007/linked-notes-app/internal/noteservice"
	"github.com/Archis03007/linked-notes-app/internal/sse"
)

// Publisher broadcasts session signals (selection, link misses, sidebar
// collapse requests, save failures) to the UI. The SSE broker implements
// it.
type Publisher interface {
	Publish(event sse.Event)
}

// State is a read-only snapshot of the session for the UI chrome.
type State struct {
	SelectedID  string `json:"selected_id"`
	Creating    bool   `json:"creating"`
	Placeholder string `json:"placeholder"`
	Editable    bool   `json:"editable"`
}

// Session owns one user's editing state.
type Session struct {
	svc   *noteservice.Service
	cache *cache.Cache
	pub   Publisher
	authp auth.Provider

	mu       sync.Mutex
	notes    []models.Note
	selected string
	creating bool
	adapter  *editor.Adapter
	dirty    map[string]bool
	tagSets  map[string][]string

	deb *debouncer
}

// New creates a session for the authenticated owner. debounce is the
// coalescing window for persistence writes.
func New(svc *noteservice.Service, c *cache.Cache, pub Publisher, authp auth.Provider, debounce time.Duration) *Session {
	if c == nil {
		c = cache.New("")
	}
	s := &Session{
		svc:     svc,
		cache:   c,
		pub:     pub,
		authp:   authp,
		dirty:   make(map[string]bool),
		tagSets: make(map[string][]string),
	}
	s.adapter = editor.New(func(noteID, _ string) {
		// Local edits are already applied to the collection; the adapter
		// emission only arms the persistence timer.
		s.deb.Schedule(noteID)
	})
	s.deb = newDebouncer(debounce, s.flush)
	return s
}

// Load populates the collection: the cached snapshot first for an instant
// render, then the store's authoritative list.
func (s *Session) Load(ctx context.Context) error {
	if cached, _ := s.cache.Load(); cached != nil {
		s.mu.Lock()
		s.notes = cached
		s.mu.Unlock()
	}
	if !s.authp.Present() {
		return apperr.ErrUnauthenticated
	}
	notes, err := s.svc.ListNotes(ctx, s.authp.OwnerID())
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
	s.cache.Save(notes)
	return nil
}

// Notes returns a copy of the collection, optionally filtered by a
// case-insensitive substring over title and subtitle.
func (s *Session) Notes(query string) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Note, 0, len(s.notes))
	q := strings.ToLower(query)
	for _, n := range s.notes {
		if q != "" &&
			!strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Subtitle), q) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Suggest returns backlink candidates for a query, in collection order.
func (s *Session) Suggest(query string) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return backlink.Candidates(s.notes, query)
}

// State returns the UI snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		SelectedID:  s.selected,
		Creating:    s.creating,
		Placeholder: s.adapter.Placeholder(),
		Editable:    s.adapter.Editable(),
	}
}

// Select opens a note for editing. Pending writes for the previously open
// note are flushed so navigation never strands an edit behind a dead
// timer.
func (s *Session) Select(id string) (*models.Note, error) {
	s.mu.Lock()
	n, ok := s.find(id)
	if !ok {
		s.mu.Unlock()
		return nil, apperr.ErrNotFound
	}
	prev := s.selected
	s.selected = id
	s.creating = false
	s.adapter.Open(n)
	s.mu.Unlock()

	if prev != "" && prev != id {
		s.deb.FlushNow(prev)
	}
	return &n, nil
}

// Deselect closes the editing surface, flushing any pending write first.
func (s *Session) Deselect() {
	s.mu.Lock()
	prev := s.selected
	s.selected = ""
	s.adapter.Close()
	s.mu.Unlock()
	if prev != "" {
		s.deb.FlushNow(prev)
	}
}

// StartCreate switches to the new-note form.
func (s *Session) StartCreate() {
	s.Deselect()
	s.mu.Lock()
	s.creating = true
	s.mu.Unlock()
}

// SaveNew persists a new note and selects it. Missing authentication
// blocks the save entirely; nothing is written.
func (s *Session) SaveNew(ctx context.Context, title, subtitle string, typ models.NoteType, tagIDs []string) (*models.Note, error) {
	if !s.authp.Present() {
		return nil, apperr.ErrUnauthenticated
	}
	n, err := s.svc.CreateNote(ctx, s.authp.OwnerID(), title, subtitle, typ, tagIDs)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.notes = append([]models.Note{*n}, s.notes...)
	s.creating = false
	s.selected = n.ID
	s.adapter.Open(*n)
	s.mu.Unlock()
	return n, nil
}

// EditFields applies an optimistic local edit to a note's title, subtitle,
// or content (nil pointers leave a field untouched) and arms the debounced
// persist for that id. Content edits are refused for checklist notes;
// their content changes only through the checklist operations.
func (s *Session) EditFields(id string, title, subtitle, body *string) error {
	s.mu.Lock()
	idx, ok := s.findIndex(id)
	if !ok {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}
	n := &s.notes[idx]
	if title != nil {
		n.Title = *title
	}
	if subtitle != nil {
		n.Subtitle = *subtitle
	}
	if body != nil {
		if !content.Editable(n.Type) {
			s.mu.Unlock()
			return apperr.ErrConflict
		}
		n.Content = *body
		if s.selected == id {
			s.adapter.ApplyFetched(id, *body)
		}
	}
	s.dirty[id] = true
	s.mu.Unlock()

	s.deb.Schedule(id)
	return nil
}

// SetTags records a note's full selected tag set and arms the debounced
// association write. Saves always carry the complete set.
func (s *Session) SetTags(id string, tagIDs []string) {
	cp := make([]string, len(tagIDs))
	copy(cp, tagIDs)
	s.mu.Lock()
	s.tagSets[id] = cp
	s.mu.Unlock()
	s.deb.Schedule(id)
}

// Commit persists a note immediately (the explicit update action). Local
// state stands whether or not the write succeeds, and the commit may be
// retried after a failure.
func (s *Session) Commit(ctx context.Context, id string) error {
	if !s.authp.Present() {
		return apperr.ErrUnauthenticated
	}
	s.deb.Cancel(id)
	n, tags, ok := s.pendingState(id)
	if !ok {
		return apperr.ErrNotFound
	}
	if err := s.svc.UpdateNote(ctx, n); err != nil {
		return err
	}
	if tags != nil {
		if err := s.svc.ReplaceNoteTags(ctx, id, tags); err != nil {
			return err
		}
	}
	s.mu.Lock()
	delete(s.dirty, id)
	delete(s.tagSets, id)
	s.mu.Unlock()
	return nil
}

// Delete removes a note everywhere: store, collection, cache, and any
// pending write.
func (s *Session) Delete(ctx context.Context, id string) error {
	if !s.authp.Present() {
		return apperr.ErrUnauthenticated
	}
	s.deb.Cancel(id)
	if err := s.svc.DeleteNote(ctx, s.authp.OwnerID(), id); err != nil {
		return err
	}
	s.mu.Lock()
	if idx, ok := s.findIndex(id); ok {
		s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	}
	delete(s.dirty, id)
	delete(s.tagSets, id)
	if s.selected == id {
		s.selected = ""
		s.adapter.Close()
	}
	s.mu.Unlock()
	return nil
}

// ActivateLink dispatches a backlink activation: the display text resolves
// case-insensitively against the collection. A hit selects the note (and
// asks the chrome to collapse on narrow viewports); a miss is a normal
// outcome surfaced as a notice, never as an error, and never creates a
// note.
func (s *Session) ActivateLink(displayText string, narrowViewport bool) (*models.Note, bool) {
	s.mu.Lock()
	n, found := backlink.Resolve(s.notes, displayText)
	s.mu.Unlock()

	if !found {
		slog.Info("session: backlink target not found", slog.String("title", strings.TrimSpace(displayText)))
		s.publish(sse.Event{Type: "link.notfound", Data: map[string]string{
			"title": strings.TrimSpace(displayText),
		}})
		return nil, false
	}

	selected, err := s.Select(n.ID)
	if err != nil {
		return nil, false
	}
	s.publish(sse.Event{Type: "session.selected", Data: map[string]string{"id": n.ID}})
	if narrowViewport {
		s.publish(sse.Event{Type: "sidebar.collapse", Data: map[string]string{}})
	}
	return selected, true
}

// SetDebounce retunes the coalescing window for future edits. Pending
// timers keep the window they were armed with.
func (s *Session) SetDebounce(d time.Duration) {
	s.deb.SetDelay(d)
}

// Close cancels every pending persistence timer. Called on shutdown so no
// stray write fires after the session is gone.
func (s *Session) Close() {
	s.deb.CancelAll()
}

// flush is the debounce callback: it persists the latest state for one
// note id. Failures are surfaced as a signal and leave local state (and
// the dirty flag) intact so the save can be retried.
func (s *Session) flush(noteID string) {
	if !s.authp.Present() {
		s.publish(sse.Event{Type: "save.failed", Data: map[string]string{
			"id": noteID, "error": apperr.ErrUnauthenticated.Error(),
		}})
		return
	}
	n, tags, ok := s.pendingState(noteID)
	if !ok {
		return
	}
	ctx := context.Background()
	if err := s.svc.UpdateNote(ctx, n); err != nil {
		slog.Warn("session: debounced save failed",
			slog.String("id", noteID), slog.String("error", err.Error()))
		s.publish(sse.Event{Type: "save.failed", Data: map[string]string{
			"id": noteID, "error": err.Error(),
		}})
		return
	}
	if tags != nil {
		if err := s.svc.ReplaceNoteTags(ctx, noteID, tags); err != nil {
			slog.Warn("session: tag save failed",
				slog.String("id", noteID), slog.String("error", err.Error()))
			s.publish(sse.Event{Type: "save.failed", Data: map[string]string{
				"id": noteID, "error": err.Error(),
			}})
			return
		}
	}
	s.mu.Lock()
	delete(s.dirty, noteID)
	delete(s.tagSets, noteID)
	s.mu.Unlock()
}

// pendingState snapshots the latest note fields and tag set for a flush.
func (s *Session) pendingState(noteID string) (models.Note, []string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.find(noteID)
	if !ok {
		return models.Note{}, nil, false
	}
	return n, s.tagSets[noteID], true
}

// find returns a copy of the note with the given id. Callers hold mu.
func (s *Session) find(id string) (models.Note, bool) {
	if idx, ok := s.findIndex(id); ok {
		return s.notes[idx], true
	}
	return models.Note{}, false
}

func (s *Session) findIndex(id string) (int, bool) {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Session) publish(event sse.Event) {
	if s.pub != nil {
		s.pub.Publish(event)
	}
}
