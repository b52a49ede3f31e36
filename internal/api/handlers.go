package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Archis03007/linked-notes-app/internal/apperr"
	"github.com/Archis03007/linked-notes-app/internal/auth"
	"github.com/Archis03007/linked-notes-app/internal/models"
	"github.com/Archis03007/linked-notes-app/internal/noteservice"
	"github.com/Archis03007/linked-notes-app/internal/session"
)

// Handler holds API route handlers. Note mutations go through the session
// so they pick up optimistic local state and debounced persistence; reads
// that bypass the session (search, backlinks) hit the service directly.
type Handler struct {
	sess  *session.Session
	svc   *noteservice.Service
	authp auth.Provider
}

// NewHandler creates a new Handler.
func NewHandler(sess *session.Session, svc *noteservice.Service, authp auth.Provider) *Handler {
	return &Handler{sess: sess, svc: svc, authp: authp}
}

func noteID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// SessionState handles GET /session.
//
//	@Summary		Current session snapshot for the UI chrome
//	@Tags			session
//	@Produce		json
//	@Success		200	{object}	session.State
//	@Security		BearerAuth
//	@Router			/session [get]
func (h *Handler) SessionState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sess.State())
}

// ListNotes handles GET /notes.
//
//	@Summary		List the note collection, optionally filtered
//	@Tags			notes
//	@Produce		json
//	@Param			q	query		string	false	"Substring filter over title and subtitle"
//	@Success		200	{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes := h.sess.Notes(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: notes, Total: len(notes)})
}

// CreateNote handles POST /notes.
//
//	@Summary		Create a note of a given type
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateNoteRequest	true	"Note to create"
//	@Success		201		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}
	typ := models.NoteType(req.Type)
	if !typ.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown note type"))
		return
	}
	n, err := h.sess.SaveNew(r.Context(), req.Title, req.Subtitle, typ, req.TagIDs)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUnauthenticated):
			writeJSON(w, http.StatusUnauthorized, errorBody("sign in to save notes"))
		case errors.Is(err, apperr.ErrAlreadyExists):
			writeJSON(w, http.StatusConflict, errorBody("note already exists"))
		default:
			slog.Error("create note failed", slog.String("title", req.Title), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// GetNote handles GET /notes/{id}.
//
//	@Summary		Get a single note by id
//	@Tags			notes
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	models.Note
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	n, err := h.svc.GetNote(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get note failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// EditNote handles PATCH /notes/{id}: an optimistic local edit whose
// persistence is debounced.
//
//	@Summary		Edit note fields, persisted after the coalescing window
//	@Tags			notes
//	@Accept			json
//	@Param			id		path	string			true	"Note id"
//	@Param			body	body	EditNoteRequest	true	"Fields to change"
//	@Success		204		"Edit accepted"
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [patch]
func (h *Handler) EditNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req EditNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	id := noteID(r)
	if err := h.sess.EditFields(id, req.Title, req.Subtitle, req.Content); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrConflict):
			writeJSON(w, http.StatusConflict, errorBody("checklist content changes only through item operations"))
		default:
			slog.Error("edit note failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CommitNote handles POST /notes/{id}/commit: the explicit update action,
// persisting immediately instead of waiting out the coalescing window.
//
//	@Summary		Persist a note's pending edits now
//	@Tags			notes
//	@Param			id	path	string	true	"Note id"
//	@Success		204	"Persisted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/commit [post]
func (h *Handler) CommitNote(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	if err := h.sess.Commit(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, apperr.ErrUnauthenticated):
			writeJSON(w, http.StatusUnauthorized, errorBody("sign in to save notes"))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		default:
			slog.Error("commit failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteNote handles DELETE /notes/{id}.
//
//	@Summary		Delete a note
//	@Tags			notes
//	@Param			id	path	string	true	"Note id"
//	@Success		204	"Note deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	if err := h.sess.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("delete note failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectNote handles POST /notes/{id}/select.
//
//	@Summary		Open a note for editing
//	@Tags			session
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	models.Note
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/select [post]
func (h *Handler) SelectNote(w http.ResponseWriter, r *http.Request) {
	n, err := h.sess.Select(noteID(r))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// Deselect handles POST /session/deselect.
func (h *Handler) Deselect(w http.ResponseWriter, r *http.Request) {
	h.sess.Deselect()
	w.WriteHeader(http.StatusNoContent)
}

// StartCreate handles POST /session/create.
func (h *Handler) StartCreate(w http.ResponseWriter, r *http.Request) {
	h.sess.StartCreate()
	w.WriteHeader(http.StatusNoContent)
}

// Suggest handles GET /suggest: reference candidates for the typed query.
//
//	@Summary		Notes matching a partially typed reference
//	@Tags			links
//	@Produce		json
//	@Param			q	query		string	false	"Typed query"
//	@Success		200	{object}	SuggestResponse
//	@Security		BearerAuth
//	@Router			/suggest [get]
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, SuggestResponse{Query: q, Candidates: h.sess.Suggest(q)})
}

// ActivateLink handles POST /link/activate. A miss is a 200 with found
// false, not an error.
//
//	@Summary		Follow a reference by its display text
//	@Tags			links
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ActivateLinkRequest	true	"Link text"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/link/activate [post]
func (h *Handler) ActivateLink(w http.ResponseWriter, r *http.Request) {
	var req ActivateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}
	n, found := h.sess.ActivateLink(req.Text, req.Narrow)
	writeJSON(w, http.StatusOK, map[string]any{"found": found, "note": n})
}

// Backlinks handles GET /notes/{id}/backlinks: the notes referencing this
// note's title.
//
//	@Summary		Notes whose content references this note
//	@Tags			links
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	NoteListResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/backlinks [get]
func (h *Handler) Backlinks(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	n, err := h.svc.GetNote(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	refs, err := h.svc.Backlinks(r.Context(), n.Title)
	if err != nil {
		slog.Error("backlinks failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: refs, Total: len(refs)})
}

// Search handles GET /search.
//
//	@Summary		Full-text search across notes
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), h.authp.OwnerID(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
