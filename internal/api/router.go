package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Archis03007/linked-notes-app/internal/auth"
	"github.com/Archis03007/linked-notes-app/internal/noteservice"
	"github.com/Archis03007/linked-notes-app/internal/session"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(sess *session.Session, svc *noteservice.Service, authp auth.Provider, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(sess, svc, authp)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Session chrome.
	r.Get("/session", h.SessionState)
	r.Post("/session/deselect", h.Deselect)
	r.Post("/session/create", h.StartCreate)

	// Notes.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/{id}", h.GetNote)
	r.Patch("/notes/{id}", h.EditNote)
	r.Delete("/notes/{id}", h.DeleteNote)
	r.Post("/notes/{id}/select", h.SelectNote)
	r.Post("/notes/{id}/commit", h.CommitNote)
	r.Get("/notes/{id}/backlinks", h.Backlinks)

	// Checklist rows.
	r.Post("/notes/{id}/checklist", h.AppendChecklistItem)
	r.Patch("/notes/{id}/checklist/{itemID}", h.EditChecklistItem)
	r.Delete("/notes/{id}/checklist/{itemID}", h.DeleteChecklistItem)
	r.Post("/notes/{id}/checklist/{itemID}/toggle", h.ToggleChecklistItem)
	r.Post("/notes/{id}/checklist/{itemID}/backspace", h.BackspaceChecklistItem)

	// References.
	r.Get("/suggest", h.Suggest)
	r.Post("/link/activate", h.ActivateLink)

	// Tags and associations.
	r.Get("/tags", h.ListTags)
	r.Post("/tags", h.CreateTag)
	r.Put("/tags/{id}", h.UpdateTag)
	r.Delete("/tags/{id}", h.DeleteTag)
	r.Get("/notes/{id}/tags", h.NoteTags)
	r.Put("/notes/{id}/tags", h.SetNoteTags)

	// Profile.
	r.Get("/profile", h.Profile)
	r.Put("/profile", h.SaveProfile)

	// Search.
	r.Get("/search", h.Search)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
