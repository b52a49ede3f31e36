// Package auth exposes the session's view of the authentication
// collaborator: whether a user is present and who they are. The mechanism
// (token validation) lives in the API middleware.
package auth

// Provider reports the current user identity, or the absence of one.
type Provider interface {
	// Present reports whether an authenticated user exists.
	Present() bool
	// OwnerID returns the stable identifier scoping notes, tags, and the
	// profile. Empty when no user is present.
	OwnerID() string
}

// Static is a config-backed provider for the single-user deployment model:
// the authenticated identity is fixed at startup.
type Static struct {
	ID string
}

// Present reports whether an owner id is configured.
func (s Static) Present() bool { return s.ID != "" }

// OwnerID returns the configured owner id.
func (s Static) OwnerID() string { return s.ID }
