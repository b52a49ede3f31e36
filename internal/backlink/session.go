package backlink

import (
	"strings"
	"unicode"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

// Lookup supplies the current note collection for candidate filtering. The
// session only reads through it; the collection stays owned by its session
// owner.
type Lookup func() []models.Note

// Suggestion is the pure output of one recognition step: the query consumed
// from the typed span and the candidate notes for it. Rendering the list is
// the caller's concern.
type Suggestion struct {
	Query      string
	Candidates []models.Note
}

// Replacement describes the rewrite produced by accepting a candidate: the
// in-progress "[[query" span to remove and the annotation markup to insert
// in its place.
type Replacement struct {
	Span       string
	Annotation string
}

// Session is one inline suggestion run, opened when the editor sees the
// [[ trigger at the cursor and closed by acceptance or cancellation. It is
// single-shot: a closed session is never reused.
type Session struct {
	lookup Lookup
	typed  []rune
	open   bool
}

// NewSession opens a suggestion session anchored at the trigger position.
func NewSession(lookup Lookup) *Session {
	return &Session{lookup: lookup, open: true}
}

// Open reports whether the session is still live.
func (s *Session) Open() bool { return s.open }

// Input feeds one typed rune. Whitespace or a closing bracket pair ends the
// query; anything else extends it.
func (s *Session) Input(r rune) {
	if !s.open {
		return
	}
	if unicode.IsSpace(r) {
		s.open = false
		return
	}
	s.typed = append(s.typed, r)
	if strings.HasSuffix(string(s.typed), "]]") {
		s.open = false
	}
}

// Backspace removes the last typed rune. Deleting back past the trigger
// cancels the session without inserting anything.
func (s *Session) Backspace() {
	if !s.open {
		return
	}
	if len(s.typed) == 0 {
		s.open = false
		return
	}
	s.typed = s.typed[:len(s.typed)-1]
}

// Cancel closes the session with no insertion, e.g. on focus loss.
func (s *Session) Cancel() { s.open = false }

// Query returns the live query: the runes typed after the trigger, up to
// any terminator.
func (s *Session) Query() string {
	q := string(s.typed)
	q = strings.TrimSuffix(q, "]]")
	if i := strings.IndexFunc(q, unicode.IsSpace); i >= 0 {
		q = q[:i]
	}
	return q
}

// Suggest returns the current query and its candidates from the collection.
func (s *Session) Suggest() Suggestion {
	return Suggestion{
		Query:      s.Query(),
		Candidates: Candidates(s.lookup(), s.Query()),
	}
}

// Accept closes the session and returns the rewrite for the chosen
// candidate: the typed "[[query" span is replaced by a single annotation
// whose display text is the candidate's exact stored title.
func (s *Session) Accept(candidate models.Note) Replacement {
	s.open = false
	return Replacement{
		Span:       Trigger + string(s.typed),
		Annotation: Annotate(candidate.Title),
	}
}
