// Package backlink implements the [[Title]] reference syntax inside note
// markup: trigger-based suggestion sessions while composing, conversion of
// typed spans into inline annotations, extraction of referenced titles for
// the link index, and click-time resolution against the note collection.
package backlink

import (
	"html"
	"regexp"
	"strings"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

// Trigger is the two-character sequence that opens a suggestion session.
const Trigger = "[["

var (
	// literalRe matches a completed [[word]] with no embedded whitespace at
	// the end of a typed span, the manual acceptance path.
	literalRe = regexp.MustCompile(`\[\[([^\]\s]+)\]\]$`)
	// annotationRe matches rendered backlink annotations in stored markup.
	annotationRe = regexp.MustCompile(`<span data-backlink>(.*?)</span>`)
	// wikilinkRe matches raw bracket references that were never converted.
	wikilinkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)
)

// Annotate wraps a display title in the backlink annotation markup. The
// rendered span carries the accent style and pointer cursor on the client;
// the stored form is just the data-backlink span.
func Annotate(title string) string {
	return "<span data-backlink>" + html.EscapeString(title) + "</span>"
}

// Candidates filters notes whose title contains query case-insensitively,
// preserving the order of the source collection. An empty query returns
// every note; no further ranking is applied.
func Candidates(notes []models.Note, query string) []models.Note {
	if query == "" {
		out := make([]models.Note, len(notes))
		copy(out, notes)
		return out
	}
	q := strings.ToLower(query)
	var out []models.Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) {
			out = append(out, n)
		}
	}
	return out
}

// Resolve finds the note whose trimmed title matches displayText
// case-insensitively. A miss is a normal outcome, not an error: backlinks
// may reference notes not yet created, renamed, or deleted.
func Resolve(notes []models.Note, displayText string) (models.Note, bool) {
	want := strings.TrimSpace(displayText)
	for _, n := range notes {
		if strings.EqualFold(strings.TrimSpace(n.Title), want) {
			return n, true
		}
	}
	return models.Note{}, false
}

// RecognizeTyped implements the manual acceptance path: when the plain text
// immediately before the caret ends in a completed [[word]] pattern, it
// returns the span to replace and the verbatim bracketed text as the
// annotation title. No title lookup happens here; resolution is deferred to
// click time. The input must be the plain typed segment only, never markup
// containing existing annotations, which keeps recognition idempotent.
func RecognizeTyped(beforeCaret string) (span, title string, ok bool) {
	m := literalRe.FindStringSubmatch(beforeCaret)
	if m == nil {
		return "", "", false
	}
	return m[0], m[1], true
}

// ExtractTitles returns the deduplicated referenced titles in stored
// markup: converted annotations plus raw [[...]] spans the user typed but
// never completed through recognition. Titles are trimmed; empty references
// are dropped.
func ExtractTitles(markup string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(raw string) {
		t := strings.TrimSpace(html.UnescapeString(raw))
		if t == "" {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, m := range annotationRe.FindAllStringSubmatch(markup, -1) {
		add(m[1])
	}
	// Strip annotations before scanning for raw brackets so converted spans
	// are not counted twice.
	rest := annotationRe.ReplaceAllString(markup, "")
	for _, m := range wikilinkRe.FindAllStringSubmatch(rest, -1) {
		add(m[1])
	}
	return out
}
