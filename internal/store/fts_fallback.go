//go:build !sqlite_fts5

package store

import (
	"database/sql"
	"fmt"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses a LIKE fallback on the notes table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ models.Note) error {
	// Searchable columns already live in the notes table.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled
// in) over title, subtitle, and content.
func (db *DB) Search(ownerID, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT id, title, substr(content, 1, 200)
		FROM notes
		WHERE owner_id = ? AND (title LIKE ? OR subtitle LIKE ? OR content LIKE ?)
		ORDER BY created_at DESC
		LIMIT ?
	`, ownerID, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
