//go:build sqlite_fts5

package store

import (
	"database/sql"
	"fmt"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			id UNINDEXED,
			owner_id UNINDEXED,
			title,
			subtitle,
			content,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, n models.Note) error {
	_, _ = tx.Exec(`DELETE FROM notes_fts WHERE id = ?`, n.ID)
	_, err := tx.Exec(`INSERT INTO notes_fts (id, owner_id, title, subtitle, content) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.OwnerID, n.Title, n.Subtitle, n.Content)
	if err != nil {
		return fmt.Errorf("store: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, id string) {
	_, _ = tx.Exec(`DELETE FROM notes_fts WHERE id = ?`, id)
}

// Search performs an FTS5 full-text search scoped to one owner.
func (db *DB) Search(ownerID, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id,
		       title,
		       snippet(notes_fts, 4, '<b>', '</b>', '...', 64)
		FROM notes_fts
		WHERE notes_fts MATCH ? AND owner_id = ?
		ORDER BY rank
		LIMIT ?
	`, query, ownerID, limit)
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
