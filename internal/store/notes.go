package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Archis03007/linked-notes-app/internal/apperr"
	"github.com/Archis03007/linked-notes-app/internal/models"
)

// InsertNote adds a new note, its FTS entry, and its outgoing link targets
// within a transaction.
func (db *DB) InsertNote(n models.Note, links []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO notes (id, owner_id, title, subtitle, content, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.OwnerID, n.Title, n.Subtitle, n.Content, string(n.Type), n.CreatedAt, n.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return apperr.ErrAlreadyExists
		}
		return fmt.Errorf("store: insert note: %w", err)
	}

	if err := ftsUpsert(tx, n); err != nil {
		return err
	}
	if err := replaceLinks(tx, n.ID, links); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateNote replaces a note's mutable fields, its FTS entry, and its link
// targets within a transaction.
func (db *DB) UpdateNote(n models.Note, links []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.Exec(`
		UPDATE notes SET title = ?, subtitle = ?, content = ?, type = ?, updated_at = ?
		WHERE id = ?
	`, n.Title, n.Subtitle, n.Content, string(n.Type), n.UpdatedAt, n.ID)
	if err != nil {
		return fmt.Errorf("store: update note: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}

	if err := ftsUpsert(tx, n); err != nil {
		return err
	}
	if err := replaceLinks(tx, n.ID, links); err != nil {
		return err
	}
	return tx.Commit()
}

// GetNote returns the note with the given id.
func (db *DB) GetNote(id string) (*models.Note, error) {
	var n models.Note
	var typ string
	err := db.conn.QueryRow(`
		SELECT id, owner_id, title, subtitle, content, type, created_at, updated_at
		FROM notes WHERE id = ?
	`, id).Scan(&n.ID, &n.OwnerID, &n.Title, &n.Subtitle, &n.Content, &typ, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("store: get note: %w", err)
	}
	n.Type = models.NoteType(typ)
	return &n, nil
}

// ListNotes returns all notes of an owner, newest first.
func (db *DB) ListNotes(ownerID string) ([]models.Note, error) {
	rows, err := db.conn.Query(`
		SELECT id, owner_id, title, subtitle, content, type, created_at, updated_at
		FROM notes WHERE owner_id = ?
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var n models.Note
		var typ string
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Subtitle, &n.Content, &typ, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.Type = models.NoteType(typ)
		out = append(out, n)
	}
	return out, rows.Err()
}

// DeleteNote removes a note, its FTS entry, links, and tag associations.
func (db *DB) DeleteNote(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	_, _ = tx.Exec(`DELETE FROM links WHERE source_id = ?`, id)
	_, _ = tx.Exec(`DELETE FROM note_tags WHERE note_id = ?`, id)
	res, err := tx.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}
	return tx.Commit()
}

// Backlinks returns the notes whose content references the given title.
// Matching is case-insensitive via the links table collation.
func (db *DB) Backlinks(title string) ([]models.Note, error) {
	rows, err := db.conn.Query(`
		SELECT n.id, n.owner_id, n.title, n.subtitle, n.content, n.type, n.created_at, n.updated_at
		FROM links l JOIN notes n ON n.id = l.source_id
		WHERE l.target_title = ?
		ORDER BY n.created_at DESC
	`, strings.TrimSpace(title))
	if err != nil {
		return nil, fmt.Errorf("store: backlinks: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var n models.Note
		var typ string
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Subtitle, &n.Content, &typ, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.Type = models.NoteType(typ)
		out = append(out, n)
	}
	return out, rows.Err()
}

// replaceLinks deletes a note's outgoing link rows and bulk inserts the
// current targets.
func replaceLinks(tx *sql.Tx, sourceID string, targets []string) error {
	_, _ = tx.Exec(`DELETE FROM links WHERE source_id = ?`, sourceID)
	if len(targets) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO links (source_id, target_title) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare link insert: %w", err)
	}
	defer stmt.Close()
	for _, t := range targets {
		if _, err := stmt.Exec(sourceID, t); err != nil {
			return fmt.Errorf("store: insert link: %w", err)
		}
	}
	return nil
}
