package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Archis03007/linked-notes-app/internal/apperr"
	"github.com/Archis03007/linked-notes-app/internal/models"
)

// InsertTag adds a new tag.
func (db *DB) InsertTag(t models.Tag) error {
	_, err := db.conn.Exec(`
		INSERT INTO tags (id, owner_id, name, color, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.ID, t.OwnerID, t.Name, t.Color, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert tag: %w", err)
	}
	return nil
}

// UpdateTag replaces a tag's name and color.
func (db *DB) UpdateTag(t models.Tag) error {
	res, err := db.conn.Exec(`UPDATE tags SET name = ?, color = ? WHERE id = ?`, t.Name, t.Color, t.ID)
	if err != nil {
		return fmt.Errorf("store: update tag: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteTag removes a tag and all its note associations.
func (db *DB) DeleteTag(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, _ = tx.Exec(`DELETE FROM note_tags WHERE tag_id = ?`, id)
	res, err := tx.Exec(`DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete tag: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}
	return tx.Commit()
}

// ListTags returns all tags of an owner in creation order.
func (db *DB) ListTags(ownerID string) ([]models.Tag, error) {
	rows, err := db.conn.Query(`
		SELECT id, owner_id, name, color, created_at
		FROM tags WHERE owner_id = ?
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("store: list tags: %w", err)
	}
	defer rows.Close()

	var out []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ReplaceNoteTags replaces a note's tag set: delete all, then bulk insert.
// Saves carry the full selected set, never a diff.
func (db *DB) ReplaceNoteTags(noteID string, tagIDs []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, _ = tx.Exec(`DELETE FROM note_tags WHERE note_id = ?`, noteID)
	if len(tagIDs) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare note_tag insert: %w", err)
		}
		defer stmt.Close()
		for _, id := range tagIDs {
			if _, err := stmt.Exec(noteID, id); err != nil {
				return fmt.Errorf("store: insert note_tag: %w", err)
			}
		}
	}
	return tx.Commit()
}

// NoteTagIDs returns the ids of the tags associated with a note.
func (db *DB) NoteTagIDs(noteID string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT tag_id FROM note_tags WHERE note_id = ?`, noteID)
	if err != nil {
		return nil, fmt.Errorf("store: note tag ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// UpsertProfile inserts or replaces the owner's profile record.
func (db *DB) UpsertProfile(p models.Profile) error {
	_, err := db.conn.Exec(`
		INSERT INTO profiles (owner_id, display_name, email, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			display_name = excluded.display_name,
			email        = excluded.email,
			updated_at   = excluded.updated_at
	`, p.OwnerID, p.DisplayName, p.Email, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: upsert profile: %w", err)
	}
	return nil
}

// GetProfile returns the owner's profile.
func (db *DB) GetProfile(ownerID string) (*models.Profile, error) {
	var p models.Profile
	err := db.conn.QueryRow(`
		SELECT owner_id, display_name, email, updated_at
		FROM profiles WHERE owner_id = ?
	`, ownerID).Scan(&p.OwnerID, &p.DisplayName, &p.Email, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("store: get profile: %w", err)
	}
	return &p, nil
}
