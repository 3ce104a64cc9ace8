package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) AddPhoto(challengeID *int64, date, filePath, note string) (*ProgressPhoto, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO progress_photos (challenge_id, date, file_path, note, created_at) VALUES (?, ?, ?, ?, ?)`,
		challengeID, date, filePath, note, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetPhoto(id)
}

func (s *Store) GetPhoto(id int64) (*ProgressPhoto, error) {
	p := &ProgressPhoto{}
	var createdAt string
	var challengeID sql.NullInt64
	err := s.db.QueryRow(
		`SELECT id, challenge_id, date, file_path, note, created_at FROM progress_photos WHERE id = ?`, id,
	).Scan(&p.ID, &challengeID, &p.Date, &p.FilePath, &p.Note, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get photo %d: %w", id, err)
	}
	if challengeID.Valid {
		p.ChallengeID = &challengeID.Int64
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return p, nil
}

// ListPhotos returns photos newest first, optionally scoped to a challenge.
func (s *Store) ListPhotos(challengeID *int64) ([]ProgressPhoto, error) {
	query := `SELECT id, challenge_id, date, file_path, note, created_at FROM progress_photos`
	var args []any
	if challengeID != nil {
		query += ` WHERE challenge_id = ?`
		args = append(args, *challengeID)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []ProgressPhoto
	for rows.Next() {
		var p ProgressPhoto
		var createdAt string
		var cid sql.NullInt64
		if err := rows.Scan(&p.ID, &cid, &p.Date, &p.FilePath, &p.Note, &createdAt); err != nil {
			return nil, err
		}
		if cid.Valid {
			p.ChallengeID = &cid.Int64
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (s *Store) DeletePhoto(id int64) error {
	_, err := s.db.Exec(`DELETE FROM progress_photos WHERE id = ?`, id)
	return err
}
