package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateChallenge(name, description string, durationDays int, startDate, color string) (*Challenge, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO challenges (name, description, duration_days, start_date, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, description, durationDays, startDate, color, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert challenge: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetChallenge(id)
}

func (s *Store) GetChallenge(id int64) (*Challenge, error) {
	c := &Challenge{}
	var createdAt, updatedAt string
	var archived int
	err := s.db.QueryRow(
		`SELECT id, name, description, duration_days, start_date, color, archived, created_at, updated_at
		 FROM challenges WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.DurationDays, &c.StartDate, &c.Color, &archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get challenge %d: %w", id, err)
	}
	c.Archived = archived == 1
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return c, nil
}

func (s *Store) ListChallenges(includeArchived bool) ([]Challenge, error) {
	query := `SELECT id, name, description, duration_days, start_date, color, archived, created_at, updated_at FROM challenges`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()

	var challenges []Challenge
	for rows.Next() {
		var c Challenge
		var createdAt, updatedAt string
		var archived int
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DurationDays, &c.StartDate, &c.Color, &archived, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		c.Archived = archived == 1
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func (s *Store) UpdateChallenge(id int64, name, description string, durationDays int, color string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE challenges SET name = ?, description = ?, duration_days = ?, color = ?, updated_at = ? WHERE id = ?`,
		name, description, durationDays, color, now, id,
	)
	return err
}

func (s *Store) ArchiveChallenge(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE challenges SET archived = 1, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}

// ChallengeDay returns which day of the challenge the given date is,
// 1-based. Dates before the start date return 0.
func ChallengeDay(c *Challenge, date string) int {
	start, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return 0
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	days := int(d.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 0
	}
	return days
}
