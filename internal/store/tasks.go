package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) CreateTask(challengeID *int64, name string, taskType TaskType, target string) (*Task, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (challenge_id, name, type, target, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		challengeID, name, string(taskType), target, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t := &Task{}
	var createdAt, updatedAt, taskType string
	var challengeID sql.NullInt64
	var archived int
	err := s.db.QueryRow(
		`SELECT id, challenge_id, name, type, target, archived, created_at, updated_at FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &challengeID, &t.Name, &taskType, &t.Target, &archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	if challengeID.Valid {
		t.ChallengeID = &challengeID.Int64
	}
	t.Type = TaskType(taskType)
	t.Archived = archived == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

// ListTasks returns tasks for a challenge, or standalone tasks when
// challengeID is nil.
func (s *Store) ListTasks(challengeID *int64, includeArchived bool) ([]Task, error) {
	query := `SELECT id, challenge_id, name, type, target, archived, created_at, updated_at FROM tasks`
	var args []any
	if challengeID != nil {
		query += ` WHERE challenge_id = ?`
		args = append(args, *challengeID)
	} else {
		query += ` WHERE challenge_id IS NULL`
	}
	if !includeArchived {
		query += ` AND archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListAllTasks returns every task regardless of challenge.
func (s *Store) ListAllTasks(includeArchived bool) ([]Task, error) {
	query := `SELECT id, challenge_id, name, type, target, archived, created_at, updated_at FROM tasks`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	var tasks []Task
	for rows.Next() {
		var t Task
		var createdAt, updatedAt, taskType string
		var challengeID sql.NullInt64
		var archived int
		if err := rows.Scan(&t.ID, &challengeID, &t.Name, &taskType, &t.Target, &archived, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if challengeID.Valid {
			t.ChallengeID = &challengeID.Int64
		}
		t.Type = TaskType(taskType)
		t.Archived = archived == 1
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(id int64, name string, taskType TaskType, target string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET name = ?, type = ?, target = ?, updated_at = ? WHERE id = ?`,
		name, string(taskType), target, now, id,
	)
	return err
}

func (s *Store) ArchiveTask(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET archived = 1, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}
