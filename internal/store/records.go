package store

import (
	"database/sql"
	"fmt"
	"time"
)

// GenerateDay materializes a not_started record for every active task on the
// given date. Already-existing records are left untouched, so calling it on
// every view load is safe. Returns the number of records created.
func (s *Store) GenerateDay(date string) (int, error) {
	tasks, err := s.ListAllTasks(false)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created := 0
	for _, t := range tasks {
		res, err := s.db.Exec(
			`INSERT OR IGNORE INTO task_records (task_id, challenge_id, type, date, status, created_at)
			 VALUES (?, ?, ?, ?, 'not_started', ?)`,
			t.ID, t.ChallengeID, string(t.Type), date, now,
		)
		if err != nil {
			return created, fmt.Errorf("generate record for task %d: %w", t.ID, err)
		}
		n, _ := res.RowsAffected()
		created += int(n)
	}
	return created, nil
}

// SetRecordStatus updates a record's status. Completing a record stamps
// CompletedAt; any other status clears it.
func (s *Store) SetRecordStatus(id int64, status Status) error {
	if status == StatusCompleted {
		now := time.Now().UTC().Format(time.RFC3339)
		_, err := s.db.Exec(
			`UPDATE task_records SET status = ?, completed_at = ? WHERE id = ?`,
			string(status), now, id,
		)
		return err
	}
	_, err := s.db.Exec(
		`UPDATE task_records SET status = ?, completed_at = NULL WHERE id = ?`,
		string(status), id,
	)
	return err
}

func (s *Store) SetRecordNote(id int64, note string) error {
	_, err := s.db.Exec(`UPDATE task_records SET note = ? WHERE id = ?`, note, id)
	return err
}

func (s *Store) GetRecord(id int64) (*TaskRecord, error) {
	r := &TaskRecord{}
	var createdAt, recType, status string
	var completedAt sql.NullString
	var challengeID sql.NullInt64

	err := s.db.QueryRow(
		`SELECT id, task_id, challenge_id, type, date, status, note, completed_at, created_at
		 FROM task_records WHERE id = ?`, id,
	).Scan(&r.ID, &r.TaskID, &challengeID, &recType, &r.Date, &status, &r.Note, &completedAt, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", id, err)
	}
	if challengeID.Valid {
		r.ChallengeID = &challengeID.Int64
	}
	r.Type = TaskType(recType)
	r.Status = Status(status)
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		r.CompletedAt = &t
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return r, nil
}

func (s *Store) ListRecords(f RecordFilter) ([]TaskRecord, error) {
	query := `SELECT id, task_id, challenge_id, type, date, status, note, completed_at, created_at FROM task_records WHERE 1=1`
	var args []any

	if f.ChallengeID != nil {
		query += ` AND challenge_id = ?`
		args = append(args, *f.ChallengeID)
	}
	if f.TaskID != nil {
		query += ` AND task_id = ?`
		args = append(args, *f.TaskID)
	}
	if f.Status != nil {
		query += ` AND status = ?`
		args = append(args, string(*f.Status))
	}
	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, *f.From)
	}
	if f.To != nil {
		query += ` AND date <= ?`
		args = append(args, *f.To)
	}
	query += ` ORDER BY date DESC, id`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []TaskRecord
	for rows.Next() {
		var r TaskRecord
		var createdAt, recType, status string
		var completedAt sql.NullString
		var challengeID sql.NullInt64
		if err := rows.Scan(&r.ID, &r.TaskID, &challengeID, &recType, &r.Date, &status, &r.Note, &completedAt, &createdAt); err != nil {
			return nil, err
		}
		if challengeID.Valid {
			r.ChallengeID = &challengeID.Int64
		}
		r.Type = TaskType(recType)
		r.Status = Status(status)
		if completedAt.Valid {
			t, _ := time.Parse(time.RFC3339, completedAt.String)
			r.CompletedAt = &t
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListDayRecords returns all records for a single date.
func (s *Store) ListDayRecords(date string) ([]TaskRecord, error) {
	from, to := date, date
	return s.ListRecords(RecordFilter{From: &from, To: &to})
}

// EarliestRecordDate returns the date of the oldest record, or "" when the
// store is empty.
func (s *Store) EarliestRecordDate() (string, error) {
	var date sql.NullString
	err := s.db.QueryRow(`SELECT MIN(date) FROM task_records`).Scan(&date)
	if err != nil {
		return "", fmt.Errorf("earliest record date: %w", err)
	}
	if !date.Valid {
		return "", nil
	}
	return date.String, nil
}
