package store

import "time"

// Status is the completion state of a single day's task record.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusMissed     Status = "missed"
	StatusFailed     Status = "failed"
)

// TaskType is a closed category label used for breakdown aggregation.
type TaskType string

const (
	TypeWorkout    TaskType = "workout"
	TypeWater      TaskType = "water"
	TypeReading    TaskType = "reading"
	TypePhoto      TaskType = "photo"
	TypeMeditation TaskType = "meditation"
	TypeCustom     TaskType = "custom"
)

// TaskTypes lists every valid task type, in display order.
var TaskTypes = []TaskType{TypeWorkout, TypeWater, TypeReading, TypePhoto, TypeMeditation, TypeCustom}

type Challenge struct {
	ID           int64
	Name         string
	Description  string
	DurationDays int
	StartDate    string // YYYY-MM-DD
	Color        string
	Archived     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Task is a recurring task definition. ChallengeID is nil for standalone habits.
type Task struct {
	ID          int64
	ChallengeID *int64
	Name        string
	Type        TaskType
	Target      string // e.g. "2L", "10 pages"
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskRecord is one day's instance of a task. Date is always day-normalized
// to YYYY-MM-DD; time of day lives in CompletedAt only.
type TaskRecord struct {
	ID          int64
	TaskID      int64
	ChallengeID *int64
	Type        TaskType
	Date        string // YYYY-MM-DD
	Status      Status
	Note        string
	CompletedAt *time.Time
	CreatedAt   time.Time
}

type ProgressPhoto struct {
	ID          int64
	ChallengeID *int64
	Date        string // YYYY-MM-DD
	FilePath    string
	Note        string
	CreatedAt   time.Time
}

type Setting struct {
	Key   string
	Value string
}

// RecordFilter is used to filter task records in queries.
type RecordFilter struct {
	ChallengeID *int64
	TaskID      *int64
	Status      *Status
	From        *string // YYYY-MM-DD inclusive
	To          *string // YYYY-MM-DD inclusive
	Limit       int
}

// DayKey normalizes a time to its calendar-day key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
