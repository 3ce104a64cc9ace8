package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/ritual/internal/store"
)

func ToCSV(records []store.TaskRecord, tasks map[int64]*store.Task, challenges map[int64]*store.Challenge, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Challenge", "Task", "Type", "Status", "Completed At", "Note"}); err != nil {
		return err
	}

	for _, r := range records {
		taskName := "Unknown"
		if t, ok := tasks[r.TaskID]; ok {
			taskName = t.Name
		}
		challengeName := ""
		if r.ChallengeID != nil {
			challengeName = "Unknown"
			if c, ok := challenges[*r.ChallengeID]; ok {
				challengeName = c.Name
			}
		}
		completedStr := ""
		if r.CompletedAt != nil {
			completedStr = r.CompletedAt.Local().Format(time.RFC3339)
		}

		row := []string{
			fmt.Sprintf("%d", r.ID),
			r.Date,
			challengeName,
			taskName,
			string(r.Type),
			string(r.Status),
			completedStr,
			r.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
