package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/ritual/internal/store"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Records    []jsonRecord `json:"records"`
}

type jsonRecord struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Challenge   string `json:"challenge,omitempty"`
	ChallengeID *int64 `json:"challenge_id,omitempty"`
	Task        string `json:"task"`
	TaskID      int64  `json:"task_id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at,omitempty"`
	Note        string `json:"note,omitempty"`
}

func ToJSON(records []store.TaskRecord, tasks map[int64]*store.Task, challenges map[int64]*store.Challenge, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
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

		export.Records = append(export.Records, jsonRecord{
			ID:          r.ID,
			Date:        r.Date,
			Challenge:   challengeName,
			ChallengeID: r.ChallengeID,
			Task:        taskName,
			TaskID:      r.TaskID,
			Type:        string(r.Type),
			Status:      string(r.Status),
			CompletedAt: completedStr,
			Note:        r.Note,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
