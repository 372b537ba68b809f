package board

import (
	"strconv"
	"time"

	"kanban-board-api/internal/models"
)

// Task is the column-local view of a stored task. IDs are strings on this side
// of the boundary and numeric on the remote side; the two conversion helpers
// below are the only place that mapping happens.
type Task struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	CreatedAt   time.Time           `json:"created_at"`
	DueDate     time.Time           `json:"due_date"`
	Owner       string              `json:"owner,omitempty"`
}

// taskFromModel converts a stored row to its column-local view. A row without
// a due date is treated as due one day after creation.
func taskFromModel(m models.Task) Task {
	due := m.CreatedAt.Add(24 * time.Hour)
	if m.DueDate != nil {
		due = *m.DueDate
	}

	return Task{
		ID:          strconv.FormatUint(m.ID, 10),
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		Priority:    m.Priority,
		CreatedAt:   m.CreatedAt,
		DueDate:     due,
		Owner:       m.Owner,
	}
}

// parseTaskID converts a local string ID back to the remote numeric key.
func parseTaskID(id string) (uint64, error) {
	return strconv.ParseUint(id, 10, 64)
}
