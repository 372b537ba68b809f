package dto

import (
	"kanban-board-api/internal/board"
)

// ColumnsResponse is the board view payload: the four lifecycle columns with
// their ordered tasks. board.Task already carries string IDs, so columns
// serialize without further conversion.
type ColumnsResponse struct {
	Columns []board.Column `json:"columns"`
}

// TaskResponse wraps a single column-local task.
type TaskResponse struct {
	Task board.Task `json:"task"`
}
