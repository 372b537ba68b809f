package board

import (
	"sort"

	"kanban-board-api/internal/models"
)

// Column is one of the four fixed lifecycle buckets. Tasks inside a column are
// ordered; a task's Status always matches the column that holds it.
type Column struct {
	Status models.TaskStatus `json:"status"`
	Title  string            `json:"title"`
	Tasks  []Task            `json:"tasks"`
}

var columnTitles = []struct {
	status models.TaskStatus
	title  string
}{
	{models.TaskStatusBacklog, "Backlog"},
	{models.TaskStatusTodo, "To Do"},
	{models.TaskStatusInProgress, "In Progress"},
	{models.TaskStatusDone, "Done"},
}

// newColumns returns the four fixed empty columns in display order.
func newColumns() []Column {
	cols := make([]Column, len(columnTitles))
	for i, ct := range columnTitles {
		cols[i] = Column{Status: ct.status, Title: ct.title, Tasks: []Task{}}
	}
	return cols
}

// columnIndex returns the position of the column for a status, or -1.
func columnIndex(cols []Column, status models.TaskStatus) int {
	for i := range cols {
		if cols[i].Status == status {
			return i
		}
	}
	return -1
}

// findTask locates a task by ID across all columns and returns a copy of it.
func findTask(cols []Column, id string) (Task, bool) {
	for i := range cols {
		for _, t := range cols[i].Tasks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Task{}, false
}

// removeTask filters a task out of whichever column holds it.
func removeTask(cols []Column, id string) {
	for i := range cols {
		tasks := cols[i].Tasks
		for j, t := range tasks {
			if t.ID == id {
				cols[i].Tasks = append(tasks[:j:j], tasks[j+1:]...)
				return
			}
		}
	}
}

// insertTaskAt places a task at index in its status column when the index is
// within bounds, otherwise appends it to the end. A nil index always appends.
func insertTaskAt(cols []Column, task Task, index *int) {
	ci := columnIndex(cols, task.Status)
	if ci < 0 {
		return
	}

	tasks := cols[ci].Tasks
	if index == nil || *index < 0 || *index > len(tasks) {
		cols[ci].Tasks = append(tasks, task)
		return
	}

	i := *index
	tasks = append(tasks[:i:i], append([]Task{task}, tasks[i:]...)...)
	cols[ci].Tasks = tasks
}

// sortColumnByDueDate orders a column's tasks ascending by due date. The sort
// is stable so tasks sharing a due date keep their relative order.
func sortColumnByDueDate(col *Column) {
	sort.SliceStable(col.Tasks, func(i, j int) bool {
		return col.Tasks[i].DueDate.Before(col.Tasks[j].DueDate)
	})
}

// partitionTasks groups stored rows into fresh columns and sorts each column
// ascending by due date.
func partitionTasks(rows []models.Task) []Column {
	cols := newColumns()
	for _, row := range rows {
		t := taskFromModel(row)
		ci := columnIndex(cols, t.Status)
		if ci < 0 {
			continue
		}
		cols[ci].Tasks = append(cols[ci].Tasks, t)
	}
	for i := range cols {
		sortColumnByDueDate(&cols[i])
	}
	return cols
}

// cloneColumns returns an independent copy of the column set.
func cloneColumns(cols []Column) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		tasks := make([]Task, len(c.Tasks))
		copy(tasks, c.Tasks)
		out[i] = Column{Status: c.Status, Title: c.Title, Tasks: tasks}
	}
	return out
}
