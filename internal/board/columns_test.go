package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-board-api/internal/models"
)

func day(n int) time.Time {
	return time.Date(2025, 1, n, 0, 0, 0, 0, time.UTC)
}

func makeTask(id string, status models.TaskStatus, due time.Time) Task {
	return Task{
		ID:       id,
		Title:    "task " + id,
		Status:   status,
		Priority: models.TaskPriorityMedium,
		DueDate:  due,
	}
}

func TestNewColumns(t *testing.T) {
	cols := newColumns()

	require.Len(t, cols, 4)
	assert.Equal(t, models.TaskStatusBacklog, cols[0].Status)
	assert.Equal(t, models.TaskStatusTodo, cols[1].Status)
	assert.Equal(t, models.TaskStatusInProgress, cols[2].Status)
	assert.Equal(t, models.TaskStatusDone, cols[3].Status)
	for _, col := range cols {
		assert.Empty(t, col.Tasks)
		assert.NotNil(t, col.Tasks)
	}
}

func TestInsertTaskAt(t *testing.T) {
	idx := func(i int) *int { return &i }

	tests := []struct {
		name      string
		existing  []string
		index     *int
		wantOrder []string
	}{
		{"nil index appends", []string{"1", "2"}, nil, []string{"1", "2", "9"}},
		{"zero index prepends", []string{"1", "2"}, idx(0), []string{"9", "1", "2"}},
		{"middle index", []string{"1", "2"}, idx(1), []string{"1", "9", "2"}},
		{"index equal to length appends", []string{"1", "2"}, idx(2), []string{"1", "2", "9"}},
		{"index out of range appends", []string{"1", "2"}, idx(5), []string{"1", "2", "9"}},
		{"negative index appends", []string{"1", "2"}, idx(-1), []string{"1", "2", "9"}},
		{"empty column", nil, idx(0), []string{"9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := newColumns()
			ci := columnIndex(cols, models.TaskStatusTodo)
			for _, id := range tt.existing {
				cols[ci].Tasks = append(cols[ci].Tasks, makeTask(id, models.TaskStatusTodo, day(1)))
			}

			insertTaskAt(cols, makeTask("9", models.TaskStatusTodo, day(1)), tt.index)

			got := make([]string, len(cols[ci].Tasks))
			for i, task := range cols[ci].Tasks {
				got[i] = task.ID
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestInsertTaskAtPreservesOtherTasksOrder(t *testing.T) {
	cols := newColumns()
	ci := columnIndex(cols, models.TaskStatusDone)
	for _, id := range []string{"a", "b", "c", "d"} {
		cols[ci].Tasks = append(cols[ci].Tasks, makeTask(id, models.TaskStatusDone, day(1)))
	}

	i := 2
	insertTaskAt(cols, makeTask("x", models.TaskStatusDone, day(1)), &i)

	got := make([]string, 0, len(cols[ci].Tasks))
	for _, task := range cols[ci].Tasks {
		if task.ID != "x" {
			got = append(got, task.ID)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, "x", cols[ci].Tasks[2].ID)
}

func TestRemoveTask(t *testing.T) {
	cols := newColumns()
	insertTaskAt(cols, makeTask("1", models.TaskStatusTodo, day(1)), nil)
	insertTaskAt(cols, makeTask("2", models.TaskStatusTodo, day(2)), nil)
	insertTaskAt(cols, makeTask("3", models.TaskStatusDone, day(3)), nil)

	removeTask(cols, "2")

	_, found := findTask(cols, "2")
	assert.False(t, found)

	ci := columnIndex(cols, models.TaskStatusTodo)
	require.Len(t, cols[ci].Tasks, 1)
	assert.Equal(t, "1", cols[ci].Tasks[0].ID)

	// Other columns untouched
	ci = columnIndex(cols, models.TaskStatusDone)
	require.Len(t, cols[ci].Tasks, 1)
}

func TestFindTaskReturnsFullRecord(t *testing.T) {
	cols := newColumns()
	task := makeTask("7", models.TaskStatusInProgress, day(4))
	task.Description = "details to preserve"
	task.Owner = "alice"
	insertTaskAt(cols, task, nil)

	got, found := findTask(cols, "7")
	require.True(t, found)
	assert.Equal(t, "details to preserve", got.Description)
	assert.Equal(t, "alice", got.Owner)
}

func TestPartitionTasksSortsByDueDate(t *testing.T) {
	due3, due1, due2 := day(3), day(1), day(2)
	rows := []models.Task{
		{ID: 1, Title: "late", Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, DueDate: &due3},
		{ID: 2, Title: "early", Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, DueDate: &due1},
		{ID: 3, Title: "middle", Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, DueDate: &due2},
		{ID: 4, Title: "done", Status: models.TaskStatusDone, Priority: models.TaskPriorityLow, DueDate: &due1},
	}

	cols := partitionTasks(rows)

	ci := columnIndex(cols, models.TaskStatusTodo)
	require.Len(t, cols[ci].Tasks, 3)
	assert.Equal(t, []string{"2", "3", "1"}, []string{
		cols[ci].Tasks[0].ID, cols[ci].Tasks[1].ID, cols[ci].Tasks[2].ID,
	})

	ci = columnIndex(cols, models.TaskStatusDone)
	require.Len(t, cols[ci].Tasks, 1)
	assert.Equal(t, "4", cols[ci].Tasks[0].ID)
}

func TestPartitionTasksDefaultsDueDateToDayAfterCreation(t *testing.T) {
	created := day(10)
	rows := []models.Task{
		{ID: 1, Title: "no due", Status: models.TaskStatusBacklog, Priority: models.TaskPriorityLow, CreatedAt: created},
	}

	cols := partitionTasks(rows)

	ci := columnIndex(cols, models.TaskStatusBacklog)
	require.Len(t, cols[ci].Tasks, 1)
	assert.Equal(t, created.Add(24*time.Hour), cols[ci].Tasks[0].DueDate)
}

func TestSortColumnByDueDateIsStable(t *testing.T) {
	col := Column{Status: models.TaskStatusTodo, Title: "To Do"}
	col.Tasks = []Task{
		makeTask("a", models.TaskStatusTodo, day(2)),
		makeTask("b", models.TaskStatusTodo, day(1)),
		makeTask("c", models.TaskStatusTodo, day(1)),
	}

	sortColumnByDueDate(&col)

	assert.Equal(t, "b", col.Tasks[0].ID)
	assert.Equal(t, "c", col.Tasks[1].ID)
	assert.Equal(t, "a", col.Tasks[2].ID)
}

func TestCloneColumnsIsIndependent(t *testing.T) {
	cols := newColumns()
	insertTaskAt(cols, makeTask("1", models.TaskStatusTodo, day(1)), nil)

	clone := cloneColumns(cols)
	removeTask(clone, "1")

	_, found := findTask(cols, "1")
	assert.True(t, found, "removing from the clone must not affect the original")
}
