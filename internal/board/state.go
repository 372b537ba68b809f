package board

import (
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"kanban-board-api/internal/models"
	"kanban-board-api/internal/repository"
)

var (
	ErrNoUser          = errors.New("no signed-in user; sign in before modifying tasks")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("status must be one of backlog, todo, in_progress, done")
	ErrInvalidPriority = errors.New("priority must be one of low, medium, high")
	ErrInvalidTaskID   = errors.New("invalid task id")
)

// State owns the four task columns for one (user, board) scope and keeps them
// consistent with the remote store. Local state is patched only after the
// remote call succeeds, so the store is never behind local state.
//
// A mutex serializes operations; two conflicting actions on the same task
// resolve to last-write-wins at the store, same as rapid-fire user actions.
type State struct {
	mu      sync.Mutex
	userID  uint64
	boardID uint64 // zero means every board the user has tasks on
	tasks   repository.TaskRepository
	log     *log.Entry
	columns []Column
}

// NewState creates a column state for the given scope. A zero user ID is the
// signed-out state: columns stay empty and mutations are refused.
func NewState(userID, boardID uint64, tasks repository.TaskRepository) *State {
	return &State{
		userID:  userID,
		boardID: boardID,
		tasks:   tasks,
		log: log.WithFields(log.Fields{
			"user_id":  userID,
			"board_id": boardID,
		}),
		columns: newColumns(),
	}
}

// Columns returns an independent snapshot of the four columns.
func (s *State) Columns() []Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneColumns(s.columns)
}

// Fetch replaces local state wholesale from the remote store: tasks are
// partitioned by status and each column is sorted ascending by due date.
// Without a user the state resets to four empty columns and no remote call is
// made; that is the signed-out state, not an error.
func (s *State) Fetch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		s.columns = newColumns()
		return nil
	}

	rows, err := s.tasks.List(repository.TaskFilter{UserID: s.userID, BoardID: s.boardID})
	if err != nil {
		s.log.WithError(err).Error("failed to fetch tasks")
		return fmt.Errorf("failed to fetch tasks: %w", err)
	}

	s.columns = partitionTasks(rows)
	return nil
}

// AddTaskInput carries the fields for a new task.
type AddTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	Owner       string
}

// AddTask inserts a task remotely and appends the canonical returned task to
// the end of its column. The column is not re-sorted on insert; ordering by
// due date is restored by the next detail update or full fetch.
func (s *State) AddTask(input AddTaskInput) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return Task{}, ErrNoUser
	}
	if input.Title == "" {
		return Task{}, ErrTitleRequired
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.IsValid() {
		return Task{}, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.IsValid() {
		return Task{}, ErrInvalidPriority
	}

	row := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Owner:       input.Owner,
		UserID:      s.userID,
	}
	if s.boardID != 0 {
		boardID := s.boardID
		row.BoardID = &boardID
	}

	if err := s.tasks.Create(&row); err != nil {
		s.log.WithError(err).Error("failed to create task")
		return Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	task := taskFromModel(row)
	insertTaskAt(s.columns, task, nil)
	return task, nil
}

// UpdateTaskStatus updates the remote status field, then moves the task to the
// end of the destination column. The task's full record is resolved from the
// pre-mutation snapshot so a status-only update never loses detail fields.
func (s *State) UpdateTaskStatus(id string, status models.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return ErrNoUser
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	remoteID, err := parseTaskID(id)
	if err != nil {
		return ErrInvalidTaskID
	}

	if err := s.tasks.UpdateStatus(remoteID, s.userID, status); err != nil {
		s.log.WithError(err).WithField("task_id", id).Error("failed to update task status")
		return fmt.Errorf("failed to update task status: %w", err)
	}

	task, ok := findTask(s.columns, id)
	if !ok {
		s.log.WithField("task_id", id).Warn("status updated for task absent from local state")
		return nil
	}

	removeTask(s.columns, id)
	task.Status = status
	insertTaskAt(s.columns, task, nil)
	return nil
}

// TaskDetails carries the mutable non-status fields of a task.
type TaskDetails struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     time.Time
	Owner       string
}

// UpdateTaskDetails updates the remote row's mutable fields (never status),
// patches the matching local task in place, and re-sorts its column by due
// date.
func (s *State) UpdateTaskDetails(id string, details TaskDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return ErrNoUser
	}
	if details.Title == "" {
		return ErrTitleRequired
	}
	if details.Priority == "" {
		details.Priority = models.TaskPriorityMedium
	}
	if !details.Priority.IsValid() {
		return ErrInvalidPriority
	}

	remoteID, err := parseTaskID(id)
	if err != nil {
		return ErrInvalidTaskID
	}

	due := details.DueDate
	if err := s.tasks.UpdateDetails(remoteID, s.userID, repository.TaskDetails{
		Title:       details.Title,
		Description: details.Description,
		Priority:    details.Priority,
		DueDate:     &due,
		Owner:       details.Owner,
	}); err != nil {
		s.log.WithError(err).WithField("task_id", id).Error("failed to update task details")
		return fmt.Errorf("failed to update task details: %w", err)
	}

	for i := range s.columns {
		for j, t := range s.columns[i].Tasks {
			if t.ID != id {
				continue
			}
			t.Title = details.Title
			t.Description = details.Description
			t.Priority = details.Priority
			t.DueDate = details.DueDate
			t.Owner = details.Owner
			s.columns[i].Tasks[j] = t
			sortColumnByDueDate(&s.columns[i])
			return nil
		}
	}

	s.log.WithField("task_id", id).Warn("details updated for task absent from local state")
	return nil
}

// DeleteTask deletes the remote row and filters the task out of whichever
// column holds it.
func (s *State) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return ErrNoUser
	}

	remoteID, err := parseTaskID(id)
	if err != nil {
		return ErrInvalidTaskID
	}

	if err := s.tasks.Delete(remoteID, s.userID); err != nil {
		s.log.WithError(err).WithField("task_id", id).Error("failed to delete task")
		return fmt.Errorf("failed to delete task: %w", err)
	}

	removeTask(s.columns, id)
	return nil
}

// MoveTask updates the remote status, then reinserts the task into the
// destination column at targetIndex when 0 <= i <= len, otherwise at the end.
// A manual position survives until the next full fetch re-sorts by due date.
func (s *State) MoveTask(id string, status models.TaskStatus, targetIndex *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return ErrNoUser
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	remoteID, err := parseTaskID(id)
	if err != nil {
		return ErrInvalidTaskID
	}

	if err := s.tasks.UpdateStatus(remoteID, s.userID, status); err != nil {
		s.log.WithError(err).WithField("task_id", id).Error("failed to move task")
		return fmt.Errorf("failed to move task: %w", err)
	}

	task, ok := findTask(s.columns, id)
	if !ok {
		s.log.WithField("task_id", id).Warn("moved task absent from local state")
		return nil
	}

	removeTask(s.columns, id)
	task.Status = status
	insertTaskAt(s.columns, task, targetIndex)
	return nil
}
