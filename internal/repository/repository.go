package repository

import (
	"time"

	"kanban-board-api/internal/models"
)

// TaskRepository defines the interface for task data access. Every mutation is
// scoped by the owning user ID so one user's actions can never touch another
// user's rows.
type TaskRepository interface {
	// List retrieves all tasks for a user, optionally restricted to one board.
	List(filter TaskFilter) ([]models.Task, error)

	// Create inserts a new task and populates it with the canonical stored row.
	Create(task *models.Task) error

	// FindByID finds a task owned by the given user.
	FindByID(id, userID uint64) (*models.Task, error)

	// UpdateStatus updates only the status field of a task.
	UpdateStatus(id, userID uint64, status models.TaskStatus) error

	// UpdateDetails updates the mutable non-status fields of a task.
	UpdateDetails(id, userID uint64, details TaskDetails) error

	// Delete soft deletes a task.
	Delete(id, userID uint64) error
}

// TaskFilter holds scoping options for listing tasks. BoardID zero means all
// boards the user has tasks on.
type TaskFilter struct {
	UserID  uint64
	BoardID uint64
}

// TaskDetails holds the fields a detail update may change. Status is
// deliberately absent; status changes go through UpdateStatus.
type TaskDetails struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
	Owner       string
}

// BoardRepository defines the interface for board data access.
type BoardRepository interface {
	// Create creates a new board.
	Create(board *models.Board) error

	// FindByID finds a board by ID.
	FindByID(id uint64) (*models.Board, error)

	// FindByInviteCode finds a board by invite code.
	FindByInviteCode(code string) (*models.Board, error)

	// Update updates a board.
	Update(board *models.Board) error

	// Delete deletes a board and all related data.
	Delete(id uint64) error

	// AddMember adds a member to a board.
	AddMember(member *models.BoardMember) error

	// RemoveMember removes a member from a board.
	RemoveMember(boardID, userID uint64) error

	// FindMember finds a specific board member.
	FindMember(boardID, userID uint64) (*models.BoardMember, error)

	// ListOwned lists boards the user owns, most recently updated first.
	ListOwned(userID uint64, limit int) ([]models.Board, error)

	// ListShared lists memberships where the user is a non-owner, most recent
	// membership first, with the board preloaded.
	ListShared(userID uint64, limit int) ([]models.BoardMember, error)

	// ListMembers lists all members of a board.
	ListMembers(boardID uint64) ([]models.BoardMember, error)
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user.
	Create(user *models.User) error

	// CreateWithPersonalBoard creates a user, their personal board, and the
	// owner membership within a single transaction.
	CreateWithPersonalBoard(user *models.User, board *models.Board, member *models.BoardMember) error

	// FindByID finds a user by ID.
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username.
	FindByUsername(username string) (*models.User, error)
}
