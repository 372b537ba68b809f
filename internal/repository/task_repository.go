package repository

import (
	"gorm.io/gorm"

	"kanban-board-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// List retrieves all tasks in the given scope. No ordering is applied here;
// column ordering is the board state's concern.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Where("user_id = ?", filter.UserID)
	if filter.BoardID != 0 {
		query = query.Where("board_id = ?", filter.BoardID)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Create inserts a new task; GORM fills in the generated ID and timestamps.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task scoped to its owning user
func (r *GormTaskRepository) FindByID(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateStatus updates only the status column of a task
func (r *GormTaskRepository) UpdateStatus(id, userID uint64, status models.TaskStatus) error {
	return r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status).Error
}

// UpdateDetails updates the mutable non-status fields of a task
func (r *GormTaskRepository) UpdateDetails(id, userID uint64, details TaskDetails) error {
	updates := map[string]interface{}{
		"title":       details.Title,
		"description": details.Description,
		"priority":    details.Priority,
		"due_date":    details.DueDate,
		"owner":       details.Owner,
	}

	return r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id, userID uint64) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Task{}).Error
}
