package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/board"
	"kanban-board-api/internal/constants"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/services"
)

type TaskHandler struct {
	registry  *board.Registry
	aiService *services.AIService
}

func NewTaskHandler(registry *board.Registry, aiService *services.AIService) *TaskHandler {
	return &TaskHandler{
		registry:  registry,
		aiService: aiService,
	}
}

// boardScope extracts the optional board_id query parameter. Zero means every
// board the user has tasks on.
func boardScope(c *gin.Context) (uint64, bool) {
	boardIDStr := c.Query("board_id")
	if boardIDStr == "" {
		return 0, true
	}

	boardID, err := strconv.ParseUint(boardIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board_id"})
		return 0, false
	}
	return boardID, true
}

// ListColumns refreshes the column state for the current scope and returns the
// four lifecycle columns
func (h *TaskHandler) ListColumns(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, ok := boardScope(c)
	if !ok {
		return
	}

	state := h.registry.Get(userID, boardID)
	if err := state.Fetch(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, dto.ColumnsResponse{Columns: state.Columns()})
}

// CreateTask creates a new task and appends it to its column
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"due_date"`
		Owner       string     `json:"owner"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	boardID, ok := boardScope(c)
	if !ok {
		return
	}

	state := h.registry.Get(userID, boardID)
	task, err := state.AddTask(board.AddTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		Owner:       req.Owner,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{Task: task})
}

// UpdateTaskDetails updates a task's mutable fields (never its status) and
// re-sorts its column by due date
func (h *TaskHandler) UpdateTaskDetails(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type UpdateTaskRequest struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		Priority    string    `json:"priority"`
		DueDate     time.Time `json:"due_date" binding:"required"`
		Owner       string    `json:"owner"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	boardID, ok := boardScope(c)
	if !ok {
		return
	}

	state := h.registry.Get(userID, boardID)
	err := state.UpdateTaskDetails(c.Param("id"), board.TaskDetails{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		Owner:       req.Owner,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

// UpdateTaskStatus moves a task to the end of another column
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	boardID, ok := boardScope(c)
	if !ok {
		return
	}

	state := h.registry.Get(userID, boardID)
	if err := state.UpdateTaskStatus(c.Param("id"), models.TaskStatus(req.Status)); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task status updated successfully"})
}

// MoveTask moves a task to a column position, supporting drag-and-drop
// reordering across and within columns
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type MoveTaskRequest struct {
		Status string `json:"status" binding:"required"`
		Index  *int   `json:"index"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	boardID, ok := boardScope(c)
	if !ok {
		return
	}

	state := h.registry.Get(userID, boardID)
	if err := state.MoveTask(c.Param("id"), models.TaskStatus(req.Status), req.Index); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task moved successfully"})
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, ok := boardScope(c)
	if !ok {
		return
	}

	state := h.registry.Get(userID, boardID)
	if err := state.DeleteTask(c.Param("id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// SuggestTasks generates task suggestions from text using AI
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type SuggestTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if h.aiService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service is not configured. Please set OPENAI_API_KEY environment variable."})
		return
	}

	suggestions, err := h.aiService.SuggestTasksFromText(context.Background(), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to suggest tasks: %v", err)})
		return
	}
	if len(suggestions) > constants.MaxSuggestedTasks {
		suggestions = suggestions[:constants.MaxSuggestedTasks]
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": suggestions,
	})
}

// respondTaskError translates column state errors into HTTP responses. Remote
// store failures surface as a transient 500; the local state is untouched and
// the user simply retries.
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, board.ErrNoUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to modify tasks"})
	case errors.Is(err, board.ErrTitleRequired),
		errors.Is(err, board.ErrInvalidStatus),
		errors.Is(err, board.ErrInvalidPriority),
		errors.Is(err, board.ErrInvalidTaskID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
	}
}
