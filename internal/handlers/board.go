package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/services"
	"kanban-board-api/internal/utils"
)

type BoardHandler struct {
	boardService *services.BoardService
}

func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// ListBoards returns the board picker payload: boards the user owns (most
// recently updated first) and boards shared with them (most recent membership
// first). The owned listing expands beyond five via ?owned_limit=.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	picker, err := h.boardService.ListPickerBoards(userID, utils.GetOwnedBoardLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch boards"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPickerDTO(*picker))
}

// CreateBoard creates a new board owned by the user. Name and description are
// optional; blank values fall back to defaults.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type CreateBoardRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	b, err := h.boardService.CreateBoard(services.CreateBoardInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*b, true))
}

// GetBoard returns board details with members
func (h *BoardHandler) GetBoard(c *gin.Context) {
	// Board is already loaded by RequireBoardAccess middleware
	boardInterface, _ := c.Get("board")
	b := boardInterface.(models.Board)

	memberInterface, _ := c.Get("board_member")
	member := memberInterface.(models.BoardMember)

	_, members, err := h.boardService.GetBoardWithMembers(b.ID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	memberDTOs := make([]dto.BoardMemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = dto.ToBoardMemberDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"board":     dto.ToBoardDTO(b, member.Role == models.RoleOwner),
		"members":   memberDTOs,
		"your_role": member.Role,
	})
}

// UpdateBoard renames a board
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	b := boardInterface.(models.Board)

	type UpdateBoardRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.boardService.RenameBoard(b.ID, req.Name)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*updated, true))
}

// DeleteBoard deletes a board with its tasks and memberships
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	b := boardInterface.(models.Board)

	if err := h.boardService.DeleteBoard(b.ID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board deleted successfully",
	})
}

// JoinBoard allows a user to join a board via invite code
func (h *BoardHandler) JoinBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	b, err := h.boardService.JoinBoardByInvite(userID, req.InviteCode)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully joined board",
		"board":   dto.ToBoardDTO(*b, false),
	})
}

// RegenerateInviteCode generates a new invite code for the board
func (h *BoardHandler) RegenerateInviteCode(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	b := boardInterface.(models.Board)

	updated, err := h.boardService.RegenerateInviteCode(b.ID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*updated, true))
}

// RemoveMember removes a member from the board
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	b := boardInterface.(models.Board)

	currentUserID, _ := middleware.GetUserID(c)

	targetUserID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.boardService.RemoveMember(b.ID, currentUserID, targetUserID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrBoardMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidInviteCode):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyBoardMember):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidBoardName),
		errors.Is(err, services.ErrCannotRemoveYourself):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
	}
}
