package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"kanban-board-api/internal/constants"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/utils"
)

var (
	ErrBoardNotFound              = errors.New("board not found")
	ErrInvalidBoardName           = errors.New("board name cannot be empty")
	ErrInviteCodeGenerationFailed = errors.New("failed to generate invite code")
	ErrInvalidInviteCode          = errors.New("invalid invite code")
	ErrAlreadyBoardMember         = errors.New("user is already a member of this board")
	ErrCannotRemoveYourself       = errors.New("cannot remove yourself from the board")
	ErrBoardMemberNotFound        = errors.New("board member not found")
)

// Defaults applied when a board is created without an explicit name.
const (
	DefaultBoardName        = "New Board"
	DefaultBoardDescription = "A fresh board for organizing tasks"
)

// BoardService provides business logic for board operations, including the
// picker listings.
type BoardService struct {
	boardRepo repository.BoardRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
	}
}

// BoardSummary is the flat name/identifier pair the board picker consumes.
type BoardSummary struct {
	ID   uint64
	Name string
}

// PickerBoards holds the two picker listings: boards the user owns and boards
// shared with them by someone else.
type PickerBoards struct {
	Owned  []BoardSummary
	Shared []BoardSummary
}

// ListPickerBoards returns boards owned by the user (most recently updated
// first, capped at ownedLimit) and boards shared with the user (most recent
// membership first, top five).
func (s *BoardService) ListPickerBoards(userID uint64, ownedLimit int) (*PickerBoards, error) {
	if ownedLimit <= 0 || ownedLimit > constants.MaxBoardListLimit {
		ownedLimit = constants.DefaultBoardListLimit
	}

	owned, err := s.boardRepo.ListOwned(userID, ownedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned boards: %w", err)
	}

	shared, err := s.boardRepo.ListShared(userID, constants.DefaultBoardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared boards: %w", err)
	}

	picker := &PickerBoards{
		Owned:  make([]BoardSummary, 0, len(owned)),
		Shared: make([]BoardSummary, 0, len(shared)),
	}
	for _, b := range owned {
		picker.Owned = append(picker.Owned, BoardSummary{ID: b.ID, Name: b.Name})
	}
	for _, m := range shared {
		picker.Shared = append(picker.Shared, BoardSummary{ID: m.Board.ID, Name: m.Board.Name})
	}

	return picker, nil
}

// CreateBoardInput represents parameters to create a new board. Name and
// Description fall back to defaults when blank.
type CreateBoardInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// CreateBoard creates a new board and records the owner membership.
func (s *BoardService) CreateBoard(input CreateBoardInput) (*models.Board, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = DefaultBoardName
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = DefaultBoardDescription
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrInviteCodeGenerationFailed
	}

	boardRow := &models.Board{
		Name:        name,
		Description: description,
		InviteCode:  inviteCode,
	}

	if err := s.boardRepo.Create(boardRow); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	member := &models.BoardMember{
		BoardID:  boardRow.ID,
		UserID:   input.OwnerID,
		Role:     models.RoleOwner,
		JoinedAt: time.Now(),
	}

	if err := s.boardRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add owner to board: %w", err)
	}

	return boardRow, nil
}

// GetBoardWithMembers returns a board and all of its members.
func (s *BoardService) GetBoardWithMembers(boardID uint64) (*models.Board, []models.BoardMember, error) {
	b, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBoardNotFound
		}
		return nil, nil, fmt.Errorf("failed to find board: %w", err)
	}

	members, err := s.boardRepo.ListMembers(boardID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list board members: %w", err)
	}

	return b, members, nil
}

// RenameBoard updates a board's name.
func (s *BoardService) RenameBoard(boardID uint64, name string) (*models.Board, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidBoardName
	}

	b, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	b.Name = name
	if err := s.boardRepo.Update(b); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return b, nil
}

// DeleteBoard removes a board together with its tasks and memberships.
func (s *BoardService) DeleteBoard(boardID uint64) error {
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}

	if err := s.boardRepo.Delete(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	return nil
}

// JoinBoardByInvite adds a user to a board via invite code.
func (s *BoardService) JoinBoardByInvite(userID uint64, inviteCode string) (*models.Board, error) {
	b, err := s.boardRepo.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find board by invite code: %w", err)
	}

	if _, err := s.boardRepo.FindMember(b.ID, userID); err == nil {
		return nil, ErrAlreadyBoardMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.BoardMember{
		BoardID:  b.ID,
		UserID:   userID,
		Role:     models.RoleMember,
		JoinedAt: time.Now(),
	}

	if err := s.boardRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member to board: %w", err)
	}

	return b, nil
}

// RegenerateInviteCode generates a new invite code for the board.
func (s *BoardService) RegenerateInviteCode(boardID uint64) (*models.Board, error) {
	b, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	code, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrInviteCodeGenerationFailed
	}

	b.InviteCode = code
	if err := s.boardRepo.Update(b); err != nil {
		return nil, fmt.Errorf("failed to update invite code: %w", err)
	}

	return b, nil
}

// RemoveMember removes a member from the board.
func (s *BoardService) RemoveMember(boardID, actorID, targetID uint64) error {
	if targetID == actorID {
		return ErrCannotRemoveYourself
	}

	if _, err := s.boardRepo.FindMember(boardID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardMemberNotFound
		}
		return fmt.Errorf("failed to find board member: %w", err)
	}

	if err := s.boardRepo.RemoveMember(boardID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
