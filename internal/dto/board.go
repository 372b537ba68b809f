package dto

import (
	"strconv"
	"time"

	"kanban-board-api/internal/models"
	"kanban-board-api/internal/services"
)

// Remote keys are numeric; everything handed to clients is string-typed. These
// DTOs are the read-side half of that conversion.

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InviteCode  string    `json:"invite_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BoardSummaryDTO is the flat id/name pair the board picker renders.
type BoardSummaryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BoardMemberDTO represents a board membership in API responses
type BoardMemberDTO struct {
	User     UserDTO          `json:"user"`
	Role     models.BoardRole `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}

// PickerDTO is the board picker payload: owned and shared listings.
type PickerDTO struct {
	Owned  []BoardSummaryDTO `json:"owned"`
	Shared []BoardSummaryDTO `json:"shared"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       strconv.FormatUint(user.ID, 10),
		Username: user.Username,
	}
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(b models.Board, includeInviteCode bool) BoardDTO {
	dto := BoardDTO{
		ID:          strconv.FormatUint(b.ID, 10),
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if includeInviteCode {
		dto.InviteCode = b.InviteCode
	}
	return dto
}

// ToBoardMemberDTO converts a BoardMember model to BoardMemberDTO
func ToBoardMemberDTO(m models.BoardMember) BoardMemberDTO {
	return BoardMemberDTO{
		User:     ToUserDTO(m.User),
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

// ToPickerDTO converts picker listings to their response shape
func ToPickerDTO(picker services.PickerBoards) PickerDTO {
	dto := PickerDTO{
		Owned:  make([]BoardSummaryDTO, len(picker.Owned)),
		Shared: make([]BoardSummaryDTO, len(picker.Shared)),
	}
	for i, s := range picker.Owned {
		dto.Owned[i] = BoardSummaryDTO{ID: strconv.FormatUint(s.ID, 10), Name: s.Name}
	}
	for i, s := range picker.Shared {
		dto.Shared[i] = BoardSummaryDTO{ID: strconv.FormatUint(s.ID, 10), Name: s.Name}
	}
	return dto
}
