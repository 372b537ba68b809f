package repository

import (
	"gorm.io/gorm"

	"kanban-board-api/internal/database"
	"kanban-board-api/internal/models"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByInviteCode finds a board by invite code
func (r *GormBoardRepository) FindByInviteCode(code string) (*models.Board, error) {
	var board models.Board
	if err := r.db.Where("invite_code = ?", code).First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// Update updates a board
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete deletes a board and all related data in a transaction
func (r *GormBoardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("board_id = ?", id).Delete(&models.BoardMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Board{}, id).Error
	})
}

// AddMember adds a member to a board
func (r *GormBoardRepository) AddMember(member *models.BoardMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a board
func (r *GormBoardRepository) RemoveMember(boardID, userID uint64) error {
	return r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&models.BoardMember{}).Error
}

// FindMember finds a specific board member
func (r *GormBoardRepository) FindMember(boardID, userID uint64) (*models.BoardMember, error) {
	var member models.BoardMember
	if err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListOwned lists boards the user owns, most recently updated first
func (r *GormBoardRepository) ListOwned(userID uint64, limit int) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.
		Joins("JOIN board_members ON board_members.board_id = boards.id").
		Where("board_members.user_id = ? AND board_members.role = ?", userID, models.RoleOwner).
		Order("boards.updated_at DESC").
		Scopes(database.LimitTo(limit)).
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// ListShared lists non-owner memberships, most recent membership first
func (r *GormBoardRepository) ListShared(userID uint64, limit int) ([]models.BoardMember, error) {
	var memberships []models.BoardMember
	err := r.db.Preload("Board").
		Where("user_id = ? AND role <> ?", userID, models.RoleOwner).
		Order("joined_at DESC").
		Scopes(database.LimitTo(limit)).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of a board
func (r *GormBoardRepository) ListMembers(boardID uint64) ([]models.BoardMember, error) {
	var members []models.BoardMember
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
