package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/services"
)

type boardTestEnv struct {
	db           *gorm.DB
	handler      *BoardHandler
	boardService *services.BoardService
}

func setupBoardTestEnv(t *testing.T) boardTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardMember{},
		&models.Task{},
	)
	require.NoError(t, err)

	boardService := services.NewBoardService(repository.NewBoardRepository(db))
	handler := NewBoardHandler(boardService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return boardTestEnv{
		db:           db,
		handler:      handler,
		boardService: boardService,
	}
}

func (env boardTestEnv) createBoard(t *testing.T, name string, ownerID uint64) *models.Board {
	t.Helper()
	b, err := env.boardService.CreateBoard(services.CreateBoardInput{
		Name:    name,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return b
}

func boardContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// setBoardContext simulates the RequireBoardAccess middleware
func setBoardContext(c *gin.Context, b models.Board, role models.BoardRole, userID uint64) {
	c.Set("board", b)
	c.Set("board_member", models.BoardMember{
		BoardID:  b.ID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	})
}

func TestBoardHandler_ListBoardsPicker(t *testing.T) {
	env := setupBoardTestEnv(t)

	env.createBoard(t, "Owned One", 1)
	env.createBoard(t, "Owned Two", 1)

	// A board someone else owns, shared with user 1.
	shared := env.createBoard(t, "Shared Board", 2)
	_, err := env.boardService.JoinBoardByInvite(1, shared.InviteCode)
	require.NoError(t, err)

	c, w := boardContext("GET", "/api/boards", nil, 1)

	env.handler.ListBoards(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.PickerDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Owned, 2)
	require.Len(t, response.Shared, 1)
	require.Equal(t, "Shared Board", response.Shared[0].Name)
	for _, summary := range response.Owned {
		require.NotEmpty(t, summary.ID)
		require.NotEqual(t, "Shared Board", summary.Name)
	}
}

func TestBoardHandler_ListBoardsHonorsOwnedLimit(t *testing.T) {
	env := setupBoardTestEnv(t)

	for i := 0; i < 7; i++ {
		env.createBoard(t, "Board", 1)
	}

	// Default cap is five.
	c, w := boardContext("GET", "/api/boards", nil, 1)
	env.handler.ListBoards(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.PickerDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Owned, 5)

	// Expanded via owned_limit.
	c, w = boardContext("GET", "/api/boards?owned_limit=7", nil, 1)
	env.handler.ListBoards(c)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Owned, 7)
}

func TestBoardHandler_ListBoardsUnauthorized(t *testing.T) {
	env := setupBoardTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/boards", nil)

	env.handler.ListBoards(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBoardHandler_CreateBoardWithDefaults(t *testing.T) {
	env := setupBoardTestEnv(t)

	c, w := boardContext("POST", "/api/boards", nil, 1)

	env.handler.CreateBoard(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.BoardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, services.DefaultBoardName, response.Name)
	require.Equal(t, services.DefaultBoardDescription, response.Description)
	require.NotEmpty(t, response.InviteCode, "creator sees the invite code")
}

func TestBoardHandler_CreateBoardWithName(t *testing.T) {
	env := setupBoardTestEnv(t)

	body, _ := json.Marshal(map[string]string{"name": "Sprint Board"})
	c, w := boardContext("POST", "/api/boards", body, 1)

	env.handler.CreateBoard(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.BoardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Sprint Board", response.Name)

	// Creator is recorded as owner.
	var member models.BoardMember
	err := env.db.Where("user_id = ? AND role = ?", 1, models.RoleOwner).First(&member).Error
	require.NoError(t, err)
}

func TestBoardHandler_GetBoardAsOwnerIncludesInviteCode(t *testing.T) {
	env := setupBoardTestEnv(t)

	b := env.createBoard(t, "Mine", 1)

	c, w := boardContext("GET", "/api/boards/1", nil, 1)
	setBoardContext(c, *b, models.RoleOwner, 1)

	env.handler.GetBoard(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Board    dto.BoardDTO         `json:"board"`
		Members  []dto.BoardMemberDTO `json:"members"`
		YourRole models.BoardRole     `json:"your_role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Mine", response.Board.Name)
	require.NotEmpty(t, response.Board.InviteCode)
	require.Equal(t, models.RoleOwner, response.YourRole)
	require.Len(t, response.Members, 1)
}

func TestBoardHandler_GetBoardAsMemberHidesInviteCode(t *testing.T) {
	env := setupBoardTestEnv(t)

	b := env.createBoard(t, "Theirs", 2)
	_, err := env.boardService.JoinBoardByInvite(1, b.InviteCode)
	require.NoError(t, err)

	c, w := boardContext("GET", "/api/boards/1", nil, 1)
	setBoardContext(c, *b, models.RoleMember, 1)

	env.handler.GetBoard(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Board    dto.BoardDTO     `json:"board"`
		YourRole models.BoardRole `json:"your_role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Empty(t, response.Board.InviteCode)
	require.Equal(t, models.RoleMember, response.YourRole)
}

func TestBoardHandler_UpdateBoardRenames(t *testing.T) {
	env := setupBoardTestEnv(t)

	b := env.createBoard(t, "Old Name", 1)

	body, _ := json.Marshal(map[string]string{"name": "New Name"})
	c, w := boardContext("PUT", "/api/boards/1", body, 1)
	setBoardContext(c, *b, models.RoleOwner, 1)

	env.handler.UpdateBoard(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.BoardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "New Name", response.Name)
}

func TestBoardHandler_DeleteBoardCascades(t *testing.T) {
	env := setupBoardTestEnv(t)

	b := env.createBoard(t, "Doomed", 1)

	c, w := boardContext("DELETE", "/api/boards/1", nil, 1)
	setBoardContext(c, *b, models.RoleOwner, 1)

	env.handler.DeleteBoard(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Board{}).Where("id = ?", b.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestBoardHandler_JoinBoard(t *testing.T) {
	env := setupBoardTestEnv(t)

	b := env.createBoard(t, "Joinable", 2)

	body, _ := json.Marshal(map[string]string{"invite_code": b.InviteCode})
	c, w := boardContext("POST", "/api/boards/join", body, 1)

	env.handler.JoinBoard(c)

	require.Equal(t, http.StatusOK, w.Code)

	var member models.BoardMember
	err := env.db.Where("board_id = ? AND user_id = ?", b.ID, 1).First(&member).Error
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, member.Role)
}

func TestBoardHandler_JoinBoardInvalidCode(t *testing.T) {
	env := setupBoardTestEnv(t)

	body, _ := json.Marshal(map[string]string{"invite_code": "XXXX-YYYY-ZZZZ"})
	c, w := boardContext("POST", "/api/boards/join", body, 1)

	env.handler.JoinBoard(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBoardHandler_JoinBoardTwiceConflicts(t *testing.T) {
	env := setupBoardTestEnv(t)

	b := env.createBoard(t, "Joinable", 2)
	_, err := env.boardService.JoinBoardByInvite(1, b.InviteCode)
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{"invite_code": b.InviteCode})
	c, w := boardContext("POST", "/api/boards/join", body, 1)

	env.handler.JoinBoard(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestBoardHandler_RegenerateInviteCode(t *testing.T) {
	env := setupBoardTestEnv(t)

	b := env.createBoard(t, "Rotating", 1)
	oldCode := b.InviteCode

	c, w := boardContext("POST", "/api/boards/1/regenerate-code", nil, 1)
	setBoardContext(c, *b, models.RoleOwner, 1)

	env.handler.RegenerateInviteCode(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.BoardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.InviteCode)
	require.NotEqual(t, oldCode, response.InviteCode)

	// The old code no longer works.
	body, _ := json.Marshal(map[string]string{"invite_code": oldCode})
	c, w = boardContext("POST", "/api/boards/join", body, 2)
	env.handler.JoinBoard(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBoardHandler_RemoveMember(t *testing.T) {
	env := setupBoardTestEnv(t)

	b := env.createBoard(t, "Shared", 1)
	_, err := env.boardService.JoinBoardByInvite(2, b.InviteCode)
	require.NoError(t, err)

	c, w := boardContext("DELETE", "/api/boards/1/members/2", nil, 1)
	setBoardContext(c, *b, models.RoleOwner, 1)
	c.Params = gin.Params{{Key: "id", Value: "1"}, {Key: "user_id", Value: "2"}}

	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.BoardMember{}).
		Where("board_id = ? AND user_id = ?", b.ID, 2).Count(&count).Error)
	require.Zero(t, count)
}

func TestBoardHandler_RemoveMemberCannotRemoveSelf(t *testing.T) {
	env := setupBoardTestEnv(t)

	b := env.createBoard(t, "Shared", 1)

	c, w := boardContext("DELETE", "/api/boards/1/members/1", nil, 1)
	setBoardContext(c, *b, models.RoleOwner, 1)
	c.Params = gin.Params{{Key: "id", Value: "1"}, {Key: "user_id", Value: "1"}}

	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
