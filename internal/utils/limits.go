package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/constants"
)

// GetOwnedBoardLimit extracts the owned-board listing limit from the request.
// The picker shows five boards by default and expands on demand up to the cap.
func GetOwnedBoardLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("owned_limit", strconv.Itoa(constants.DefaultBoardListLimit)))
	if err != nil || limit < 1 || limit > constants.MaxBoardListLimit {
		return constants.DefaultBoardListLimit
	}
	return limit
}
