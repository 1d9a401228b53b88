package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/middleware"
)

var errUserIDMissing = errors.New("user ID not found in context")

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v (%v)", name, raw)
	}

	return uint(parsed), nil
}

func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, error) {
	raw := ctx.Param(name)
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid %v (%v)", name, raw)
	}

	return parsed, nil
}

func getUserFromContext(ctx *gin.Context) (uint, error) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, errUserIDMissing
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, errUserIDMissing
	}

	return userID, nil
}
