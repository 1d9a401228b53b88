package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1/response"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/config"
)

type SeedService interface {
	Seed(ctx context.Context) (map[string]int64, error)
}

// DevHandler hosts development-only endpoints. The routes stay mounted in
// every environment so production callers get an explicit denial instead
// of a 404.
type DevHandler struct {
	conf *config.APIConfig
	svc  SeedService
}

func NewDevHandler(conf *config.APIConfig, svc SeedService) *DevHandler {
	return &DevHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleSeed godoc
// @Summary      Seed the database with demo data
// @Tags         dev
// @Produce      json
// @Success      200 {object} response.SeedResponse
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /dev/seed [post]
// @Security     BearerToken
func (h *DevHandler) HandleSeed(ctx *gin.Context) {
	if h.conf.Environment == "production" {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("seeding is disabled in production")))

		return
	}

	counts, err := h.svc.Seed(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSeed -> h.svc.Seed -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.SeedResponse{
		Counts: counts,
	})
}
