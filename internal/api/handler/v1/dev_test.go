package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	v1 "github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/config"
)

type fakeSeedService struct {
	counts map[string]int64
	calls  int
}

func (f *fakeSeedService) Seed(_ context.Context) (map[string]int64, error) {
	f.calls++
	return f.counts, nil
}

func seedRouter(environment string, svc v1.SeedService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := v1.NewDevHandler(&config.APIConfig{Environment: environment}, svc)
	router := gin.New()
	router.POST("/api/v1/dev/seed", handler.HandleSeed)
	return router
}

func TestDevHandler_HandleSeed(t *testing.T) {
	seeder := &fakeSeedService{counts: map[string]int64{"items": 3}}
	router := seedRouter("development", seeder)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dev/seed", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, seeder.calls)
	assert.Contains(t, rec.Body.String(), `"items":3`)
}

func TestDevHandler_HandleSeed_DeniedInProduction(t *testing.T) {
	seeder := &fakeSeedService{}
	router := seedRouter("production", seeder)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dev/seed", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, seeder.calls, "seeding must never run in production")
}
