package controller

import (
	"context"
	"time"

	"crackit_backend/internal/util"
	"crackit_backend/pkg/database"

	"github.com/gin-gonic/gin"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// @Summary Liveness and dependency check
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	dbStatus := "ok"
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}
	status["database"] = dbStatus

	redisStatus := "ok"
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()
	if database.RedisClient == nil || database.RedisClient.Ping(checkCtx).Err() != nil {
		redisStatus = "down"
	}
	status["redis"] = redisStatus

	util.Success(ctx, status)
}
