package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers reports reachability of the backing stores.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// JSON GET /health/json — {status, database, redis}.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	dbStatus := "not configured"
	if h.DB != nil {
		dbStatus = "ok"
		if sqlDB, err := h.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
	}
	redisStatus := "not configured"
	if h.Rdb != nil {
		redisStatus = "ok"
		if err := h.Rdb.Ping(c.Context()).Err(); err != nil {
			redisStatus = "down"
		}
	}
	status := "ok"
	if dbStatus == "down" || redisStatus == "down" {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status":   status,
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
