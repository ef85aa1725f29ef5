package handlers

import (
	"sjfs/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// Health reports service and database liveness.
func Health(c *fiber.Ctx) error {
	dbStatus := "ok"
	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "unreachable"
		}
	} else {
		dbStatus = "uninitialized"
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
