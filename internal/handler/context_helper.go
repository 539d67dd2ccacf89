package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/raidatlas/raidatlas-api/internal/middleware"
	"github.com/raidatlas/raidatlas-api/internal/models"
)

func deviceFromContext(c *gin.Context) *models.DeviceClaims {
	value, exists := c.Get(middleware.ContextDeviceKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.DeviceClaims)
	if !ok {
		return nil
	}
	return claims
}
