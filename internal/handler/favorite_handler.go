package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raidatlas/raidatlas-api/internal/service"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
	"github.com/raidatlas/raidatlas-api/pkg/response"
)

// FavoriteHandler manages the device's starred events.
type FavoriteHandler struct {
	service *service.FavoriteService
}

// NewFavoriteHandler constructs a favorite handler.
func NewFavoriteHandler(svc *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: svc}
}

// List godoc
// @Summary List the device's starred events
// @Tags Favorites
// @Produce json
// @Security DeviceToken
// @Success 200 {object} response.Envelope
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	claims := deviceFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	events, err := h.service.List(c.Request.Context(), claims.DeviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Add godoc
// @Summary Star an event
// @Tags Favorites
// @Produce json
// @Security DeviceToken
// @Param id path string true "Event ID"
// @Success 204
// @Router /favorites/{id} [put]
func (h *FavoriteHandler) Add(c *gin.Context) {
	claims := deviceFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Add(c.Request.Context(), claims.DeviceID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Remove godoc
// @Summary Unstar an event
// @Tags Favorites
// @Produce json
// @Security DeviceToken
// @Param id path string true "Event ID"
// @Success 204
// @Router /favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	claims := deviceFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Remove(c.Request.Context(), claims.DeviceID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
