package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raidatlas/raidatlas-api/internal/service"
	"github.com/raidatlas/raidatlas-api/pkg/response"
)

// TimelineHandler serves the cross-city timeline and city-card views.
type TimelineHandler struct {
	service *service.TimelineService
}

// NewTimelineHandler constructs a timeline handler.
func NewTimelineHandler(svc *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{service: svc}
}

// Timeline godoc
// @Summary Build the cross-city timeline for an event
// @Description Resolves every participating city's window into the viewer's timezone and returns the chronologically ordered entries with classified gaps. Unknown timezones fall back to UTC.
// @Tags Timelines
// @Produce json
// @Param id path string true "Event ID"
// @Param tz query string false "Viewer IANA timezone, defaults to UTC"
// @Param cities query string false "Comma-separated city IDs, defaults to all"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/timeline [get]
func (h *TimelineHandler) Timeline(c *gin.Context) {
	timeline, err := h.service.Build(c.Request.Context(), c.Param("id"), c.Query("tz"), splitCityIDs(c.Query("cities")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timeline, nil)
}

// CityTimes godoc
// @Summary List the per-city event times
// @Tags Timelines
// @Produce json
// @Param id path string true "Event ID"
// @Param tz query string false "Viewer IANA timezone, defaults to UTC"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/times [get]
func (h *TimelineHandler) CityTimes(c *gin.Context) {
	times, err := h.service.CityTimes(c.Request.Context(), c.Param("id"), c.Query("tz"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, times, nil)
}

func splitCityIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
