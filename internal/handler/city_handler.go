package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	"github.com/raidatlas/raidatlas-api/internal/service"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
	"github.com/raidatlas/raidatlas-api/pkg/response"
)

// CityHandler handles city endpoints.
type CityHandler struct {
	service *service.CityService
}

// NewCityHandler constructs a city handler.
func NewCityHandler(svc *service.CityService) *CityHandler {
	return &CityHandler{service: svc}
}

// List godoc
// @Summary List cities
// @Tags Cities
// @Produce json
// @Param search query string false "Search by name or timezone"
// @Param country query string false "Filter by country"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /cities [get]
func (h *CityHandler) List(c *gin.Context) {
	var filter models.CityFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Country = c.Query("country")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = limit
	}

	cities, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, cities, pagination)
}

// Get godoc
// @Summary Get city by id
// @Tags Cities
// @Produce json
// @Param id path string true "City ID"
// @Success 200 {object} response.Envelope
// @Router /cities/{id} [get]
func (h *CityHandler) Get(c *gin.Context) {
	city, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, city, nil)
}

// Create godoc
// @Summary Create city
// @Tags Cities
// @Accept json
// @Produce json
// @Param payload body dto.CityRequest true "City payload"
// @Success 201 {object} response.Envelope
// @Router /cities [post]
func (h *CityHandler) Create(c *gin.Context) {
	var req dto.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	city, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, city)
}

// Update godoc
// @Summary Update city
// @Tags Cities
// @Accept json
// @Produce json
// @Param id path string true "City ID"
// @Param payload body dto.CityRequest true "City payload"
// @Success 200 {object} response.Envelope
// @Router /cities/{id} [put]
func (h *CityHandler) Update(c *gin.Context) {
	var req dto.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	city, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, city, nil)
}

// Delete godoc
// @Summary Delete city
// @Tags Cities
// @Produce json
// @Param id path string true "City ID"
// @Success 204
// @Router /cities/{id} [delete]
func (h *CityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
