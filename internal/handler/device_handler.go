package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/service"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
	"github.com/raidatlas/raidatlas-api/pkg/response"
)

// DeviceHandler registers anonymous devices.
type DeviceHandler struct {
	service *service.DeviceService
}

// NewDeviceHandler constructs a device handler.
func NewDeviceHandler(svc *service.DeviceService) *DeviceHandler {
	return &DeviceHandler{service: svc}
}

// Register godoc
// @Summary Register a device and receive its token
// @Tags Devices
// @Accept json
// @Produce json
// @Param payload body dto.RegisterDeviceRequest true "Device payload"
// @Success 201 {object} response.Envelope
// @Router /devices [post]
func (h *DeviceHandler) Register(c *gin.Context) {
	var req dto.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, token)
}
