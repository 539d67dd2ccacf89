package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/service"
	"github.com/raidatlas/raidatlas-api/pkg/response"
)

func newCityHandler() *CityHandler {
	return NewCityHandler(service.NewCityService(&cityRepoStub{}, nil, nil))
}

func TestCityHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCityHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.CityRequest{Name: "Berlin", Country: "Germany", Timezone: "Europe/Berlin"})
	req, _ := http.NewRequest(http.MethodPost, "/cities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCityHandlerCreateUnknownTimezone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCityHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.CityRequest{Name: "Atlantis", Country: "Nowhere", Timezone: "Atlantis/Deep"})
	req, _ := http.NewRequest(http.MethodPost, "/cities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UNKNOWN_TIMEZONE", envelope.Error.Code)
}

func TestCityHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCityHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/cities", bytes.NewReader([]byte(`not-json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCityHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCityHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/cities/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
