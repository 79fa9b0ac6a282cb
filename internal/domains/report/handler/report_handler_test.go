package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"book-inventory/internal/domains/report/service"
)

type stubService struct {
	data []byte
	err  error
}

func (s stubService) Build(context.Context) ([]byte, error) { return s.data, s.err }

func (s stubService) Archive(context.Context, time.Time) (string, error) { return "", nil }

func get(svc service.Service) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/reports/inventory.xlsx", NewReportHandler(svc).Inventory)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/inventory.xlsx", nil))
	return w
}

func TestInventory(t *testing.T) {
	w := get(stubService{data: []byte("PK")})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inventory-")
	assert.Equal(t, "PK", w.Body.String())
}

func TestInventory_Error(t *testing.T) {
	w := get(stubService{err: errors.New("db down")})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
