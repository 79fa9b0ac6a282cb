package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-inventory/internal/domains/author/model"
	"book-inventory/internal/domains/author/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct {
	service.Service
	err error
}

func (s stubService) Get(context.Context, int64) (*model.AuthorDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.AuthorDetail{ID: 1, Name: "Yuval Noah Harari", Gender: "N/A"}, nil
}

func (s stubService) Delete(context.Context, int64) error {
	return s.err
}

func serve(svc service.Service, method, path string) *httptest.ResponseRecorder {
	h := NewAuthorHandler(svc)
	r := gin.New()
	r.GET("/authors/:id", h.GetByID)
	r.DELETE("/authors/:id", h.Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestGetByID(t *testing.T) {
	w := serve(stubService{}, http.MethodGet, "/authors/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gender":"N/A"`)

	w = serve(stubService{err: model.ErrAuthorNotFound}, http.MethodGet, "/authors/1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(stubService{}, http.MethodGet, "/authors/x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_Conflict(t *testing.T) {
	w := serve(stubService{err: model.ErrAuthorHasBooks}, http.MethodDelete, "/authors/1")

	assert.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "AUTHOR_HAS_BOOKS", body.Error.Code)
	assert.Equal(t, "Can't delete author: still associated with one or more books", body.Error.Message)
}
