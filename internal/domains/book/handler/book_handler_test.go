package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-inventory/internal/domains/book/model"
	"book-inventory/internal/domains/book/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService answers every call from the fields set by the test
type stubService struct {
	service.Service
	list   []model.BookListItem
	detail *model.BookDetail
	err    error

	gotSearch string
	gotUpdate model.UpdateBookRequest
	gotCover  []byte
}

func (s *stubService) ListBooks(_ context.Context, search string) ([]model.BookListItem, error) {
	s.gotSearch = search
	return s.list, s.err
}

func (s *stubService) GetBook(context.Context, int64) (*model.BookDetail, error) {
	return s.detail, s.err
}

func (s *stubService) CreateBook(context.Context, model.CreateBookRequest) (*model.BookDetail, error) {
	return s.detail, s.err
}

func (s *stubService) UpdateBook(_ context.Context, _ int64, req model.UpdateBookRequest) (*model.BookDetail, error) {
	s.gotUpdate = req
	return s.detail, s.err
}

func (s *stubService) DeleteBook(context.Context, int64) error {
	return s.err
}

func (s *stubService) UploadCover(_ context.Context, _ int64, data []byte) (string, error) {
	s.gotCover = data
	return "http://minio.local/covers/1/original.png", s.err
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func newRouter(svc service.Service) *gin.Engine {
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/books", h.ListBooks)
	r.GET("/books/:id", h.GetBook)
	r.POST("/books", h.CreateBook)
	r.PATCH("/books/:id", h.UpdateBook)
	r.DELETE("/books/:id", h.DeleteBook)
	r.POST("/books/:id/cover", h.UploadCover)
	return r
}

func do(t *testing.T, r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestListBooks_PassesQuery(t *testing.T) {
	svc := &stubService{list: []model.BookListItem{{ID: 1, Title: "Sapiens"}}}

	w, env := do(t, newRouter(svc), httptest.NewRequest(http.MethodGet, "/books?q=sap", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "sap", svc.gotSearch)
	assert.Contains(t, string(env.Data), `"Sapiens"`)
}

func TestGetBook_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
		code   string
	}{
		{"invalid id", "/books/abc", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"zero id", "/books/0", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", "/books/7", model.ErrBookNotFound, http.StatusNotFound, "BOOK_NOT_FOUND"},
		{"database down", "/books/7", errors.New("pool closed"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, newRouter(&stubService{err: tt.err}), httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.NotContains(t, env.Error.Message, "pool closed")
		})
	}
}

func TestCreateBook_ValidationErrorDetails(t *testing.T) {
	svc := &stubService{err: validation.Errors{"authors": errors.New("At least one author is required")}}
	body := bytes.NewBufferString(`{"title":"Sapiens","authors":""}`)

	w, env := do(t, newRouter(svc), httptest.NewRequest(http.MethodPost, "/books", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), "At least one author is required")
}

func TestCreateBook_Created(t *testing.T) {
	svc := &stubService{detail: &model.BookDetail{ID: 1, Title: "Sapiens"}}
	body := bytes.NewBufferString(`{"title":"sapiens","stock":12,"price":"24.99","authors":"Yuval Noah Harari","genres":["History"],"languages":["English"]}`)

	w, env := do(t, newRouter(svc), httptest.NewRequest(http.MethodPost, "/books", body))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
}

func TestCreateBook_MalformedJSON(t *testing.T) {
	w, env := do(t, newRouter(&stubService{}), httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(`{`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestUpdateBook_AbsentListsStayNil(t *testing.T) {
	svc := &stubService{detail: &model.BookDetail{ID: 1}}
	body := bytes.NewBufferString(`{"genres":"History, Economics"}`)

	w, _ := do(t, newRouter(svc), httptest.NewRequest(http.MethodPatch, "/books/1", body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.NameList{"History", "Economics"}, svc.gotUpdate.Genres)
	assert.Nil(t, svc.gotUpdate.Authors)
	assert.Nil(t, svc.gotUpdate.Title)
}

func TestUpdateBook_NothingToUpdate(t *testing.T) {
	svc := &stubService{err: model.ErrNothingToUpdate}

	w, env := do(t, newRouter(svc), httptest.NewRequest(http.MethodPatch, "/books/1", bytes.NewBufferString(`{}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestDeleteBook(t *testing.T) {
	w, env := do(t, newRouter(&stubService{}), httptest.NewRequest(http.MethodDelete, "/books/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = do(t, newRouter(&stubService{err: model.ErrBookNotFound}), httptest.NewRequest(http.MethodDelete, "/books/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadCover(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("cover", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	svc := &stubService{}
	req := httptest.NewRequest(http.MethodPost, "/books/1/cover", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w, env := do(t, newRouter(svc), req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []byte("png-bytes"), svc.gotCover)
	assert.Contains(t, string(env.Data), "cover_url")
}

func TestUploadCover_MissingFile(t *testing.T) {
	w, _ := do(t, newRouter(&stubService{}), httptest.NewRequest(http.MethodPost, "/books/1/cover", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
