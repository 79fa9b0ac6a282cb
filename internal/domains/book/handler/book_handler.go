package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/domains/book/model"
	"book-inventory/internal/domains/book/service"
	"book-inventory/internal/shared/middleware"
	"book-inventory/internal/shared/response"
)

// maxCoverUpload caps how much of a cover upload is read; the image processor
// rejects anything over its own limit
const maxCoverUpload = 5*1024*1024 + 1

type Handler struct {
	service service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /v1/books?q=
// ════════════════════════════════════════════════════════════════

func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Get books successfully", books)
}

// ════════════════════════════════════════════════════════════════
// READ: Detail - GET /v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *Handler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Get book successfully", detail)
}

// ════════════════════════════════════════════════════════════════
// READ: Edit form - GET /v1/books/:id/edit (admin)
// ════════════════════════════════════════════════════════════════

func (h *Handler) GetEditForm(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	form, err := h.service.GetEditForm(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Success", form)
}

// ════════════════════════════════════════════════════════════════
// READ: Form options - GET /v1/books/form-options
// ════════════════════════════════════════════════════════════════

func (h *Handler) GetFormOptions(c *gin.Context) {
	opts, err := h.service.GetFormOptions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Success", opts)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/books (admin)
// ════════════════════════════════════════════════════════════════

func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Create book successfully", detail)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PATCH /v1/books/:id (admin)
// ════════════════════════════════════════════════════════════════

func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Update book successfully", detail)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/books/:id (admin)
// ════════════════════════════════════════════════════════════════

func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Delete book successfully", nil)
}

// ════════════════════════════════════════════════════════════════
// COVER: POST /v1/books/:id/cover (admin, multipart field "cover")
// ════════════════════════════════════════════════════════════════

func (h *Handler) UploadCover(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "cover file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "cannot read cover file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxCoverUpload))
	if err != nil {
		response.BadRequest(c, "cannot read cover file")
		return
	}

	url, err := h.service.UploadCover(c.Request.Context(), id, data)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, "Cover uploaded, processing variants", gin.H{"cover_url": url})
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

func bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ErrorResponse(c, http.StatusBadRequest, model.ToErrorCode(model.ErrInvalidBookID), model.ErrInvalidBookID.Error())
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
			Str("path", c.FullPath()).
			Msg("[BookHandler] request failed")
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), model.ToMessage(err))
}
