package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/domains/author/model"
	"book-inventory/internal/domains/author/service"
	"book-inventory/internal/shared/middleware"
	"book-inventory/internal/shared/response"
)

type AuthorHandler struct {
	service service.Service
}

func NewAuthorHandler(svc service.Service) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Success", authors)
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := authorID(c)
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Get author successfully", detail)
}

// ════════════════════════════════════════════════════════════════
// READ: Edit form - GET /v1/authors/:id/edit (admin)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetEditForm(c *gin.Context) {
	id, ok := authorID(c)
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
// BOOKS: GET /v1/authors/:id/books
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Books(c *gin.Context) {
	id, ok := authorID(c)
	if !ok {
		return
	}

	books, err := h.service.BooksByAuthor(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Success", books)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/authors (admin)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Create author successfully", detail)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PATCH /v1/authors/:id (admin)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := authorID(c)
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Update author successfully", detail)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/authors/:id (admin)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := authorID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Delete author successfully", nil)
}

func authorID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, model.ErrInvalidAuthorID.Error())
		return 0, false
	}
	return id, true
}

func (h *AuthorHandler) fail(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
			Msg("[AuthorHandler] request failed")
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), model.ToMessage(err))
}
