package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/domains/taxonomy/model"
	"book-inventory/internal/domains/taxonomy/service"
	"book-inventory/internal/shared/middleware"
	"book-inventory/internal/shared/response"
)

// TaxonomyHandler serves one lookup kind; the router mounts one for genres and one for languages
type TaxonomyHandler struct {
	service service.Service
	kind    model.Kind
}

func NewTaxonomyHandler(svc service.Service) *TaxonomyHandler {
	return &TaxonomyHandler{service: svc, kind: svc.Kind()}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/genres, /v1/languages
// ════════════════════════════════════════════════════════════════

func (h *TaxonomyHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Success", entries)
}

func (h *TaxonomyHandler) GetByID(c *gin.Context) {
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	entry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Success", entry)
}

func (h *TaxonomyHandler) Books(c *gin.Context) {
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	books, err := h.service.Books(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Success", books)
}

// ════════════════════════════════════════════════════════════════
// WRITE: PATCH / DELETE /v1/{kind}/:id (admin)
// ════════════════════════════════════════════════════════════════

func (h *TaxonomyHandler) Update(c *gin.Context) {
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	var req model.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Update "+h.kind.Label+" successfully", entry)
}

func (h *TaxonomyHandler) Delete(c *gin.Context) {
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Delete "+h.kind.Label+" successfully", nil)
}

func (h *TaxonomyHandler) entryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, h.kind.Message(model.ErrInvalidID))
		return 0, false
	}
	return id, true
}

func (h *TaxonomyHandler) fail(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("kind", h.kind.Label).
			Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
			Msg("[TaxonomyHandler] request failed")
	}
	response.ErrorResponse(c, status, h.kind.ErrorCode(err), h.kind.Message(err))
}
