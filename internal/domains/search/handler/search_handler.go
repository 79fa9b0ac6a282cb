package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/domains/search/service"
	"book-inventory/internal/shared/middleware"
	"book-inventory/internal/shared/response"
	"book-inventory/internal/shared/utils"
)

type SearchHandler struct {
	service service.Service
}

func NewSearchHandler(svc service.Service) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Search - GET /v1/search?q=&from=
// A blank q sends the browser back to from.
func (h *SearchHandler) Search(c *gin.Context) {
	results, ok, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
			Msg("[SearchHandler] search failed")
		response.InternalServerError(c, "Internal server error")
		return
	}
	if !ok {
		c.Redirect(http.StatusFound, utils.SafeRedirect(c.Query("from")))
		return
	}

	response.Success(c, http.StatusOK, "Success", results)
}
