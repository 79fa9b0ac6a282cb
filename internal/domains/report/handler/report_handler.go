package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/domains/report/service"
	"book-inventory/internal/shared/middleware"
	"book-inventory/internal/shared/response"
)

type ReportHandler struct {
	service service.Service
}

func NewReportHandler(svc service.Service) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Inventory - GET /v1/reports/inventory.xlsx (admin)
func (h *ReportHandler) Inventory(c *gin.Context) {
	data, err := h.service.Build(c.Request.Context())
	if err != nil {
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
			Msg("[ReportHandler] build inventory report failed")
		response.InternalServerError(c, "Internal server error")
		return
	}

	filename := "inventory-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, service.ContentType, data)
}
