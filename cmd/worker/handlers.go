package main

import (
	"github.com/hibiken/asynq"

	bookJob "book-inventory/internal/domains/book/job"
	reportJob "book-inventory/internal/domains/report/job"
	"book-inventory/internal/shared"
	"book-inventory/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processCover    *bookJob.ProcessCoverHandler
	inventoryReport *reportJob.InventoryReportHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processCover:    bookJob.NewProcessCoverHandler(c.BookService),
		inventoryReport: reportJob.NewInventoryReportHandler(c.ReportService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeProcessBookCover, h.processCover.ProcessTask)
	mux.HandleFunc(shared.TypeInventoryReport, h.inventoryReport.ProcessTask)
}
