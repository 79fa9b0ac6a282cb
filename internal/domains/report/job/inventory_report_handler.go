package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Archiver is satisfied by the report service
type Archiver interface {
	Archive(ctx context.Context, now time.Time) (string, error)
}

// InventoryReportHandler runs the scheduled report:inventory task
type InventoryReportHandler struct {
	reports Archiver
	now     func() time.Time
}

func NewInventoryReportHandler(reports Archiver) *InventoryReportHandler {
	return &InventoryReportHandler{reports: reports, now: time.Now}
}

func (h *InventoryReportHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	url, err := h.reports.Archive(ctx, h.now())
	if err != nil {
		log.Error().Err(err).Str("task", t.Type()).Msg("[InventoryReportJob] failed")
		return err
	}

	log.Info().Str("url", url).Msg("[InventoryReportJob] done")
	return nil
}
