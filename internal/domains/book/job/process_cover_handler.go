package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/domains/book/model"
	"book-inventory/internal/domains/book/service"
)

// CoverProcessor is the part of the book service the worker needs
type CoverProcessor interface {
	ProcessCover(ctx context.Context, p service.CoverTaskPayload) error
}

// ProcessCoverHandler resizes an uploaded cover into its variants
type ProcessCoverHandler struct {
	covers CoverProcessor
}

func NewProcessCoverHandler(covers CoverProcessor) *ProcessCoverHandler {
	return &ProcessCoverHandler{covers: covers}
}

// ProcessTask - asynq handler for book:process_cover
func (h *ProcessCoverHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	p, err := service.ParseCoverTask(task)
	if err != nil {
		log.Error().Err(err).Msg("Invalid process_cover payload")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	log.Info().Int64("book_id", p.BookID).Str("key", p.Key).Msg("Processing book cover variants")

	if err := h.covers.ProcessCover(ctx, p); err != nil {
		log.Error().Err(err).Int64("book_id", p.BookID).Msg("Failed to process book cover")

		// a deleted book or an undecodable image will not get better on retry
		if errors.Is(err, model.ErrBookNotFound) || errors.Is(err, model.ErrInvalidCover) {
			return fmt.Errorf("process cover: %v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("process cover: %w", err)
	}

	log.Info().Int64("book_id", p.BookID).Msg("Book cover processed successfully")
	return nil
}
