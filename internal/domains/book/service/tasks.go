package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	types "book-inventory/internal/shared"
)

// CoverTaskPayload points the worker at an uploaded original
type CoverTaskPayload struct {
	BookID int64  `json:"book_id"`
	Key    string `json:"key"`
}

func NewProcessCoverTask(p CoverTaskPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal cover payload: %w", err)
	}
	return asynq.NewTask(
		types.TypeProcessBookCover,
		payload,
		asynq.Queue(types.QueueBook),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	), nil
}

func ParseCoverTask(t *asynq.Task) (CoverTaskPayload, error) {
	var p CoverTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("unmarshal cover payload: %w", err)
	}
	if p.BookID <= 0 || p.Key == "" {
		return p, fmt.Errorf("incomplete cover payload: %+v", p)
	}
	return p, nil
}
