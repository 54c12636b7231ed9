package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"search-hub/domain"
	"search-hub/usecase"
)

const (
	batchFlushSize     = 10
	batchFlushInterval = 2 * time.Second
)

// ContentSavedPayload represents the payload for ContentSaved events.
type ContentSavedPayload struct {
	SourceType string `json:"source_type"`
	ID         string `json:"id"`
}

// ContentDeletedPayload represents the payload for ContentDeleted events.
type ContentDeletedPayload struct {
	SourceType string `json:"source_type"`
	ID         string `json:"id"`
}

type contentRef struct {
	sourceType domain.SourceType
	id         string
}

// ContentEventHandler processes content lifecycle events from the stream.
// Saves are buffered and flushed in batches to reduce per-event database
// round-trips; deletes take effect immediately.
type ContentEventHandler struct {
	indexUsecase *usecase.IndexContentUsecase
	logger       *slog.Logger

	mu      sync.Mutex
	buffer  []contentRef
	timer   *time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	flushed chan struct{} // closed on each flush for testing
}

// NewContentEventHandler creates a new ContentEventHandler.
func NewContentEventHandler(indexUsecase *usecase.IndexContentUsecase, logger *slog.Logger) *ContentEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &ContentEventHandler{
		indexUsecase: indexUsecase,
		logger:       logger,
		buffer:       make([]contentRef, 0, batchFlushSize),
		ctx:          ctx,
		cancel:       cancel,
		flushed:      make(chan struct{}, 1),
	}
	return h
}

// Stop cancels the background flush timer.
func (h *ContentEventHandler) Stop() {
	h.cancel()
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
	}
	h.mu.Unlock()
	// Flush remaining
	h.flush()
}

// HandleEvent processes a single event. Saves are buffered and flushed
// when the batch reaches batchFlushSize or after batchFlushInterval;
// deletes are applied immediately so stale items never linger.
func (h *ContentEventHandler) HandleEvent(ctx context.Context, event Event) error {
	switch event.EventType {
	case "ContentSaved":
		return h.handleContentSaved(ctx, event)
	case "ContentDeleted":
		return h.handleContentDeleted(ctx, event)
	default:
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}
}

func (h *ContentEventHandler) handleContentSaved(ctx context.Context, event Event) error {
	var payload ContentSavedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal ContentSaved payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	sourceType, err := domain.ParseSourceType(payload.SourceType)
	if err != nil {
		h.logger.Warn("ContentSaved event with unknown source type, skipping",
			"event_id", event.EventID,
			"source_type", payload.SourceType,
		)
		return nil
	}

	h.logger.Info("buffering ContentSaved event",
		"source_type", payload.SourceType,
		"id", payload.ID,
	)

	h.enqueue(contentRef{sourceType: sourceType, id: payload.ID})
	return nil
}

func (h *ContentEventHandler) handleContentDeleted(ctx context.Context, event Event) error {
	var payload ContentDeletedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal ContentDeleted payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	sourceType, err := domain.ParseSourceType(payload.SourceType)
	if err != nil {
		h.logger.Warn("ContentDeleted event with unknown source type, skipping",
			"event_id", event.EventID,
			"source_type", payload.SourceType,
		)
		return nil
	}

	h.logger.Info("removing deleted content from index",
		"source_type", payload.SourceType,
		"id", payload.ID,
	)

	return h.indexUsecase.ExecuteDeleted(ctx, sourceType, payload.ID)
}

// enqueue adds a content reference to the buffer and triggers a flush if
// the batch size threshold is reached. A timer is started on the first
// enqueue to ensure timely flushing even when events arrive slowly.
func (h *ContentEventHandler) enqueue(ref contentRef) {
	h.mu.Lock()
	h.buffer = append(h.buffer, ref)
	size := len(h.buffer)

	if size == 1 {
		// First item in batch: start the flush timer
		h.timer = time.AfterFunc(batchFlushInterval, func() {
			h.flush()
		})
	}
	h.mu.Unlock()

	if size >= batchFlushSize {
		h.flush()
	}
}

// flush re-fetches and indexes all buffered content references.
func (h *ContentEventHandler) flush() {
	h.mu.Lock()
	if len(h.buffer) == 0 {
		h.mu.Unlock()
		return
	}
	refs := h.buffer
	h.buffer = make([]contentRef, 0, batchFlushSize)
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.mu.Unlock()

	// Deduplicate references within the batch
	seen := make(map[contentRef]struct{}, len(refs))
	unique := make([]contentRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref]; !ok {
			seen[ref] = struct{}{}
			unique = append(unique, ref)
		}
	}

	h.logger.Info("flushing batch", "count", len(unique))

	indexed := 0
	for _, ref := range unique {
		if err := h.indexUsecase.ExecuteSavedByID(h.ctx, ref.sourceType, ref.id); err != nil {
			h.logger.Error("batch indexing failed for item",
				"source_type", ref.sourceType.String(),
				"id", ref.id,
				"error", err,
			)
			continue
		}
		indexed++
	}

	h.logger.Info("batch indexed successfully", "indexed", indexed)

	// Signal flush completion (non-blocking for tests)
	select {
	case h.flushed <- struct{}{}:
	default:
	}
}
