package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/notification"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/sse"
)

const (
	queueSize     = 1024
	maxBatchSize  = 50
	flushInterval = 2 * time.Second
)

// NotificationServiceImpl persists notifications in batches off the request
// path and fans them out live over the SSE hub.
type NotificationServiceImpl struct {
	notification.Repository
	hub    *sse.Hub
	logger *slog.Logger

	queue     chan notification.CreateNotificationRequest
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewNotificationService(repo notification.Repository, hub *sse.Hub, logger *slog.Logger, workers int) notification.Service {
	if workers < 1 {
		workers = 1
	}

	s := &NotificationServiceImpl{
		Repository: repo,
		hub:        hub,
		logger:     logger,
		queue:      make(chan notification.CreateNotificationRequest, queueSize),
	}

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go s.worker()
	}

	return s
}

// Notify implements notification.Service. It never blocks the caller; when the
// queue is full the notification is dropped and logged.
func (s *NotificationServiceImpl) Notify(req notification.CreateNotificationRequest) {
	select {
	case s.queue <- req:
	default:
		s.logger.Warn("notification queue full, dropping notification",
			"recipient_id", req.RecipientID,
			"type", string(req.Type),
		)
	}
}

func (s *NotificationServiceImpl) worker() {
	defer s.wg.Done()

	batch := make([]notification.Notification, 0, maxBatchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case req, ok := <-s.queue:
			if !ok {
				s.flush(batch)
				return
			}
			batch = append(batch, notification.Notification{
				RecipientID: req.RecipientID,
				Type:        req.Type,
				Title:       req.Title,
				Message:     req.Message,
				ReferenceID: req.ReferenceID,
			})
			if len(batch) >= maxBatchSize {
				s.flush(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *NotificationServiceImpl) flush(batch []notification.Notification) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Repository.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("failed to persist notification batch", "error", err, "count", len(batch))
		return
	}

	for _, n := range batch {
		s.hub.Publish(n.RecipientID, sse.Event{
			RecipientID: n.RecipientID,
			Name:        "notification",
			Data: notification.NotificationResponse{
				Type:        string(n.Type),
				Title:       n.Title,
				Message:     n.Message,
				ReferenceID: n.ReferenceID,
			},
		})
	}
}

// ListByRecipient implements notification.Service.
func (s *NotificationServiceImpl) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]notification.NotificationResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	records, err := s.Repository.ListByRecipient(ctx, recipientID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]notification.NotificationResponse, 0, len(records))
	for _, n := range records {
		result = append(result, notification.NotificationResponse{
			ID:          n.ID,
			Type:        string(n.Type),
			Title:       n.Title,
			Message:     n.Message,
			ReferenceID: n.ReferenceID,
			IsRead:      n.IsRead,
			CreatedAt:   n.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

// MarkRead implements notification.Service.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	return s.Repository.MarkRead(ctx, recipientID, ids)
}

// Shutdown implements notification.Service. Closing the queue lets each worker
// flush its remaining batch before exiting.
func (s *NotificationServiceImpl) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.queue)
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
