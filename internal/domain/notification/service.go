package notification

import "context"

// Service delivers notifications asynchronously: enqueue is fire-and-forget,
// persistence is batched, live delivery goes through the SSE hub.
type Service interface {
	Notify(req CreateNotificationRequest)

	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, recipientID string, ids []string) error

	// Shutdown flushes queued notifications and stops the workers.
	Shutdown(ctx context.Context) error
}
