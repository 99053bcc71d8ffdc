package notification

import "context"

type Repository interface {
	// CreateBatch inserts a batch of notifications in one round trip.
	CreateBatch(ctx context.Context, batch []Notification) error

	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]Notification, error)

	MarkRead(ctx context.Context, recipientID string, ids []string) error
}
