package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/notification"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateBatch(ctx context.Context, batch []notification.Notification) error {
	if len(batch) == 0 {
		return nil
	}

	q := r.db.Querier(ctx)

	b := &pgx.Batch{}
	for _, n := range batch {
		b.Queue(`
			INSERT INTO notifications (recipient_id, type, title, message, reference_id)
			VALUES ($1, $2, $3, $4, $5)
		`, n.RecipientID, n.Type, n.Title, n.Message, n.ReferenceID)
	}

	results := q.SendBatch(ctx, b)
	defer results.Close()

	for range batch {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert notification batch: %w", err)
		}
	}
	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]notification.Notification, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT id, recipient_id, type, title, message, reference_id, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var result []notification.Notification
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message,
			&n.ReferenceID, &n.IsRead, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notification rows: %w", err)
	}

	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	q := r.db.Querier(ctx)

	_, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE recipient_id = $1 AND id = ANY($2)
	`, recipientID, ids)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
