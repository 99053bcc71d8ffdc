package notification

type CreateNotificationRequest struct {
	RecipientID string
	Type        Type
	Title       string
	Message     string
	ReferenceID *string
}

type NotificationResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	ReferenceID *string `json:"reference_id,omitempty"`
	IsRead      bool    `json:"is_read"`
	CreatedAt   string  `json:"created_at"`
}
