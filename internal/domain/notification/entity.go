package notification

import "time"

type Type string

const (
	TypeLeaveDecided    Type = "leave_request_decided"
	TypeLeaveSubmitted  Type = "leave_request_submitted"
	TypeMarkedAbsent    Type = "attendance_marked_absent"
	TypeLeaveEscalation Type = "leave_overlap_escalation"
)

type Notification struct {
	ID          string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	ReferenceID *string
	IsRead      bool
	CreatedAt   time.Time
}
