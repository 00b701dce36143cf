package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeSeatBlocked NotificationType = "SEAT_BLOCKED"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSending NotificationStatus = "SENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// SeatBlockNotification is the message carried through Kafka when an admin
// blocks a seat that still has upcoming bookings.
type SeatBlockNotification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`

	BookingID   uuid.UUID `json:"booking_id"`
	SeatCode    string    `json:"seat_code"`
	BookingDate time.Time `json:"booking_date"`
	Slot        string    `json:"slot"`
	Reason      string    `json:"reason"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

func NewSeatBlockNotification(recipientID uuid.UUID, email, name string, bookingID uuid.UUID, seatCode string, bookingDate time.Time, slot, reason string) *SeatBlockNotification {
	now := time.Now().UTC()
	return &SeatBlockNotification{
		ID:             uuid.New(),
		Type:           NotificationTypeSeatBlocked,
		RecipientID:    recipientID,
		RecipientEmail: email,
		RecipientName:  name,
		BookingID:      bookingID,
		SeatCode:       seatCode,
		BookingDate:    bookingDate,
		Slot:           slot,
		Reason:         reason,
		Status:         NotificationStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// GetPartitionKey routes all notices for one recipient to one partition, so
// a user receives them in order.
func (n *SeatBlockNotification) GetPartitionKey() string {
	return n.RecipientID.String()
}

func (n *SeatBlockNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *SeatBlockNotification) MarkSent() {
	now := time.Now().UTC()
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *SeatBlockNotification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	n.UpdatedAt = time.Now().UTC()

	errorStr := err.Error()
	n.LastError = &errorStr
}
