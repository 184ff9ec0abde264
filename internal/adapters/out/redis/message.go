package redis

import (
	"encoding/json"
	"fmt"
	"time"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/notification"
	"fastfeet/internal/core/domain/model/order"
)

// Message is the JSON form of a notification, both in the outbox and on the
// pub/sub channel.
type Message struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"orderId"`
	RecipientID  string    `json:"recipientId"`
	TrackingCode string    `json:"trackingCode"`
	Status       string    `json:"status"`
	Text         string    `json:"text"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func encode(n notification.Notification) ([]byte, error) {
	return json.Marshal(Message{
		ID:           n.ID().String(),
		OrderID:      n.OrderID().String(),
		RecipientID:  n.RecipientID().String(),
		TrackingCode: n.TrackingCode(),
		Status:       n.Status().String(),
		Text:         n.Message(),
		OccurredAt:   n.OccurredAt(),
	})
}

func decode(raw string) (notification.Notification, error) {
	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return notification.Notification{}, fmt.Errorf("decode notification: %w", err)
	}

	id, err := kernel.UUIDFromString(msg.ID)
	if err != nil {
		return notification.Notification{}, err
	}
	orderID, err := kernel.UUIDFromString(msg.OrderID)
	if err != nil {
		return notification.Notification{}, err
	}
	recipientID, err := kernel.UUIDFromString(msg.RecipientID)
	if err != nil {
		return notification.Notification{}, err
	}
	status, err := order.ParseStatus(msg.Status)
	if err != nil {
		return notification.Notification{}, err
	}

	return notification.Restore(id, orderID, recipientID, msg.TrackingCode, status, msg.OccurredAt)
}
