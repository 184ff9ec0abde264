package http

import (
	"time"

	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/domain/model/recipient"
)

// OrderView is the external representation of an order. The tracking code
// and internal fields stay out of it.
type OrderView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	RecipientID string     `json:"recipientId"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	PickedUpAt  *time.Time `json:"pickedUpAt"`
	DeliveredAt *time.Time `json:"deliveredAt"`
}

func presentOrder(o *order.Order) OrderView {
	return OrderView{
		ID:          o.ID().String(),
		Title:       o.Title(),
		RecipientID: o.RecipientID().String(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		PickedUpAt:  o.PickedUpAt(),
		DeliveredAt: o.DeliveredAt(),
	}
}

func presentOrders(orders []*order.Order) []OrderView {
	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = presentOrder(o)
	}
	return views
}

type RecipientView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func presentRecipient(r *recipient.Recipient) RecipientView {
	return RecipientView{ID: r.ID().String(), Name: r.Name()}
}

type OrderListResponse struct {
	Orders []OrderView `json:"orders"`
}

type OrderDetailsResponse struct {
	Order     OrderView     `json:"order"`
	Recipient RecipientView `json:"recipient"`
}

type TrackedOrderResponse struct {
	TrackingCode string    `json:"trackingCode"`
	Order        OrderView `json:"order"`
}

type NewRecipientRequest struct {
	Name string `json:"name"`
}

type CreatedRecipientResponse struct {
	ID string `json:"id"`
}

type NewOrderRequest struct {
	RecipientID  string `json:"recipientId"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Title        string `json:"title"`
}

type CreatedOrderResponse struct {
	ID           string `json:"id"`
	TrackingCode string `json:"trackingCode"`
}

type DeliveryRequest struct {
	AttachmentID string `json:"attachmentId"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
