package domain

import (
	"time"

	"github.com/google/uuid"
)

type CartUpdatedEvent struct {
	EventID    string    `json:"event_id"`
	Items      Cart      `json:"items"`
	TotalItems int       `json:"total_items"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e *CartUpdatedEvent) GetName() string {
	return "cart.updated"
}

func (e *CartUpdatedEvent) GetEntityName() string {
	return "cart"
}

func NewCartUpdatedEvent(cart Cart, updatedAt time.Time) *CartUpdatedEvent {
	if cart == nil {
		cart = Cart{}
	}
	return &CartUpdatedEvent{
		EventID:    uuid.NewString(),
		Items:      cart,
		TotalItems: cart.TotalItems(),
		UpdatedAt:  updatedAt,
	}
}

type CartNotificationEvent struct {
	EventID   string    `json:"event_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *CartNotificationEvent) GetName() string {
	return "cart.notification"
}

func (e *CartNotificationEvent) GetEntityName() string {
	return "cart"
}

func NewCartNotificationEvent(message string, createdAt time.Time) *CartNotificationEvent {
	return &CartNotificationEvent{
		EventID:   uuid.NewString(),
		Message:   message,
		CreatedAt: createdAt,
	}
}
