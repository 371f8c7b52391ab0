package rabbitmq

import (
	"context"
	"time"

	"github.com/rafaelleal24/cart/internal/core/domain"
	"github.com/rafaelleal24/cart/internal/core/logger"
	"github.com/rafaelleal24/cart/internal/core/port"
)

// Notifier forwards user facing messages as cart.notification events.
type Notifier struct {
	broker port.BrokerPort
}

func NewNotifier(broker port.BrokerPort) port.NotifierPort {
	return &Notifier{broker: broker}
}

func (n *Notifier) Notify(ctx context.Context, message string) {
	event := domain.NewCartNotificationEvent(message, time.Now())
	if err := n.broker.Publish(ctx, event); err != nil {
		logger.Error(ctx, "broker: notification dropped", err, map[string]any{
			"event_id": event.EventID,
			"message":  message,
		})
	}
}
