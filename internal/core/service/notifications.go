package service

import (
	"context"
	"sync"

	"github.com/rafaelleal24/cart/internal/core/domain"
	"github.com/rafaelleal24/cart/internal/core/logger"
	"github.com/rafaelleal24/cart/internal/core/port"
	"github.com/rafaelleal24/cart/internal/core/serviceerrors"
)

// NotificationHub is the user facing message channel. Every message is
// logged, forwarded to the downstream notifiers and broadcast to in-process
// listeners.
type NotificationHub struct {
	downstream []port.NotifierPort

	mu        sync.RWMutex
	listeners map[int]func(string)
	nextID    int
}

func NewNotificationHub(downstream ...port.NotifierPort) *NotificationHub {
	return &NotificationHub{
		downstream: downstream,
		listeners:  make(map[int]func(string)),
	}
}

func (h *NotificationHub) Notify(ctx context.Context, message string) {
	logger.Info(ctx, "cart: notification", map[string]any{"message": message})

	for _, n := range h.downstream {
		n.Notify(ctx, message)
	}

	h.mu.RLock()
	listeners := make([]func(string), 0, len(h.listeners))
	for _, fn := range h.listeners {
		listeners = append(listeners, fn)
	}
	h.mu.RUnlock()

	for _, fn := range listeners {
		fn(message)
	}
}

// Listen registers fn for every future message. fn must not block.
func (h *NotificationHub) Listen(fn func(message string)) (stop func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.listeners[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// NotifyingCart layers the notification side effect over CartService. Each
// failed operation sends its user message to the notifier and still returns
// the error to the caller.
type NotifyingCart struct {
	cart     *CartService
	notifier port.NotifierPort
}

func NewNotifyingCart(cart *CartService, notifier port.NotifierPort) *NotifyingCart {
	return &NotifyingCart{cart: cart, notifier: notifier}
}

func (n *NotifyingCart) Cart() domain.Cart {
	return n.cart.Cart()
}

func (n *NotifyingCart) Subscribe(fn func(domain.Cart)) func() {
	return n.cart.Subscribe(fn)
}

func (n *NotifyingCart) AddProduct(ctx context.Context, productID domain.ProductID) error {
	return n.notify(ctx, n.cart.AddProduct(ctx, productID), serviceerrors.MessageAddFailed)
}

func (n *NotifyingCart) RemoveProduct(ctx context.Context, productID domain.ProductID) error {
	return n.notify(ctx, n.cart.RemoveProduct(ctx, productID), serviceerrors.MessageRemoveFailed)
}

func (n *NotifyingCart) UpdateProductAmount(ctx context.Context, productID domain.ProductID, amount int) error {
	return n.notify(ctx, n.cart.UpdateProductAmount(ctx, productID, amount), serviceerrors.MessageUpdateFailed)
}

func (n *NotifyingCart) notify(ctx context.Context, err error, fallback string) error {
	if err != nil {
		n.notifier.Notify(context.WithoutCancel(ctx), serviceerrors.UserMessage(err, fallback))
	}
	return err
}
