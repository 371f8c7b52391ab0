package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rafaelleal24/cart/internal/core/domain"
	"github.com/rafaelleal24/cart/internal/core/logger"
	"github.com/rafaelleal24/cart/internal/core/port"
	"github.com/rafaelleal24/cart/internal/core/serviceerrors"
)

const DefaultStorageKey = "@RocketShoes:cart"

const (
	opAddProduct          = "add_product"
	opRemoveProduct       = "remove_product"
	opUpdateProductAmount = "update_product_amount"

	outcomeOK   = "ok"
	outcomeNoop = "noop"
)

var (
	// ErrProductNotInCart is the cause wrapped by RemoveFailed and UpdateFailed
	// when the product is absent.
	ErrProductNotInCart = errors.New("product not in cart")

	errStockNotFound   = errors.New("stock not found")
	errProductNotFound = errors.New("product not found")
)

type subscriber struct {
	id int
	fn func(domain.Cart)
}

// CartService owns the session cart. Operations read the current cart, do
// their remote lookups and then commit a cart derived from what they read;
// nothing serializes whole operations, so overlapping calls are last writer
// wins. Once issued, an operation runs to completion: caller cancellation
// is not propagated to the lookups or the commit.
type CartService struct {
	catalog    port.CatalogPort
	snapshots  port.SnapshotPort
	broker     port.BrokerPort
	metrics    port.MetricsPort
	storageKey string

	// commitMu orders whole commits so the snapshot and subscribers see
	// carts in the same order as memory.
	commitMu    sync.Mutex
	mu          sync.RWMutex
	cart        domain.Cart
	subscribers []subscriber
	nextSubID   int
}

// NewCartService restores the cart from the snapshot stored under storageKey.
// broker and metrics may be nil.
func NewCartService(
	ctx context.Context,
	catalog port.CatalogPort,
	snapshots port.SnapshotPort,
	broker port.BrokerPort,
	metrics port.MetricsPort,
	storageKey string,
) (*CartService, error) {
	if storageKey == "" {
		storageKey = DefaultStorageKey
	}
	s := &CartService{
		catalog:    catalog,
		snapshots:  snapshots,
		broker:     broker,
		metrics:    metrics,
		storageKey: storageKey,
	}
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CartService) restore(ctx context.Context) error {
	snapshot, found, err := s.snapshots.Get(ctx, s.storageKey)
	if err != nil {
		return fmt.Errorf("failed to read cart snapshot: %w", err)
	}
	if !found {
		s.cart = domain.Cart{}
		logger.Info(ctx, "cart: no snapshot, starting empty", map[string]any{"storage_key": s.storageKey})
		return nil
	}

	cart, err := domain.ParseSnapshot(snapshot)
	if err != nil {
		logger.Error(ctx, "cart: snapshot unreadable, starting empty", err, map[string]any{
			"storage_key": s.storageKey,
		})
		s.cart = domain.Cart{}
		return nil
	}

	s.cart = sanitize(ctx, cart)
	logger.Info(ctx, "cart: restored from snapshot", map[string]any{
		"storage_key": s.storageKey,
		"products":    len(s.cart),
	})
	return nil
}

// sanitize drops entries that break the cart invariants: amount below one
// or a repeated product id (the first entry wins).
func sanitize(ctx context.Context, cart domain.Cart) domain.Cart {
	seen := make(map[domain.ProductID]bool, len(cart))
	out := make(domain.Cart, 0, len(cart))
	for _, p := range cart {
		if p.Amount < 1 || seen[p.ID] {
			logger.Warn(ctx, "cart: dropping invalid snapshot entry", map[string]any{
				"product_id": p.ID,
				"amount":     p.Amount,
			})
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// Cart returns the current cart. The result is a copy and safe to keep.
func (s *CartService) Cart() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Subscribe registers fn to be called with the new cart after every commit.
// fn runs on the committing goroutine; it must not block or mutate the cart.
func (s *CartService) Subscribe(fn func(domain.Cart)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subscribers {
				if sub.id == id {
					s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *CartService) AddProduct(ctx context.Context, productID domain.ProductID) error {
	start := time.Now()
	ctx = context.WithoutCancel(ctx)
	return s.track(opAddProduct, start, s.addProduct(ctx, productID))
}

func (s *CartService) addProduct(ctx context.Context, productID domain.ProductID) error {
	attrs := map[string]any{"product_id": productID}
	cart := s.Cart()

	if existing, ok := cart.Find(productID); ok {
		stock, err := s.getStock(ctx, productID)
		if err != nil {
			logger.Error(ctx, "cart: stock lookup failed", err, attrs)
			return serviceerrors.NewAddFailedError(err)
		}
		if existing.Amount >= stock.Amount {
			logger.Warn(ctx, "cart: stock exceeded", map[string]any{
				"product_id": productID,
				"amount":     existing.Amount + 1,
				"stock":      stock.Amount,
			})
			return serviceerrors.NewStockExceededError()
		}

		next, _ := cart.SetAmount(productID, existing.Amount+1)
		if err := s.commit(ctx, next); err != nil {
			return serviceerrors.NewAddFailedError(err)
		}
		logger.Info(ctx, "cart: product amount incremented", map[string]any{
			"product_id": productID,
			"amount":     existing.Amount + 1,
		})
		return nil
	}

	catalogProduct, err := s.catalog.GetProduct(ctx, productID)
	if err == nil && catalogProduct == nil {
		err = errProductNotFound
	}
	if err != nil {
		logger.Error(ctx, "cart: product lookup failed", err, attrs)
		return serviceerrors.NewAddFailedError(err)
	}

	next := cart.Append(*domain.NewCartProduct(catalogProduct, 1))
	if err := s.commit(ctx, next); err != nil {
		return serviceerrors.NewAddFailedError(err)
	}
	logger.Info(ctx, "cart: product added", attrs)
	return nil
}

func (s *CartService) RemoveProduct(ctx context.Context, productID domain.ProductID) error {
	start := time.Now()
	ctx = context.WithoutCancel(ctx)
	return s.track(opRemoveProduct, start, s.removeProduct(ctx, productID))
}

func (s *CartService) removeProduct(ctx context.Context, productID domain.ProductID) error {
	attrs := map[string]any{"product_id": productID}

	next, ok := s.Cart().Remove(productID)
	if !ok {
		logger.Warn(ctx, "cart: remove of product not in cart", attrs)
		return serviceerrors.NewRemoveFailedError(ErrProductNotInCart)
	}
	if err := s.commit(ctx, next); err != nil {
		return serviceerrors.NewRemoveFailedError(err)
	}
	logger.Info(ctx, "cart: product removed", attrs)
	return nil
}

// UpdateProductAmount sets the amount of a product already in the cart.
// Amounts below one are ignored without error.
func (s *CartService) UpdateProductAmount(ctx context.Context, productID domain.ProductID, amount int) error {
	start := time.Now()
	if amount < 1 {
		s.observe(opUpdateProductAmount, outcomeNoop, start)
		return nil
	}
	ctx = context.WithoutCancel(ctx)
	return s.track(opUpdateProductAmount, start, s.updateProductAmount(ctx, productID, amount))
}

func (s *CartService) updateProductAmount(ctx context.Context, productID domain.ProductID, amount int) error {
	attrs := map[string]any{"product_id": productID, "amount": amount}

	stock, err := s.getStock(ctx, productID)
	if err != nil {
		logger.Error(ctx, "cart: stock lookup failed", err, attrs)
		return serviceerrors.NewUpdateFailedError(err)
	}
	if amount > stock.Amount {
		logger.Warn(ctx, "cart: stock exceeded", map[string]any{
			"product_id": productID,
			"amount":     amount,
			"stock":      stock.Amount,
		})
		return serviceerrors.NewStockExceededError()
	}

	next, ok := s.Cart().SetAmount(productID, amount)
	if !ok {
		logger.Warn(ctx, "cart: update of product not in cart", attrs)
		return serviceerrors.NewUpdateFailedError(ErrProductNotInCart)
	}
	if err := s.commit(ctx, next); err != nil {
		return serviceerrors.NewUpdateFailedError(err)
	}
	logger.Info(ctx, "cart: product amount updated", attrs)
	return nil
}

func (s *CartService) getStock(ctx context.Context, productID domain.ProductID) (*domain.Stock, error) {
	stock, err := s.catalog.GetStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, errStockNotFound
	}
	return stock, nil
}

// commit swaps the in-memory cart first and writes the snapshot second. A
// failed write leaves the new cart in memory.
func (s *CartService) commit(ctx context.Context, next domain.Cart) error {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	s.cart = next
	subscribers := make([]subscriber, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	err := s.persist(ctx, next)

	for _, sub := range subscribers {
		sub.fn(next.Clone())
	}
	s.publish(ctx, next)

	return err
}

func (s *CartService) persist(ctx context.Context, cart domain.Cart) error {
	snapshot, err := cart.MarshalSnapshot()
	if err != nil {
		logger.Error(ctx, "cart: encode snapshot failed", err, nil)
		return err
	}
	if err := s.snapshots.Set(ctx, s.storageKey, snapshot); err != nil {
		logger.Error(ctx, "cart: persist snapshot failed", err, map[string]any{
			"storage_key": s.storageKey,
		})
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (s *CartService) publish(ctx context.Context, cart domain.Cart) {
	if s.broker == nil {
		return
	}
	event := domain.NewCartUpdatedEvent(cart.Clone(), time.Now())
	if err := s.broker.Publish(ctx, event); err != nil {
		logger.Error(ctx, "cart: publish update failed", err, map[string]any{
			"event_id": event.EventID,
		})
	}
}

func (s *CartService) track(operation string, start time.Time, err error) error {
	s.observe(operation, outcomeOf(err), start)
	return err
}

func (s *CartService) observe(operation, outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, outcome, time.Since(start))
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeOK
	}
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind.String()
	}
	return "error"
}
