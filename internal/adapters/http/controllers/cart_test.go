package controllers_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/cart/internal/adapters/http/controllers"
	"github.com/rafaelleal24/cart/internal/adapters/memory"
	"github.com/rafaelleal24/cart/internal/core/domain"
	"github.com/rafaelleal24/cart/internal/core/port/mock"
	"github.com/rafaelleal24/cart/internal/core/service"
	"go.uber.org/mock/gomock"
)

type cartFixture struct {
	engine  *gin.Engine
	catalog *mock.MockCatalogPort
	cart    *service.NotifyingCart
}

func product(id domain.ProductID, amount int, name string) domain.Product {
	return domain.Product{
		ID:      id,
		Amount:  amount,
		Details: map[string]json.RawMessage{"name": json.RawMessage(`"` + name + `"`)},
	}
}

func setupCartController(t *testing.T, initial domain.Cart) *cartFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	ctrl := gomock.NewController(t)
	catalog := mock.NewMockCatalogPort(ctrl)
	snapshots := memory.NewSnapshotStore()
	if initial != nil {
		value, err := initial.MarshalSnapshot()
		if err != nil {
			t.Fatalf("failed to encode cart: %v", err)
		}
		if err := snapshots.Set(ctx, service.DefaultStorageKey, value); err != nil {
			t.Fatalf("failed to seed snapshot: %v", err)
		}
	}

	cartService, err := service.NewCartService(ctx, catalog, snapshots, nil, nil, "")
	if err != nil {
		t.Fatalf("failed to create cart service: %v", err)
	}
	hub := service.NewNotificationHub()
	notifying := service.NewNotifyingCart(cartService, hub)
	controller := controllers.NewCartController(notifying, hub)

	engine := gin.New()
	engine.GET("/cart", controller.GetCart)
	engine.GET("/cart/events", controller.Events)
	engine.POST("/cart/items", controller.AddProduct)
	engine.PATCH("/cart/items/:id", controller.UpdateProductAmount)
	engine.DELETE("/cart/items/:id", controller.RemoveProduct)

	return &cartFixture{engine: engine, catalog: catalog, cart: notifying}
}

func (f *cartFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func assertResponse(t *testing.T, rec *httptest.ResponseRecorder, status int, body string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (body %s)", status, rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != body {
		t.Fatalf("expected body %s, got %s", body, got)
	}
}

func TestCartController_GetCart(t *testing.T) {
	t.Run("empty cart renders an empty list", func(t *testing.T) {
		f := setupCartController(t, nil)
		assertResponse(t, f.do(http.MethodGet, "/cart", ""), http.StatusOK, `{"items":[],"total_items":0}`)
	})

	t.Run("items are flat in insertion order", func(t *testing.T) {
		f := setupCartController(t, domain.Cart{product(2, 1, "B"), product(1, 3, "A")})
		assertResponse(t, f.do(http.MethodGet, "/cart", ""), http.StatusOK,
			`{"items":[{"amount":1,"id":2,"name":"B"},{"amount":3,"id":1,"name":"A"}],"total_items":4}`)
	})
}

func TestCartController_AddProduct(t *testing.T) {
	t.Run("new product is added with amount one", func(t *testing.T) {
		f := setupCartController(t, nil)
		f.catalog.EXPECT().GetProduct(gomock.Any(), domain.ProductID(1)).
			Return(&domain.CatalogProduct{ID: 1, Details: map[string]json.RawMessage{"name": json.RawMessage(`"X"`)}}, nil)

		assertResponse(t, f.do(http.MethodPost, "/cart/items", `{"product_id":1}`), http.StatusOK,
			`{"items":[{"amount":1,"id":1,"name":"X"}],"total_items":1}`)
	})

	t.Run("stock exceeded maps to conflict", func(t *testing.T) {
		f := setupCartController(t, domain.Cart{product(1, 2, "X")})
		f.catalog.EXPECT().GetStock(gomock.Any(), domain.ProductID(1)).Return(&domain.Stock{ID: 1, Amount: 2}, nil)

		assertResponse(t, f.do(http.MethodPost, "/cart/items", `{"product_id":1}`), http.StatusConflict,
			`{"error":"requested quantity exceeds stock"}`)
	})

	t.Run("catalog failure maps to bad gateway", func(t *testing.T) {
		f := setupCartController(t, nil)
		f.catalog.EXPECT().GetProduct(gomock.Any(), domain.ProductID(9)).Return(nil, errors.New("boom"))

		assertResponse(t, f.do(http.MethodPost, "/cart/items", `{"product_id":9}`), http.StatusBadGateway,
			`{"error":"failed to add product"}`)
	})

	t.Run("invalid body is rejected before any lookup", func(t *testing.T) {
		f := setupCartController(t, nil)
		rec := f.do(http.MethodPost, "/cart/items", `{"product_id":0}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestCartController_UpdateProductAmount(t *testing.T) {
	t.Run("sets the amount", func(t *testing.T) {
		f := setupCartController(t, domain.Cart{product(1, 1, "X")})
		f.catalog.EXPECT().GetStock(gomock.Any(), domain.ProductID(1)).Return(&domain.Stock{ID: 1, Amount: 5}, nil)

		assertResponse(t, f.do(http.MethodPatch, "/cart/items/1", `{"amount":4}`), http.StatusOK,
			`{"items":[{"amount":4,"id":1,"name":"X"}],"total_items":4}`)
	})

	t.Run("amount below one is ignored", func(t *testing.T) {
		f := setupCartController(t, domain.Cart{product(1, 2, "X")})

		assertResponse(t, f.do(http.MethodPatch, "/cart/items/1", `{"amount":0}`), http.StatusOK,
			`{"items":[{"amount":2,"id":1,"name":"X"}],"total_items":2}`)
	})

	t.Run("absent product maps to not found", func(t *testing.T) {
		f := setupCartController(t, nil)
		f.catalog.EXPECT().GetStock(gomock.Any(), domain.ProductID(3)).Return(&domain.Stock{ID: 3, Amount: 5}, nil)

		assertResponse(t, f.do(http.MethodPatch, "/cart/items/3", `{"amount":2}`), http.StatusNotFound,
			`{"error":"failed to update quantity"}`)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := setupCartController(t, nil)
		assertResponse(t, f.do(http.MethodPatch, "/cart/items/abc", `{"amount":2}`), http.StatusBadRequest,
			`{"error":"Invalid product ID"}`)
	})

	t.Run("missing amount", func(t *testing.T) {
		f := setupCartController(t, nil)
		rec := f.do(http.MethodPatch, "/cart/items/1", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestCartController_RemoveProduct(t *testing.T) {
	t.Run("removes the product", func(t *testing.T) {
		f := setupCartController(t, domain.Cart{product(1, 1, "A"), product(2, 1, "B")})
		assertResponse(t, f.do(http.MethodDelete, "/cart/items/1", ""), http.StatusOK,
			`{"items":[{"amount":1,"id":2,"name":"B"}],"total_items":1}`)
	})

	t.Run("absent product maps to not found", func(t *testing.T) {
		f := setupCartController(t, nil)
		assertResponse(t, f.do(http.MethodDelete, "/cart/items/1", ""), http.StatusNotFound,
			`{"error":"failed to remove product"}`)
	})
}

type sseEvent struct {
	name string
	data string
}

func readEvent(t *testing.T, reader *bufio.Reader) sseEvent {
	t.Helper()
	var event sseEvent
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("failed to read event stream: %v", err)
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			if event.name != "" {
				return event
			}
		case strings.HasPrefix(line, "event:"):
			event.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			event.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func TestCartController_Events(t *testing.T) {
	f := setupCartController(t, nil)
	srv := httptest.NewServer(f.engine)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/cart/events", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to open event stream: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("expected event stream content type, got %q", ct)
	}

	reader := bufio.NewReader(resp.Body)

	initial := readEvent(t, reader)
	if initial.name != "cart" || initial.data != `{"items":[],"total_items":0}` {
		t.Fatalf("unexpected initial event %+v", initial)
	}

	f.catalog.EXPECT().GetProduct(gomock.Any(), domain.ProductID(1)).
		Return(&domain.CatalogProduct{ID: 1, Details: map[string]json.RawMessage{"name": json.RawMessage(`"X"`)}}, nil)
	if err := f.cart.AddProduct(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := readEvent(t, reader)
	if updated.name != "cart" || updated.data != `{"items":[{"amount":1,"id":1,"name":"X"}],"total_items":1}` {
		t.Fatalf("unexpected update event %+v", updated)
	}

	if err := f.cart.RemoveProduct(ctx, 2); err == nil {
		t.Fatal("expected an error removing an absent product")
	}

	notification := readEvent(t, reader)
	if notification.name != "notification" || notification.data != `{"message":"failed to remove product"}` {
		t.Fatalf("unexpected notification event %+v", notification)
	}
}
