package config

import (
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Cart.StorageKey != "@RocketShoes:cart" {
		t.Fatalf("unexpected storage key %q", cfg.Cart.StorageKey)
	}
	if cfg.Cart.StorageDriver != StorageRedis {
		t.Fatalf("unexpected storage driver %q", cfg.Cart.StorageDriver)
	}
	if cfg.Catalog.Timeout != 10*time.Second {
		t.Fatalf("unexpected catalog timeout %v", cfg.Catalog.Timeout)
	}
	if cfg.RabbitMQ.Enabled {
		t.Fatal("expected rabbitmq disabled by default")
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("CART_STORAGE_DRIVER", "memory")
	t.Setenv("CATALOG_BASE_URL", "http://catalog:3333")
	t.Setenv("CATALOG_TIMEOUT", "750ms")
	t.Setenv("HTTP_RATE_LIMIT", "5")
	t.Setenv("HTTP_RATE_WINDOW", "not-a-duration")
	t.Setenv("RABBITMQ_ENABLED", "true")

	cfg := NewConfig()

	if cfg.Cart.StorageDriver != StorageMemory {
		t.Fatalf("unexpected storage driver %q", cfg.Cart.StorageDriver)
	}
	if cfg.Catalog.BaseURL != "http://catalog:3333" {
		t.Fatalf("unexpected base url %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Timeout != 750*time.Millisecond {
		t.Fatalf("unexpected timeout %v", cfg.Catalog.Timeout)
	}
	if cfg.HTTP.RateLimit != 5 {
		t.Fatalf("unexpected rate limit %d", cfg.HTTP.RateLimit)
	}
	if cfg.HTTP.RateWindow != time.Minute {
		t.Fatalf("expected default window on bad input, got %v", cfg.HTTP.RateWindow)
	}
	if !cfg.RabbitMQ.Enabled {
		t.Fatal("expected rabbitmq enabled")
	}
}
