package mongo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/rafaelleal24/cart/internal/adapters/config"
	adaptmongo "github.com/rafaelleal24/cart/internal/adapters/mongo"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var testDB *mongo.Database

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		log.Fatalf("failed to start mongodb container: %v", err)
	}

	endpoint, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	client, err := adaptmongo.NewConnection(config.MongoConfig{
		URI:                    endpoint,
		Timeout:                10 * time.Second,
		MaxPoolSize:            5,
		ConnectTimeout:         30 * time.Second,
		ServerSelectionTimeout: 30 * time.Second,
	})
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}

	testDB = client.Database("cart_test")

	code := m.Run()

	_ = adaptmongo.Disconnect(client)
	_ = container.Terminate(ctx)

	os.Exit(code)
}

func TestSnapshotStore(t *testing.T) {
	store := adaptmongo.NewSnapshotStore(testDB, "snapshots")
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		_, found, err := store.Get(ctx, "@RocketShoes:cart")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found {
			t.Fatal("expected snapshot to be absent")
		}
	})

	t.Run("set then get", func(t *testing.T) {
		value := `[{"amount":2,"id":1,"title":"Tênis"}]`
		if err := store.Set(ctx, "cart-a", value); err != nil {
			t.Fatalf("expected no error on set, got %v", err)
		}

		got, found, err := store.Get(ctx, "cart-a")
		if err != nil {
			t.Fatalf("expected no error on get, got %v", err)
		}
		if !found || got != value {
			t.Fatalf("expected %q, got %q (found=%v)", value, got, found)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		if err := store.Set(ctx, "cart-b", "[1]"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := store.Set(ctx, "cart-b", "[]"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, _, err := store.Get(ctx, "cart-b")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "[]" {
			t.Fatalf("expected last write, got %q", got)
		}

		count, err := testDB.Collection("snapshots").CountDocuments(ctx, bson.M{"_id": "cart-b"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if count != 1 {
			t.Fatalf("expected a single document, got %d", count)
		}
	})
}
