package port

import (
	"context"

	"github.com/rafaelleal24/cart/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type CatalogPort interface {
	GetProduct(ctx context.Context, id domain.ProductID) (*domain.CatalogProduct, error)
	GetStock(ctx context.Context, id domain.ProductID) (*domain.Stock, error)
}
