package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// GetForUpdate y UpdateStock solo deben usarse dentro de una transacción:
// son el camino exclusivo del motor de consistencia para escribir stock.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
}
