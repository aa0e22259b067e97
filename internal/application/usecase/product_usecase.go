package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dgomezm/custodia-pos/internal/application/dto"
	"github.com/dgomezm/custodia-pos/internal/domain"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

// ProductUseCase catálogo de productos. El stock NO se edita por aquí: nace en
// cero y solo lo mueve el motor de inventario a través del libro de movimientos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create da de alta un producto con stock cero. Código de barras duplicado
// devuelve ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || !validSaleType(in.SaleType) {
		return nil, domain.ErrInvalidInput
	}
	if in.SaleCost.IsNegative() || in.PurchaseCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Barcode:      in.Barcode,
		Name:         in.Name,
		Stock:        decimal.Zero,
		SaleCost:     in.SaleCost,
		PurchaseCost: in.PurchaseCost,
		SaleType:     in.SaleType,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista productos (onlyActive filtra los desactivados).
func (uc *ProductUseCase) List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, onlyActive, limit, offset)
}

// Update modifica los datos del catálogo preservando el stock derivado.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if in.Name == "" || !validSaleType(in.SaleType) {
		return nil, domain.ErrInvalidInput
	}
	if in.SaleCost.IsNegative() || in.PurchaseCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	// Un producto con stock no puede volverse PRECIO_LIBRE: quedaría saldo
	// inalcanzable para el libro de movimientos.
	if in.SaleType == entity.SaleTypePrecioLibre && !product.Stock.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	product.Barcode = in.Barcode
	product.Name = in.Name
	product.SaleCost = in.SaleCost
	product.PurchaseCost = in.PurchaseCost
	product.SaleType = in.SaleType
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func validSaleType(saleType string) bool {
	switch saleType {
	case entity.SaleTypeUnidad, entity.SaleTypePeso, entity.SaleTypePrecioLibre:
		return true
	}
	return false
}
