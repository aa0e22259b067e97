package repository

import (
	"context"

	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios/operadores.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
