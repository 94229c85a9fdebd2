package repository

import (
	"context"

	"github.com/jhoicas/receituario-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	// Create devuelve domain.ErrConflict si el CPF o el CRM ya existen.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByCPF(ctx context.Context, cpf string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}
