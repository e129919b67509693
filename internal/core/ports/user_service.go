package ports

import (
	"context"

	"github.com/chirper/chirper-api/internal/core/domain"
)

// UserService defines use-case operations for user accounts. Returned users
// never carry a password.
type UserService interface {
	Register(ctx context.Context, in domain.UserRegister) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in domain.UserRegister) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
