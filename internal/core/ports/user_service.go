package ports

import (
	"context"

	"github.com/accounthub/account-system/internal/core/domain"
)

// UserInput carries the mutable account fields accepted from clients.
type UserInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Gender    string
	IsActive  *bool
}

type UserService interface {
	Register(ctx context.Context, in UserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
