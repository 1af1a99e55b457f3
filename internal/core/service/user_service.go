package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/accounthub/account-system/internal/core/domain"
	"github.com/accounthub/account-system/internal/core/ports"
)

// UserService implements account CRUD on top of the user repository.
// Passwords are hashed with bcrypt before they ever reach the store.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Register(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") || in.Password == "" {
		return nil, domain.ErrInvalidUserData
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Gender:       in.Gender,
		PasswordHash: string(hash),
		IsActive:     true,
		DateJoined:   time.Now().UTC(),
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	return s.repo.Create(ctx, user)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies the provided fields to an existing account. Empty input
// fields leave the stored value untouched; a new password is re-hashed.
func (s *UserService) Update(ctx context.Context, id string, in ports.UserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(in.Email); email != "" {
		if !strings.Contains(email, "@") {
			return nil, domain.ErrInvalidUserData
		}
		user.Email = email
	}
	if in.Username != "" {
		user.Username = in.Username
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Gender != "" {
		user.Gender = in.Gender
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	return s.repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
