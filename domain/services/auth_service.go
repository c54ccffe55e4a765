package services

import (
	"context"
	"fmt"

	"inovatrust/domain"
	"inovatrust/domain/entities"
	"inovatrust/domain/interfaces"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type authService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewAuthService creates the registration and login service
func NewAuthService(uowFactory interfaces.UnitOfWorkFactory) interfaces.AuthService {
	return &authService{uowFactory: uowFactory}
}

// Register creates a new account with a hashed password and a zeroed ledger
func (s *authService) Register(ctx context.Context, username, password, fullName, email string) (*entities.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := uow.UserRepository().Create(ctx, username, string(hashed), fullName, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, uow.Commit()
}

// Login verifies the credentials and returns the account
func (s *authService) Login(ctx context.Context, username, password string) (*entities.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, uow.Commit()
}

// GetUser returns the account by id
func (s *authService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return user, uow.Commit()
}
