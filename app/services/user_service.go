package services

import (
	"context"
	"fmt"

	"github.com/proshop/backend/app/helpers"
	"github.com/proshop/backend/app/models"
	"github.com/proshop/backend/app/repositories"
)

type UserService struct {
	userRepo repositories.UserRepositoryImpl
}

func NewUserService(userRepo repositories.UserRepositoryImpl) *UserService {
	return &UserService{userRepo: userRepo}
}

// normalizeAccount keeps the username mirroring the email address. Runs on
// every create and update instead of relying on an implicit persistence hook.
func normalizeAccount(user *models.User) {
	user.Username = user.Email
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email %s: %w", email, err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: password,
	}
	normalizeAccount(user)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// UpdateProfile lets a user change their own name, email and optionally
// password. The username mirrors the new email.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email, password string) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		}
	}

	user.Name = name
	user.Email = email
	normalizeAccount(user)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if password != "" {
		hash := helpers.HashPassword(password)
		if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// AdminUpdate changes a user's name, email and admin flag.
func (s *UserService) AdminUpdate(ctx context.Context, userID, name, email string, isAdmin bool) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.IsAdmin = isAdmin
	normalizeAccount(user)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
