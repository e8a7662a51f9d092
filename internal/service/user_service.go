// Package service contains the business logic between HTTP handlers and
// repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/validation"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles account lifecycle and channel profiles.
type UserService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
}

type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type UpdateAccountInput struct {
	UserID   uint
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

type ChangePasswordInput struct {
	UserID      uint
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChannelProfile is a user profile seen as a channel, with subscription
// stats relative to the viewer.
type ChannelProfile struct {
	User            models.User `json:"user"`
	SubscriberCount int64       `json:"subscriberCount"`
	IsSubscribed    bool        `json:"isSubscribed"`
}

func NewUserService(userRepo repository.UserRepository, subRepo repository.SubscriptionRepository) *UserService {
	return &UserService{userRepo: userRepo, subRepo: subRepo}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		FullName: strings.TrimSpace(in.FullName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewValidationError("Username or email is already taken")
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// Login checks credentials against either username or email. The error is
// identical for unknown identity and wrong password.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" || in.Password == "" {
		return nil, models.NewValidationError("Identifier and password are required")
	}

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.userRepo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, models.NewInternalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateAccount applies the allow-listed profile fields. Empty fields are
// left unchanged.
func (s *UserService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (*models.User, error) {
	updates := map[string]any{}
	if v := strings.TrimSpace(in.FullName); v != "" {
		updates["full_name"] = v
	}
	if v := strings.TrimSpace(strings.ToLower(in.Email)); v != "" {
		if err := validation.ValidateEmail(v); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updates["email"] = v
	}
	if v := strings.TrimSpace(in.Avatar); v != "" {
		updates["avatar"] = v
	}
	if len(updates) == 0 {
		return nil, models.NewValidationError("No updatable fields provided")
	}

	if err := s.userRepo.Update(ctx, in.UserID, updates); err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewValidationError("Email is already taken")
		}
		return nil, err
	}
	return s.userRepo.GetByID(ctx, in.UserID)
}

func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	// The cached profile carries no password hash; fetch credentials fresh.
	user, err := s.userRepo.GetCredentials(ctx, in.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, in.UserID, string(hashed))
}

// GetChannelProfile loads a user as a channel, with the viewer's
// subscription state. viewerID may be zero for anonymous viewers.
func (s *UserService) GetChannelProfile(ctx context.Context, channelID, viewerID uint) (*ChannelProfile, error) {
	user, err := s.userRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	count, err := s.subRepo.SubscriberCount(ctx, channelID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	profile := &ChannelProfile{User: *user, SubscriberCount: count}
	if viewerID != 0 && viewerID != channelID {
		subscribed, err := s.subRepo.IsSubscribed(ctx, viewerID, channelID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		profile.IsSubscribed = subscribed
	}
	return profile, nil
}

// isUniqueViolation detects unique constraint errors from postgres, with a
// message fallback that also covers the sqlite test driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
