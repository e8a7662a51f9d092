package service

import (
	"context"
	"errors"
	"testing"

	"clipstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestUserService_Signup_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo(), noopSubRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input SignupInput
	}{
		{"short username", SignupInput{Username: "ab", Email: "a@b.com", Password: "SecurePass12!"}},
		{"bad email", SignupInput{Username: "alice", Email: "not-an-email", Password: "SecurePass12!"}},
		{"weak password", SignupInput{Username: "alice", Email: "a@b.com", Password: "weak"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Signup(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestUserService_Signup_DuplicateIdentity(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, _ *models.User) error {
		return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	}
	svc := NewUserService(repo, noopSubRepo())

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice", Email: "a@b.com", Password: "SecurePass12!",
	})
	assertValidationError(t, err)
}

func TestUserService_Signup_HashesPassword(t *testing.T) {
	t.Parallel()

	var created *models.User
	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, u *models.User) error {
		created = u
		return nil
	}
	svc := NewUserService(repo, noopSubRepo())

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice", Email: "A@B.com", Password: "SecurePass12!",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "SecurePass12!", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("SecurePass12!")))
	assert.Equal(t, "a@b.com", created.Email)
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1, Password: hashPassword(t, "RightPass12!")}, nil
		}
		svc := NewUserService(repo, noopSubRepo())

		_, err := svc.Login(ctx, LoginInput{Identifier: "alice", Password: "WrongPass12!"})
		assertUnauthorizedError(t, err)
	})

	t.Run("unknown identity yields the same error", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewUserService(repo, noopSubRepo())

		_, err := svc.Login(ctx, LoginInput{Identifier: "ghost@example.com", Password: "AnyPass1234!"})
		assertUnauthorizedError(t, err)
	})

	t.Run("valid credentials by email", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			assert.Equal(t, "alice@example.com", email)
			return &models.User{ID: 7, Password: hashPassword(t, "RightPass12!")}, nil
		}
		svc := NewUserService(repo, noopSubRepo())

		user, err := svc.Login(ctx, LoginInput{Identifier: "Alice@Example.com", Password: "RightPass12!"})
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
	})
}

func TestUserService_UpdateAccount_AllowList(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	repo := noopUserRepo()
	repo.updateFn = func(_ context.Context, _ uint, updates map[string]any) error {
		captured = updates
		return nil
	}
	svc := NewUserService(repo, noopSubRepo())

	_, err := svc.UpdateAccount(context.Background(), UpdateAccountInput{
		UserID:   1,
		FullName: "Alice A.",
		Email:    "new@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"full_name": "Alice A.", "email": "new@example.com"}, captured)
}

func TestUserService_UpdateAccount_NoFields(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo(), noopSubRepo())
	_, err := svc.UpdateAccount(context.Background(), UpdateAccountInput{UserID: 1})
	assertValidationError(t, err)
}

func TestUserService_ChangePassword_WrongCurrent(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getCredentialsFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Password: hashPassword(t, "RightPass12!")}, nil
	}
	svc := NewUserService(repo, noopSubRepo())

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID: 1, OldPassword: "WrongPass12!", NewPassword: "AnotherPass12!",
	})
	assertUnauthorizedError(t, err)
}

func TestUserService_ChangePassword_BypassesCachedUser(t *testing.T) {
	t.Parallel()

	// A cached profile round-trips through JSON and loses the password hash.
	// The password check must read credentials from the database instead.
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice"}, nil
	}
	repo.getCredentialsFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Password: hashPassword(t, "RightPass12!")}, nil
	}
	var newHash string
	repo.updatePasswordFn = func(_ context.Context, _ uint, hashed string) error {
		newHash = hashed
		return nil
	}
	svc := NewUserService(repo, noopSubRepo())

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID: 1, OldPassword: "RightPass12!", NewPassword: "AnotherPass12!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, newHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("AnotherPass12!")))
}

func TestUserService_GetChannelProfile(t *testing.T) {
	t.Parallel()

	subs := noopSubRepo()
	subs.subscriberCountFn = func(_ context.Context, _ uint) (int64, error) { return 42, nil }
	subs.isSubscribedFn = func(_ context.Context, subscriberID, channelID uint) (bool, error) {
		return subscriberID == 9 && channelID == 3, nil
	}
	svc := NewUserService(noopUserRepo(), subs)

	profile, err := svc.GetChannelProfile(context.Background(), 3, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(42), profile.SubscriberCount)
	assert.True(t, profile.IsSubscribed)
}
