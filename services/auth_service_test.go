package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
)

func TestRegisterHashesPasswordAndAssignsUserRole(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		user.ID = 1
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NotEqual(t, "secret-password", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-password")))
	}).Return(nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:     "ana@example.com",
		Password:  "secret-password",
		FirstName: "Ana",
		LastName:  "Morales",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, ErrPasswordTooShort)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterMapsEmailConflict(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrUserEmailConflict)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "taken@example.com",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, ErrAuthEmailTaken)
}

func TestLoginWithWrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&models.User{
		ID:           1,
		Email:        "ana@example.com",
		PasswordHash: string(hash),
	}, nil)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "ana@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repositories.ErrUserNotFound)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	})

	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestLoginSuccessClearsPasswordHash(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&models.User{
		ID:           1,
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleOrganizer,
	}, nil)

	user, err := svc.Login(context.Background(), LoginInput{
		Email:    "ana@example.com",
		Password: "right-password",
	})

	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, models.RoleOrganizer, user.Role)
}
