package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	authRepo     *mockRepo.MockAuthRepository
	refreshRepo  *mockRepo.MockRefreshTokenRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestUserService(t *testing.T, maxActiveSessions int) userServiceFixtures {
	t.Helper()

	userRepo := &mockRepo.MockUserRepository{}
	authRepo := &mockRepo.MockAuthRepository{}
	refreshRepo := &mockRepo.MockRefreshTokenRepository{}
	hasher := &mockService.MockPasswordHasher{}
	tokenService := &mockService.MockTokenService{}

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			UserRepo:    userRepo,
			AuthRepo:    authRepo,
			RefreshRepo: refreshRepo,
		},
	}

	service := NewUserService(UserServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		Config:           newTestConfig(maxActiveSessions),
		Logger:           newDiscardLogger(),
	})

	t.Cleanup(func() {
		userRepo.AssertExpectations(t)
		authRepo.AssertExpectations(t)
		refreshRepo.AssertExpectations(t)
		hasher.AssertExpectations(t)
		tokenService.AssertExpectations(t)
	})

	return userServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		authRepo:     authRepo,
		refreshRepo:  refreshRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()

	input := usecase.RegisterUserInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "s3cret-password",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	fixtures.hasher.On("Hash", input.Password).Return("hashed-password", nil)
	fixtures.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "alice").
		Return(nil, repository.ErrAuthNotFound)
	fixtures.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = uuid.New()
		}).
		Return(nil)
	fixtures.authRepo.On("CreateAuthentication", ctx, mock.AnythingOfType("*entity.Authentication")).
		Return(nil)
	fixtures.tokenService.On("GenerateTokens", mock.AnythingOfType("uuid.UUID"), "simple").
		Return("access-token", "refresh-token", nil)
	fixtures.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	fixtures.tokenService.On("GetRefreshTokenDuration").Return(time.Hour * 24 * 7)
	fixtures.refreshRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	output, err := fixtures.service.Register(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, entity.StatusSimple, output.User.Status)
	assert.False(t, output.User.RegisterDate.IsZero())
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()

	fixtures.hasher.On("Hash", "pw").Return("hashed", nil)
	fixtures.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "taken").
		Return(&entity.Authentication{UserID: uuid.New()}, nil)

	_, err := fixtures.service.Register(ctx, usecase.RegisterUserInput{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "pw",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_Login_Success(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	fixtures.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "bob").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored-hash"}, nil)
	fixtures.hasher.On("Check", "pw", "stored-hash").Return(true)
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Username: "bob", Status: entity.StatusGold}, nil)
	fixtures.tokenService.On("GenerateTokens", userID, "gold").
		Return("access-token", "refresh-token", nil)
	fixtures.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	fixtures.tokenService.On("GetRefreshTokenDuration").Return(time.Hour * 24 * 7)
	fixtures.refreshRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "access-token", output.AccessToken)
}

func TestUserService_Login_UnknownUsername(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()

	fixtures.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ghost").
		Return(nil, repository.ErrAuthNotFound)

	_, err := fixtures.service.Login(ctx, usecase.LoginInput{Username: "ghost", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()

	fixtures.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "bob").
		Return(&entity.Authentication{UserID: uuid.New(), PasswordHash: "stored-hash"}, nil)
	fixtures.hasher.On("Check", "wrong", "stored-hash").Return(false)

	_, err := fixtures.service.Login(ctx, usecase.LoginInput{Username: "bob", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Refresh_RotatesSession(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	fixtures.tokenService.On("ValidateToken", "old-refresh").
		Return(&service.Claims{UserID: userID, Type: "refresh"}, nil)
	fixtures.tokenService.On("HashToken", "old-refresh").Return("old-hash")
	fixtures.refreshRepo.On("FindRefreshTokenByHash", ctx, "old-hash").
		Return(&entity.RefreshToken{UserID: userID, TokenHash: "old-hash"}, nil)
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.StatusSilver}, nil)
	fixtures.tokenService.On("GenerateTokens", userID, "silver").
		Return("new-access", "new-refresh", nil)
	fixtures.refreshRepo.On("DeleteRefreshTokenByHash", ctx, "old-hash").Return(nil)
	fixtures.tokenService.On("HashToken", "new-refresh").Return("new-hash")
	fixtures.tokenService.On("GetRefreshTokenDuration").Return(time.Hour * 24 * 7)
	fixtures.refreshRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	output, err := fixtures.service.Refresh(ctx, "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "new-refresh", output.RefreshToken)
	assert.Equal(t, userID, output.User.ID)
}

func TestUserService_Refresh_UnknownSession(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	fixtures.tokenService.On("ValidateToken", "stray-refresh").
		Return(&service.Claims{UserID: userID, Type: "refresh"}, nil)
	fixtures.tokenService.On("HashToken", "stray-refresh").Return("stray-hash")
	fixtures.refreshRepo.On("FindRefreshTokenByHash", ctx, "stray-hash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	_, err := fixtures.service.Refresh(ctx, "stray-refresh")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestUserService_Logout_DeletesSession(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()

	fixtures.tokenService.On("ValidateToken", "refresh-token").
		Return(nil, errors.New("expired"))
	fixtures.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	fixtures.refreshRepo.On("DeleteRefreshTokenByHash", ctx, "refresh-hash").Return(nil)

	err := fixtures.service.Logout(ctx, "refresh-token")
	require.NoError(t, err)
}

func TestUserService_UpdateProfile_InvalidStatus(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.StatusSimple}, nil)

	status := "platinum"
	_, err := fixtures.service.UpdateProfile(ctx, userID, usecase.UpdateProfileInput{Status: &status})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserService_UpdateProfile_PromotesTier(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.StatusSimple}, nil)
	fixtures.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	status := "gold"
	user, err := fixtures.service.UpdateProfile(ctx, userID, usecase.UpdateProfileInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusGold, user.Status)
}

func TestUserService_DeleteAccount_NotFound(t *testing.T) {
	fixtures := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	fixtures.userRepo.On("Delete", ctx, userID).Return(repository.ErrUserNotFound)

	err := fixtures.service.DeleteAccount(ctx, userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
