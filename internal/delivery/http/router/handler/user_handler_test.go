package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/validator"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockusecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestServer(t *testing.T) (*echo.Echo, *mockusecase.MockUserUsecase) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := new(mockusecase.MockUserUsecase)
	t.Cleanup(func() { uc.AssertExpectations(t) })

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	h := NewUserHandler(uc, logger)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/refresh", h.Refresh)

	return e, uc
}

func TestUserHandler_Register_Success(t *testing.T) {
	e, uc := newUserTestServer(t)

	userID := uuid.New()
	uc.On("Register", mock.Anything, mock.MatchedBy(func(input usecase.RegisterUserInput) bool {
		return input.Username == "frodo" && input.Email == "frodo@shire.example"
	})).Return(&usecase.AuthOutput{
		User: &entity.User{
			ID:           userID,
			Username:     "frodo",
			Email:        "frodo@shire.example",
			FirstName:    "Frodo",
			LastName:     "Baggins",
			Status:       entity.StatusSimple,
			RegisterDate: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil)

	body := `{
		"username": "frodo",
		"email": "frodo@shire.example",
		"password": "longenough",
		"firstName": "Frodo",
		"lastName": "Baggins",
		"age": 33
	}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"frodo"`)
	assert.Contains(t, rec.Body.String(), `"status":"simple"`)
	assert.Contains(t, rec.Body.String(), `"accessToken":"access-token"`)
	assert.Contains(t, rec.Body.String(), "14-03-2026 09:30")
}

func TestUserHandler_Register_UnderageRejected(t *testing.T) {
	e, uc := newUserTestServer(t)

	body := `{
		"username": "kiddo",
		"email": "kiddo@example.com",
		"password": "longenough",
		"firstName": "Kid",
		"lastName": "Doe",
		"age": 12
	}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUserHandler_Register_MalformedEmailRejected(t *testing.T) {
	e, uc := newUserTestServer(t)

	body := `{
		"username": "frodo",
		"email": "not-an-email",
		"password": "longenough",
		"firstName": "Frodo",
		"lastName": "Baggins"
	}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	e, uc := newUserTestServer(t)

	uc.On("Login", mock.Anything, usecase.LoginInput{Username: "frodo", Password: "wrong-password"}).
		Return(nil, domainerrors.ErrInvalidCredentials)

	body := `{"username": "frodo", "password": "wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestUserHandler_Refresh_MissingToken(t *testing.T) {
	e, uc := newUserTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}
