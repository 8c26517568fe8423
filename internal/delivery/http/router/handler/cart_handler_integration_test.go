package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/validator"
	"storefront/internal/domain/entity"
	"storefront/internal/infra/auth"
	mockusecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Exercises the full chain: auth middleware, request validation and the
// cart handler, with real JWTs and a mocked usecase behind them.
func newCartTestServer(t *testing.T) (*echo.Echo, *mockusecase.MockCartUsecase, func(userID uuid.UUID) (string, string)) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "integration-access-secret"
	cfg.SecretKey.Refresh = "integration-refresh-secret"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := new(mockusecase.MockCartUsecase)
	t.Cleanup(func() { uc.AssertExpectations(t) })

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	h := NewCartHandler(uc, logger)
	authMw := middleware.NewAuthMiddleware(tokenSvc)
	cartGroup := e.Group("/cart", authMw.Authenticate)
	cartGroup.GET("", h.GetCart)
	cartGroup.POST("/items", h.AddItem)

	issueTokens := func(userID uuid.UUID) (string, string) {
		access, refresh, err := tokenSvc.GenerateTokens(userID, string(entity.StatusGold))
		require.NoError(t, err)

		return access, refresh
	}

	return e, uc, issueTokens
}

func goldCartOutput(userID uuid.UUID) *usecase.CartOutput {
	product := &entity.Product{
		ID:     uuid.New(),
		Name:   "Mechanical Keyboard",
		Price:  decimal.RequireFromString("100.00"),
		Active: true,
	}
	cart := &entity.Cart{
		ID:          uuid.New(),
		UserID:      userID,
		CreatedDate: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Items: []entity.CartItem{
			{ID: uuid.New(), ProductID: product.ID, Product: product, Quantity: 2},
		},
	}

	return &usecase.CartOutput{
		Cart:       cart,
		Subtotal:   cart.Subtotal(),
		Discount:   entity.StatusGold.Discount(),
		TotalPrice: cart.TotalPrice(entity.StatusGold),
	}
}

func TestCartHandler_GetCart_RequiresAuth(t *testing.T) {
	e, uc, _ := newCartTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
}

func TestCartHandler_GetCart_RejectsRefreshToken(t *testing.T) {
	e, uc, issueTokens := newCartTestServer(t)

	_, refresh := issueTokens(uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
}

func TestCartHandler_GetCart_GoldDiscountApplied(t *testing.T) {
	e, uc, issueTokens := newCartTestServer(t)

	userID := uuid.New()
	uc.On("GetCart", mock.Anything, userID).Return(goldCartOutput(userID), nil)

	access, _ := issueTokens(userID)
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"subtotal":"200.00"`)
	assert.Contains(t, rec.Body.String(), `"discount":"0.75"`)
	assert.Contains(t, rec.Body.String(), `"totalPrice":"50.00"`)
}

func TestCartHandler_AddItem_DefaultsQuantity(t *testing.T) {
	e, uc, issueTokens := newCartTestServer(t)

	userID := uuid.New()
	productID := uuid.New()
	uc.On("AddItem", mock.Anything, userID, usecase.AddCartItemInput{ProductID: productID, Quantity: 1}).
		Return(goldCartOutput(userID), nil)

	access, _ := issueTokens(userID)
	body := `{"productId": "` + productID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
