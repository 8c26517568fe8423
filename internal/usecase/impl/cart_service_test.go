package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service     usecase.CartUsecase
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
	userRepo    *mockRepo.MockUserRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	t.Helper()

	cartRepo := &mockRepo.MockCartRepository{}
	productRepo := &mockRepo.MockProductRepository{}
	userRepo := &mockRepo.MockUserRepository{}

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			CartRepo: cartRepo,
		},
	}

	service := NewCartService(CartServiceParams{
		TxManager:   txManager,
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		Logger:      newDiscardLogger(),
	})

	t.Cleanup(func() {
		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	return cartServiceFixtures{
		service:     service,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func cartWith(userID uuid.UUID, prices map[string]int) *entity.Cart {
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	for price, quantity := range prices {
		cart.Items = append(cart.Items, entity.CartItem{
			ID:       uuid.New(),
			CartID:   cart.ID,
			Quantity: quantity,
			Product:  &entity.Product{Price: decimal.RequireFromString(price)},
		})
	}

	return cart
}

func TestCartService_GetCart_CreatesOnFirstAccess(t *testing.T) {
	fixtures := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	fixtures.cartRepo.On("FindByUserID", ctx, userID).
		Return(nil, repository.ErrCartNotFound).Once()
	fixtures.cartRepo.On("Create", ctx, mock.AnythingOfType("*entity.Cart")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Cart).ID = uuid.New()
		}).
		Return(nil)
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.StatusSimple}, nil)

	output, err := fixtures.service.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, output.Cart.Items)
	assert.True(t, output.Subtotal.IsZero())
	assert.True(t, output.TotalPrice.IsZero())
}

func TestCartService_GetCart_GoldDiscount(t *testing.T) {
	fixtures := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	// 100.00 x 2 = 200.00 subtotal, gold waives 75%.
	fixtures.cartRepo.On("FindByUserID", ctx, userID).
		Return(cartWith(userID, map[string]int{"100.00": 2}), nil)
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.StatusGold}, nil)

	output, err := fixtures.service.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.True(t, output.Subtotal.Equal(decimal.RequireFromString("200.00")), "subtotal %s", output.Subtotal)
	assert.True(t, output.Discount.Equal(decimal.RequireFromString("0.75")))
	assert.True(t, output.TotalPrice.Equal(decimal.RequireFromString("50.00")), "total %s", output.TotalPrice)
}

func TestCartService_AddItem_InactiveProduct(t *testing.T) {
	fixtures := createTestCartService(t)
	ctx := context.Background()
	productID := uuid.New()

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID, Active: false}, nil)

	_, err := fixtures.service.AddItem(ctx, uuid.New(), usecase.AddCartItemInput{
		ProductID: productID,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	fixtures := createTestCartService(t)
	ctx := context.Background()

	_, err := fixtures.service.AddItem(ctx, uuid.New(), usecase.AddCartItemInput{
		ProductID: uuid.New(),
		Quantity:  0,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCartService_AddItem_Success(t *testing.T) {
	fixtures := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	cart := cartWith(userID, nil)

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID, Active: true, Price: decimal.RequireFromString("19.99")}, nil)
	fixtures.cartRepo.On("FindByUserID", ctx, userID).
		Return(cart, nil).Once()
	fixtures.cartRepo.On("AddItem", ctx, mock.AnythingOfType("*entity.CartItem")).
		Return(nil)

	reloaded := cartWith(userID, map[string]int{"19.99": 3})
	fixtures.cartRepo.On("FindByUserID", ctx, userID).
		Return(reloaded, nil).Once()
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.StatusBronze}, nil)

	output, err := fixtures.service.AddItem(ctx, userID, usecase.AddCartItemInput{
		ProductID: productID,
		Quantity:  3,
	})
	require.NoError(t, err)
	// 59.97 subtotal, bronze waives 25%: 44.9775 -> 44.98.
	assert.True(t, output.Subtotal.Equal(decimal.RequireFromString("59.97")), "subtotal %s", output.Subtotal)
	assert.True(t, output.TotalPrice.Equal(decimal.RequireFromString("44.98")), "total %s", output.TotalPrice)
}

func TestCartService_UpdateItemQuantity_ForeignItem(t *testing.T) {
	fixtures := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	fixtures.cartRepo.On("FindItem", ctx, itemID).
		Return(&entity.CartItem{ID: itemID, CartID: uuid.New()}, nil)
	fixtures.cartRepo.On("FindByUserID", ctx, userID).
		Return(cartWith(userID, nil), nil)

	_, err := fixtures.service.UpdateItemQuantity(ctx, userID, itemID, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartOwnershipViolation))
}

func TestCartService_RemoveItem_Success(t *testing.T) {
	fixtures := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	cart := cartWith(userID, map[string]int{"10.00": 1})
	itemID := cart.Items[0].ID

	fixtures.cartRepo.On("FindItem", ctx, itemID).
		Return(&cart.Items[0], nil)
	fixtures.cartRepo.On("FindByUserID", ctx, userID).
		Return(cart, nil).Once()
	fixtures.cartRepo.On("RemoveItem", ctx, itemID).Return(nil)

	fixtures.cartRepo.On("FindByUserID", ctx, userID).
		Return(cartWith(userID, nil), nil).Once()
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.StatusSilver}, nil)

	output, err := fixtures.service.RemoveItem(ctx, userID, itemID)
	require.NoError(t, err)
	assert.Empty(t, output.Cart.Items)
	assert.True(t, output.TotalPrice.IsZero())
}

func TestCartService_ClearCart_Success(t *testing.T) {
	fixtures := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	cart := cartWith(userID, map[string]int{"10.00": 2})

	fixtures.cartRepo.On("FindByUserID", ctx, userID).
		Return(cart, nil).Once()
	fixtures.cartRepo.On("ClearItems", ctx, cart.ID).Return(nil)
	fixtures.cartRepo.On("FindByUserID", ctx, userID).
		Return(cartWith(userID, nil), nil).Once()
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Status: entity.StatusSimple}, nil)

	output, err := fixtures.service.ClearCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, output.Cart.Items)
	assert.True(t, output.Subtotal.IsZero())
}
