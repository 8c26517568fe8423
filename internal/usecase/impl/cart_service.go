// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager   repository.TransactionManager
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager:   params.TxManager,
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart retrieves the user's cart, creating an empty one on first access.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	cart, err := srv.loadOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	return srv.priceCart(ctx, userID, cart)
}

// AddItem puts a product into the cart. Adding a product that is already
// present raises a conflict rather than bumping the quantity.
func (srv *cartService) AddItem(ctx context.Context, userID uuid.UUID, input usecase.AddCartItemInput) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Adding cart item", slog.Any("userID", userID), slog.Any("productID", input.ProductID), slog.Int("quantity", input.Quantity))

	if input.Quantity < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be at least 1")
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for cart")
	}
	if !product.Active {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "product is not available")
	}

	cart, err := srv.loadOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &entity.CartItem{
		CartID:    cart.ID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	}

	if err := srv.cartRepo.AddItem(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to add cart item")
	}

	return srv.reloadAndPrice(ctx, userID)
}

// UpdateItemQuantity changes one line's quantity to a positive value.
func (srv *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Updating cart item quantity", slog.Any("userID", userID), slog.Any("itemID", itemID), slog.Int("quantity", quantity))

	if quantity < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be at least 1")
	}

	if err := srv.guardItemOwnership(ctx, userID, itemID); err != nil {
		return nil, err
	}

	if err := srv.cartRepo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartItemNotFound, "cart item not found")
		}

		return nil, errors.Wrap(err, "failed to update cart item quantity")
	}

	return srv.reloadAndPrice(ctx, userID)
}

// RemoveItem deletes one line from the cart.
func (srv *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Removing cart item", slog.Any("userID", userID), slog.Any("itemID", itemID))

	if err := srv.guardItemOwnership(ctx, userID, itemID); err != nil {
		return nil, err
	}

	if err := srv.cartRepo.RemoveItem(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartItemNotFound, "cart item not found")
		}

		return nil, errors.Wrap(err, "failed to remove cart item")
	}

	return srv.reloadAndPrice(ctx, userID)
}

// ClearCart deletes every line from the cart.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Clearing cart", slog.Any("userID", userID))

	cart, err := srv.loadOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := srv.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		return nil, errors.Wrap(err, "failed to clear cart")
	}

	return srv.reloadAndPrice(ctx, userID)
}

// loadOrCreateCart fetches the user's cart, creating it on first access.
// The create runs inside a transaction; a concurrent first access that wins
// the race surfaces as a conflict and the loser just re-reads.
func (srv *cartService) loadOrCreateCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	newCart := &entity.Cart{
		UserID:      userID,
		CreatedDate: time.Now(),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewCartRepository().Create(ctx, newCart)
	})
	if err != nil {
		cart, findErr := srv.cartRepo.FindByUserID(ctx, userID)
		if findErr == nil {
			return cart, nil
		}

		return nil, errors.Wrap(err, "failed to create cart")
	}

	srv.log(ctx).Debug("Created cart on first access", slog.Any("userID", userID), slog.Any("cartID", newCart.ID))

	return newCart, nil
}

// reloadAndPrice re-reads the cart after a mutation so the returned view
// reflects current product data.
func (srv *cartService) reloadAndPrice(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload cart")
	}

	return srv.priceCart(ctx, userID, cart)
}

// priceCart derives the cart totals from the owner's current loyalty tier.
func (srv *cartService) priceCart(ctx context.Context, userID uuid.UUID, cart *entity.Cart) (*usecase.CartOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "cart owner not found")
		}

		return nil, errors.Wrap(err, "failed to load cart owner")
	}

	return &usecase.CartOutput{
		Cart:       cart,
		Subtotal:   cart.Subtotal(),
		Discount:   user.Status.Discount(),
		TotalPrice: cart.TotalPrice(user.Status),
	}, nil
}

// guardItemOwnership rejects operations on line items that sit in someone
// else's cart.
func (srv *cartService) guardItemOwnership(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := srv.cartRepo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return errors.Wrap(domainerrors.ErrCartItemNotFound, "cart item not found")
		}

		return errors.Wrap(err, "failed to load cart item")
	}

	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return errors.Wrap(domainerrors.ErrCartOwnershipViolation, "cart item belongs to another user")
		}

		return errors.Wrap(err, "failed to load cart for ownership check")
	}

	if item.CartID != cart.ID {
		return errors.Wrap(domainerrors.ErrCartOwnershipViolation, "cart item belongs to another user")
	}

	return nil
}
