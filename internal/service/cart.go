package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pawelapps/ecommerce/internal/apperror"
	"github.com/pawelapps/ecommerce/internal/models"
	"github.com/pawelapps/ecommerce/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// AddProductToCart creates a line item in the user's cart, snapshotting the
// current product name and description. The cart itself is created lazily on
// first add; the unique index on carts.user_id keeps a concurrent first add
// from producing two carts.
func (s *CartService) AddProductToCart(ctx context.Context, userEmail string, productID, quantity uint) (*models.CartProduct, error) {
	if quantity < 1 {
		quantity = 1
	}

	user, err := s.Repo.FindUserByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s", userEmail)
		}
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product %d", productID)
		}
		return nil, err
	}

	cart, err := s.Repo.FindCartByUserEmail(ctx, userEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart, err = s.Repo.CreateCart(ctx, &models.Cart{UserID: user.ID})
		if err != nil {
			createErr := err
			// lost the create race: another request made the cart first
			cart, err = s.Repo.FindCartByUserEmail(ctx, userEmail)
			if err != nil {
				return nil, createErr
			}
		}
	}
	if err != nil {
		return nil, err
	}

	item := &models.CartProduct{
		CartID:      cart.ID,
		ProductID:   product.ID,
		Name:        product.Name,
		Description: product.Description,
		Quantity:    quantity,
	}
	return s.Repo.CreateCartProduct(ctx, item)
}

func (s *CartService) ListCartProducts(ctx context.Context, userEmail string) ([]models.CartProduct, error) {
	return s.Repo.FindCartProductsByUserEmail(ctx, userEmail)
}

// ownedCartProduct resolves a line item through the user's own cart; an item
// that exists but hangs off another user's cart is indistinguishable from a
// missing one.
func (s *CartService) ownedCartProduct(ctx context.Context, userEmail string, cartProductID uint) (*models.Cart, *models.CartProduct, error) {
	cart, err := s.Repo.FindCartByUserEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFound("cart for %s", userEmail)
		}
		return nil, nil, err
	}

	item, err := s.Repo.FindCartProductByID(ctx, cartProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFound("cart product %d", cartProductID)
		}
		return nil, nil, err
	}
	if item.CartID != cart.ID {
		return nil, nil, apperror.NotFound("cart product %d", cartProductID)
	}
	return cart, item, nil
}

// IncreaseQuantityByOne re-reads the line item and its product right before
// mutating and refuses the increment when stock would be exceeded. The check
// and the update are not serialized against concurrent increments; the
// returned affected-row count is the caller's only signal that this update
// applied, and a 0 means the row vanished in between and the caller should
// retry its read-modify-write.
func (s *CartService) IncreaseQuantityByOne(ctx context.Context, userEmail string, cartProductID uint) (int64, error) {
	cart, item, err := s.ownedCartProduct(ctx, userEmail, cartProductID)
	if err != nil {
		return 0, err
	}

	product, err := s.Repo.GetProduct(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.NotFound("product %d", item.ProductID)
		}
		return 0, err
	}

	if item.Quantity+1 > product.UnitsInStock {
		return 0, apperror.Conflict("not enough units in stock")
	}

	return s.Repo.IncreaseCartProductQuantityByOne(ctx, cartProductID, cart.ID)
}

// DecreaseQuantityByOne refuses to go below zero. Same affected-row contract
// as IncreaseQuantityByOne.
func (s *CartService) DecreaseQuantityByOne(ctx context.Context, userEmail string, cartProductID uint) (int64, error) {
	cart, item, err := s.ownedCartProduct(ctx, userEmail, cartProductID)
	if err != nil {
		return 0, err
	}

	if item.Quantity == 0 {
		return 0, apperror.Conflict("quantity is already zero")
	}

	return s.Repo.DecreaseCartProductQuantityByOne(ctx, cartProductID, cart.ID)
}

func (s *CartService) RemoveCartProduct(ctx context.Context, userEmail string, cartProductID uint) error {
	cart, err := s.Repo.FindCartByUserEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("cart for %s", userEmail)
		}
		return err
	}

	rows, err := s.Repo.DeleteCartProduct(ctx, cartProductID, cart.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("cart product %d", cartProductID)
	}
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userEmail string) error {
	cart, err := s.Repo.FindCartByUserEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("cart for %s", userEmail)
		}
		return err
	}
	return s.Repo.ClearCart(ctx, cart.ID)
}
