package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pawelapps/ecommerce/internal/apperror"
	"github.com/pawelapps/ecommerce/internal/models"
)

func TestAddProductToCartCreatesCartLazily(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	item, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 2)
	require.NoError(t, err)
	require.NotZero(t, item.ID)
	require.Equal(t, f.Product.ID, item.ProductID)
	require.Equal(t, uint(2), item.Quantity)
	require.Equal(t, "Test Product 1", item.Name)
	require.Equal(t, "Test Description 1", item.Description)

	var carts int64
	require.NoError(t, f.DB.Model(&models.Cart{}).Count(&carts).Error)
	require.Equal(t, int64(1), carts)
}

func TestAddProductToCartCreatesOneCartForTwoAdds(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	_, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 1)
	require.NoError(t, err)
	_, err = f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 1)
	require.NoError(t, err)

	var carts int64
	require.NoError(t, f.DB.Model(&models.Cart{}).Count(&carts).Error)
	require.Equal(t, int64(1), carts)

	items, err := f.Cart.ListCartProducts(ctx, f.User.Email)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestAddProductToCartUnknownUser(t *testing.T) {
	f := newFixtures(t)

	_, err := f.Cart.AddProductToCart(context.Background(), "nobody@email.com", f.Product.ID, 1)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAddProductToCartUnknownProduct(t *testing.T) {
	f := newFixtures(t)

	_, err := f.Cart.AddProductToCart(context.Background(), f.User.Email, 9999, 1)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestIncreaseQuantityWithinStock(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	item, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 9)
	require.NoError(t, err)

	rows, err := f.Cart.IncreaseQuantityByOne(ctx, f.User.Email, item.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	var got models.CartProduct
	require.NoError(t, f.DB.First(&got, item.ID).Error)
	require.Equal(t, uint(10), got.Quantity)
}

func TestIncreaseQuantityBeyondStock(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	item, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 10)
	require.NoError(t, err)

	_, err = f.Cart.IncreaseQuantityByOne(ctx, f.User.Email, item.ID)
	require.ErrorIs(t, err, apperror.ErrConflict)
	require.ErrorContains(t, err, "not enough units in stock")

	// quantity untouched after the refused increment
	var got models.CartProduct
	require.NoError(t, f.DB.First(&got, item.ID).Error)
	require.Equal(t, uint(10), got.Quantity)
}

func TestIncreaseThenConflictAtLimit(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	item, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 9)
	require.NoError(t, err)

	rows, err := f.Cart.IncreaseQuantityByOne(ctx, f.User.Email, item.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	_, err = f.Cart.IncreaseQuantityByOne(ctx, f.User.Email, item.ID)
	require.ErrorIs(t, err, apperror.ErrConflict)
}

func TestIncreaseQuantityMissingItem(t *testing.T) {
	f := newFixtures(t)

	_, err := f.Cart.IncreaseQuantityByOne(context.Background(), f.User.Email, 42)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDecreaseQuantity(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	item, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 2)
	require.NoError(t, err)

	rows, err := f.Cart.DecreaseQuantityByOne(ctx, f.User.Email, item.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	var got models.CartProduct
	require.NoError(t, f.DB.First(&got, item.ID).Error)
	require.Equal(t, uint(1), got.Quantity)
}

func TestDecreaseQuantityAtZero(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	item, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 1)
	require.NoError(t, err)

	rows, err := f.Cart.DecreaseQuantityByOne(ctx, f.User.Email, item.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	_, err = f.Cart.DecreaseQuantityByOne(ctx, f.User.Email, item.ID)
	require.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRemoveCartProduct(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	item, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, f.Cart.RemoveCartProduct(ctx, f.User.Email, item.ID))

	err = f.Cart.RemoveCartProduct(ctx, f.User.Email, item.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestClearCart(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	_, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 1)
	require.NoError(t, err)
	_, err = f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 3)
	require.NoError(t, err)

	require.NoError(t, f.Cart.ClearCart(ctx, f.User.Email))

	items, err := f.Cart.ListCartProducts(ctx, f.User.Email)
	require.NoError(t, err)
	require.Len(t, items, 0)
}

func TestIncreaseQuantityOtherUsersItem(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	item, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 2)
	require.NoError(t, err)

	other := models.User{Email: "other@email.com", PasswordHash: "x", Role: "user"}
	require.NoError(t, f.DB.Create(&other).Error)
	_, err = f.Cart.AddProductToCart(ctx, other.Email, f.Product.ID, 1)
	require.NoError(t, err)

	_, err = f.Cart.IncreaseQuantityByOne(ctx, other.Email, item.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	var got models.CartProduct
	require.NoError(t, f.DB.First(&got, item.ID).Error)
	require.Equal(t, uint(2), got.Quantity)
}

func TestDecreaseQuantityOtherUsersItem(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	item, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 2)
	require.NoError(t, err)

	other := models.User{Email: "other@email.com", PasswordHash: "x", Role: "user"}
	require.NoError(t, f.DB.Create(&other).Error)
	_, err = f.Cart.AddProductToCart(ctx, other.Email, f.Product.ID, 1)
	require.NoError(t, err)

	_, err = f.Cart.DecreaseQuantityByOne(ctx, other.Email, item.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	var got models.CartProduct
	require.NoError(t, f.DB.First(&got, item.ID).Error)
	require.Equal(t, uint(2), got.Quantity)
}

func TestAddProductToCartSurfacesCreateError(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	require.NoError(t, f.DB.Exec(
		"CREATE TRIGGER reject_carts BEFORE INSERT ON carts BEGIN SELECT RAISE(ABORT, 'carts insert rejected'); END",
	).Error)

	_, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, gorm.ErrRecordNotFound)
	require.ErrorContains(t, err, "carts insert rejected")
}
