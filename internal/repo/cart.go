package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawelapps/ecommerce/internal/models"
)

func (r *GormRepo) FindCartByUserEmail(ctx context.Context, email string) (*models.Cart, error) {
	cart := models.Cart{}
	err := r.DB.WithContext(ctx).
		Joins("JOIN users ON users.id = carts.user_id").
		Where("users.email = ?", email).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) CreateCart(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if err := r.DB.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *GormRepo) FindCartProductByID(ctx context.Context, id uint) (*models.CartProduct, error) {
	item := models.CartProduct{}
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) FindCartProductsByUserEmail(ctx context.Context, email string) ([]models.CartProduct, error) {
	var items []models.CartProduct
	err := r.DB.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_products.cart_id").
		Joins("JOIN users ON users.id = carts.user_id").
		Where("users.email = ?", email).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateCartProduct(ctx context.Context, item *models.CartProduct) (*models.CartProduct, error) {
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// IncreaseCartProductQuantityByOne bumps the stored quantity with a single-row
// UPDATE scoped to the owning cart. The affected-row count is the caller's only
// signal that the update applied; 0 means no row matched.
func (r *GormRepo) IncreaseCartProductQuantityByOne(ctx context.Context, id, cartID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.CartProduct{}).
		Where("id = ? AND cart_id = ?", id, cartID).
		UpdateColumn("quantity", gorm.Expr("quantity + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// DecreaseCartProductQuantityByOne decrements the stored quantity. The
// quantity > 0 predicate keeps a concurrent decrement from going negative.
func (r *GormRepo) DecreaseCartProductQuantityByOne(ctx context.Context, id, cartID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.CartProduct{}).
		Where("id = ? AND cart_id = ? AND quantity > 0", id, cartID).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *GormRepo) DeleteCartProduct(ctx context.Context, id, cartID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND cart_id = ?", id, cartID).
		Delete(&models.CartProduct{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartProduct{}).Error
}
