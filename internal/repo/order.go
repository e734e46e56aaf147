package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pawelapps/ecommerce/internal/models"
)

// CreateOrder persists the whole aggregate in one transaction: the order row,
// its customer, shipping address, summary and every line item. The caller's
// cart is emptied in the same transaction so a failed save leaves it intact.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		var cart models.Cart
		err := tx.Where("user_id = ?", order.UserID).First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartProduct{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order := models.Order{}
	err := r.DB.WithContext(ctx).
		Preload("Customer").
		Preload("ShippingAddress").
		Preload("Summary").
		Preload("OrderProducts").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Customer").
		Preload("ShippingAddress").
		Preload("Summary").
		Preload("OrderProducts").
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) FindOrdersByUserEmail(ctx context.Context, email string) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Customer").
		Preload("ShippingAddress").
		Preload("Summary").
		Preload("OrderProducts").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("users.email = ?", email).
		Order("orders.id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) FindOrdersByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Customer").
		Preload("ShippingAddress").
		Preload("Summary").
		Preload("OrderProducts").
		Joins("JOIN customers ON customers.order_id = orders.id").
		Where("customers.email = ?", email).
		Order("orders.id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
