package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pawelapps/ecommerce/internal/apperror"
	"github.com/pawelapps/ecommerce/internal/models"
	"github.com/pawelapps/ecommerce/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

type PlaceOrderRequest struct {
	UserEmail       string                 `json:"user_email"`
	Customer        models.Customer        `json:"customer"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	Summary         models.Summary         `json:"summary"`
	OrderProducts   []models.OrderProduct  `json:"order_products"`
}

// PlaceOrder persists the whole aggregate transactionally and returns it with
// generated identifiers. The summary arrives pre-computed from checkout and is
// stored as-is.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	if len(req.OrderProducts) == 0 {
		return nil, apperror.Validation("order products required")
	}
	for i := range req.OrderProducts {
		if req.OrderProducts[i].Quantity == 0 {
			return nil, apperror.Validation("quantity must be > 0")
		}
		if req.OrderProducts[i].UnitPrice < 0 {
			return nil, apperror.Validation("unit price must be >= 0")
		}
	}

	user, err := s.Repo.FindUserByEmail(ctx, req.UserEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s", req.UserEmail)
		}
		return nil, err
	}

	order := &models.Order{
		UserID:          user.ID,
		CreatedAt:       time.Now().Unix(),
		Customer:        req.Customer,
		ShippingAddress: req.ShippingAddress,
		Summary:         req.Summary,
		OrderProducts:   req.OrderProducts,
	}

	return s.Repo.CreateOrder(ctx, order)
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("order %d", id)
	}
	return order, err
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.GetOrders(ctx)
}

func (s *OrderService) ListOrdersByUserEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.Repo.FindOrdersByUserEmail(ctx, email)
}

func (s *OrderService) ListOrdersByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.Repo.FindOrdersByCustomerEmail(ctx, email)
}
