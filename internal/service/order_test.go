package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawelapps/ecommerce/internal/apperror"
	"github.com/pawelapps/ecommerce/internal/models"
	"github.com/pawelapps/ecommerce/internal/service"
)

func placeOrderRequest(email string) service.PlaceOrderRequest {
	return service.PlaceOrderRequest{
		UserEmail: email,
		Customer: models.Customer{
			FirstName:   "First Name One",
			LastName:    "Last Name One",
			PhoneNumber: "123456789",
			Email:       "email1@example.com",
		},
		ShippingAddress: models.ShippingAddress{
			StreetAddress: "Street One",
			City:          "City One",
			Country:       "Country One",
			ZipCode:       "12-345",
		},
		Summary: models.Summary{
			TotalCartValue:          5,
			TotalQuantityOfProducts: 3,
		},
		OrderProducts: []models.OrderProduct{
			{Name: "Test Product 1", Description: "Test Description 1", Quantity: 1, UnitPrice: 1},
			{Name: "Test Product 2", Description: "Test Description 2", Quantity: 2, UnitPrice: 2},
		},
	}
}

func TestPlaceOrderPersistsAggregate(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	order, err := f.Orders.PlaceOrder(ctx, placeOrderRequest(f.User.Email))
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	var orderProducts int64
	require.NoError(t, f.DB.Model(&models.OrderProduct{}).Where("order_id = ?", order.ID).Count(&orderProducts).Error)
	require.Equal(t, int64(2), orderProducts)

	var summaries int64
	require.NoError(t, f.DB.Model(&models.Summary{}).Where("order_id = ?", order.ID).Count(&summaries).Error)
	require.Equal(t, int64(1), summaries)

	var customers int64
	require.NoError(t, f.DB.Model(&models.Customer{}).Where("order_id = ?", order.ID).Count(&customers).Error)
	require.Equal(t, int64(1), customers)
}

func TestPlaceOrderThenGetReturnsEqualLineItems(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	placed, err := f.Orders.PlaceOrder(ctx, placeOrderRequest(f.User.Email))
	require.NoError(t, err)

	got, err := f.Orders.GetOrderByID(ctx, placed.ID)
	require.NoError(t, err)

	require.Equal(t, placed.ID, got.ID)
	require.Equal(t, placed.OrderProducts, got.OrderProducts)
	require.Equal(t, placed.Summary, got.Summary)
	require.Equal(t, placed.Customer, got.Customer)
	require.Equal(t, placed.ShippingAddress, got.ShippingAddress)
}

func TestPlaceOrderClearsCart(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	_, err := f.Cart.AddProductToCart(ctx, f.User.Email, f.Product.ID, 2)
	require.NoError(t, err)

	_, err = f.Orders.PlaceOrder(ctx, placeOrderRequest(f.User.Email))
	require.NoError(t, err)

	items, err := f.Cart.ListCartProducts(ctx, f.User.Email)
	require.NoError(t, err)
	require.Len(t, items, 0)
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	req := placeOrderRequest(f.User.Email)
	req.OrderProducts = nil
	_, err := f.Orders.PlaceOrder(ctx, req)
	require.ErrorIs(t, err, apperror.ErrValidation)

	req = placeOrderRequest(f.User.Email)
	req.OrderProducts[0].Quantity = 0
	_, err = f.Orders.PlaceOrder(ctx, req)
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	f := newFixtures(t)

	_, err := f.Orders.PlaceOrder(context.Background(), placeOrderRequest("nobody@email.com"))
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	f := newFixtures(t)

	_, err := f.Orders.GetOrderByID(context.Background(), 42)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListOrdersByUserEmail(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	other := models.User{Email: "other@email.com", PasswordHash: "x", Role: "user"}
	require.NoError(t, f.DB.Create(&other).Error)

	_, err := f.Orders.PlaceOrder(ctx, placeOrderRequest(f.User.Email))
	require.NoError(t, err)
	_, err = f.Orders.PlaceOrder(ctx, placeOrderRequest(other.Email))
	require.NoError(t, err)

	orders, err := f.Orders.ListOrdersByUserEmail(ctx, f.User.Email)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	all, err := f.Orders.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestListOrdersByCustomerEmail(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	_, err := f.Orders.PlaceOrder(ctx, placeOrderRequest(f.User.Email))
	require.NoError(t, err)

	orders, err := f.Orders.ListOrdersByCustomerEmail(ctx, "email1@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)

	none, err := f.Orders.ListOrdersByCustomerEmail(ctx, "email2@example.com")
	require.NoError(t, err)
	require.Len(t, none, 0)
}
