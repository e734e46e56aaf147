package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pawelapps/ecommerce/internal/apperror"
	"github.com/pawelapps/ecommerce/internal/logging"
	"github.com/pawelapps/ecommerce/internal/middleware/auth"
	"github.com/pawelapps/ecommerce/internal/mykafka"
	"github.com/pawelapps/ecommerce/internal/service"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer mykafka.Publisher
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["orderID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// CreateOrder places an order for the authenticated user. The payload's
// user email must match the principal; anyone else gets 403.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req service.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := auth.RequireOwner(c, req.UserEmail); err != nil {
		return apperror.ToHTTP(err)
	}

	order, err := h.Svc.PlaceOrder(c.Request().Context(), req)
	if err != nil {
		return apperror.ToHTTP(err)
	}

	h.publish(c, map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"email":   req.UserEmail,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	orders, err := h.Svc.ListOrders(c.Request().Context())
	if err != nil {
		return apperror.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrderByID(c.Request().Context(), id)
	if err != nil {
		return apperror.ToHTTP(err)
	}

	if auth.PrincipalRole(c) != "admin" && auth.PrincipalID(c) != order.UserID {
		return apperror.ToHTTP(apperror.Forbidden("not the resource owner"))
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrdersByUserEmail(c echo.Context) error {
	email := c.Param("email")

	if err := auth.RequireOwner(c, email); err != nil {
		return apperror.ToHTTP(err)
	}

	orders, err := h.Svc.ListOrdersByUserEmail(c.Request().Context(), email)
	if err != nil {
		return apperror.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrdersByCustomerEmail(c echo.Context) error {
	email := c.Param("email")

	if err := auth.RequireOwner(c, email); err != nil {
		return apperror.ToHTTP(err)
	}

	orders, err := h.Svc.ListOrdersByCustomerEmail(c.Request().Context(), email)
	if err != nil {
		return apperror.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, orders)
}
