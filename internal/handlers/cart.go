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

type CartHandler struct {
	Svc      *service.CartService
	Producer mykafka.Publisher
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["email"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	email := auth.PrincipalEmail(c)

	items, err := h.Svc.ListCartProducts(c.Request().Context(), email)
	if err != nil {
		return apperror.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	email := auth.PrincipalEmail(c)

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	item, err := h.Svc.AddProductToCart(c.Request().Context(), email, req.ProductID, req.Quantity)
	if err != nil {
		return apperror.ToHTTP(err)
	}

	h.publish(c, map[string]any{
		"type":          "cart_product_added",
		"email":         email,
		"cartProductID": item.ID,
		"productID":     item.ProductID,
		"quantity":      item.Quantity,
	})

	return c.JSON(http.StatusCreated, item)
}

// IncreaseQuantity bumps a line item by one. The response carries the
// affected-row count so the client can detect a lost race and retry.
func (h *CartHandler) IncreaseQuantity(c echo.Context) error {
	email := auth.PrincipalEmail(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	rows, err := h.Svc.IncreaseQuantityByOne(c.Request().Context(), email, id)
	if err != nil {
		return apperror.ToHTTP(err)
	}

	h.publish(c, map[string]any{
		"type":          "cart_quantity_increased",
		"email":         email,
		"cartProductID": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"updated_rows": rows})
}

func (h *CartHandler) DecreaseQuantity(c echo.Context) error {
	email := auth.PrincipalEmail(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	rows, err := h.Svc.DecreaseQuantityByOne(c.Request().Context(), email, id)
	if err != nil {
		return apperror.ToHTTP(err)
	}

	h.publish(c, map[string]any{
		"type":          "cart_quantity_decreased",
		"email":         email,
		"cartProductID": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"updated_rows": rows})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	email := auth.PrincipalEmail(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveCartProduct(c.Request().Context(), email, id); err != nil {
		return apperror.ToHTTP(err)
	}

	h.publish(c, map[string]any{
		"type":          "cart_product_removed",
		"email":         email,
		"cartProductID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	email := auth.PrincipalEmail(c)

	if err := h.Svc.ClearCart(c.Request().Context(), email); err != nil {
		return apperror.ToHTTP(err)
	}

	h.publish(c, map[string]any{
		"type":  "cart_cleared",
		"email": email,
	})

	return c.NoContent(http.StatusNoContent)
}
