package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pawelapps/ecommerce/internal/apperror"
	"github.com/pawelapps/ecommerce/internal/logging"
	"github.com/pawelapps/ecommerce/internal/models"
	"github.com/pawelapps/ecommerce/internal/mykafka"
	"github.com/pawelapps/ecommerce/internal/service"
)

type CategoryHandler struct {
	Svc      *service.CatalogService
	Producer mykafka.Publisher
}

func (h *CategoryHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["categoryID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	items, err := h.Svc.GetCategories(c.Request().Context())
	if err != nil {
		return apperror.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	category, err := h.Svc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return apperror.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) GetCategoryProducts(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.GetProductsByCategory(c.Request().Context(), id)
	if err != nil {
		return apperror.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req struct {
		CategoryName string `json:"category_name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.CreateCategory(c.Request().Context(), &models.ProductCategory{CategoryName: req.CategoryName})
	if err != nil {
		return apperror.ToHTTP(err)
	}

	h.publish(c, map[string]any{
		"type":       "category_created",
		"categoryID": category.ID,
		"name":       category.CategoryName,
	})

	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req models.ProductCategory
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id required")
	}

	category, err := h.Svc.UpdateCategory(c.Request().Context(), &req)
	if err != nil {
		return apperror.ToHTTP(err)
	}

	h.publish(c, map[string]any{
		"type":       "category_updated",
		"categoryID": category.ID,
		"name":       category.CategoryName,
	})

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory cascades to the category's products.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return apperror.ToHTTP(err)
	}

	h.publish(c, map[string]any{
		"type":       "category_deleted",
		"categoryID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
