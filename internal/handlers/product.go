package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pawelapps/ecommerce/internal/apperror"
	"github.com/pawelapps/ecommerce/internal/es"
	"github.com/pawelapps/ecommerce/internal/logging"
	"github.com/pawelapps/ecommerce/internal/models"
	"github.com/pawelapps/ecommerce/internal/mykafka"
	"github.com/pawelapps/ecommerce/internal/service"
	"github.com/pawelapps/ecommerce/internal/util"
)

type ProductHandler struct {
	Svc      *service.CatalogService
	Producer mykafka.Publisher
	Indexer  es.ProductIndexer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// sync mirrors the mutation into the search index, best-effort.
func (h *ProductHandler) sync(c echo.Context, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		logging.FromContext(c.Request().Context()).Error("search index sync error", "error", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return apperror.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return apperror.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req struct {
		SKU               string  `json:"sku"`
		Name              string  `json:"name"`
		Description       string  `json:"description"`
		UnitPrice         float64 `json:"unit_price"`
		UnitsInStock      uint    `json:"units_in_stock"`
		ProductCategoryID uint    `json:"product_category_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod := &models.Product{
		SKU:               req.SKU,
		Name:              req.Name,
		Description:       req.Description,
		UnitPrice:         req.UnitPrice,
		UnitsInStock:      req.UnitsInStock,
		ProductCategoryID: req.ProductCategoryID,
	}

	prod, err := h.Svc.CreateProduct(c.Request().Context(), prod)
	if err != nil {
		return apperror.ToHTTP(err)
	}

	h.sync(c, func(ctx context.Context) error { return h.Indexer.IndexProduct(ctx, *prod) })
	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}

// UpdateProduct is a full replace; the body carries the id.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req models.Product
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id required")
	}

	prod, err := h.Svc.UpdateProduct(c.Request().Context(), &req)
	if err != nil {
		return apperror.ToHTTP(err)
	}

	h.sync(c, func(ctx context.Context) error { return h.Indexer.IndexProduct(ctx, *prod) })
	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return apperror.ToHTTP(err)
	}

	h.sync(c, func(ctx context.Context) error { return h.Indexer.DeleteProduct(ctx, id) })
	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
