package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pawelapps/ecommerce/internal/apperror"
	"github.com/pawelapps/ecommerce/internal/models"
	"github.com/pawelapps/ecommerce/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("product %d", id)
	}
	return product, err
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) GetProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	if _, err := s.Repo.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product category %d", categoryID)
		}
		return nil, err
	}
	return s.Repo.GetProductsByCategory(ctx, categoryID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.UnitPrice < 0 {
		return nil, apperror.Validation("unit price cannot be negative")
	}
	return s.Repo.CreateProduct(ctx, product)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.UnitPrice < 0 {
		return nil, apperror.Validation("unit price cannot be negative")
	}
	updated, err := s.Repo.UpdateProduct(ctx, product)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("product %d", product.ID)
	}
	return updated, err
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("product %d", id)
	}
	return err
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.ProductCategory, error) {
	category, err := s.Repo.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("product category %d", id)
	}
	return category, err
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.ProductCategory, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.ProductCategory) (*models.ProductCategory, error) {
	if category.CategoryName == "" {
		return nil, apperror.Validation("category name required")
	}
	return s.Repo.CreateCategory(ctx, category)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, category *models.ProductCategory) (*models.ProductCategory, error) {
	updated, err := s.Repo.UpdateCategory(ctx, category)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("product category %d", category.ID)
	}
	return updated, err
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.Repo.DeleteCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("product category %d", id)
	}
	return err
}
