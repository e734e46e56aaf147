package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawelapps/ecommerce/internal/models"
)

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.ProductCategory, error) {
	category := models.ProductCategory{}
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) GetCategories(ctx context.Context) ([]models.ProductCategory, error) {
	var items []models.ProductCategory
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.ProductCategory) (*models.ProductCategory, error) {
	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *GormRepo) UpdateCategory(ctx context.Context, category *models.ProductCategory) (*models.ProductCategory, error) {
	var existing models.ProductCategory
	if err := r.DB.WithContext(ctx).First(&existing, category.ID).Error; err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category and its products in one transaction.
func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.ProductCategory{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
