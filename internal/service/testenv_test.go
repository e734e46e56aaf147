package service_test

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pawelapps/ecommerce/internal/models"
	"github.com/pawelapps/ecommerce/internal/repo"
	"github.com/pawelapps/ecommerce/internal/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ProductCategory{},
		&models.Product{},
		&models.User{},
		&models.RefreshToken{},
		&models.Cart{},
		&models.CartProduct{},
		&models.Order{},
		&models.Customer{},
		&models.ShippingAddress{},
		&models.Summary{},
		&models.OrderProduct{},
	))

	return db
}

type fixtures struct {
	DB      *gorm.DB
	Repo    *repo.GormRepo
	Cart    *service.CartService
	Orders  *service.OrderService
	Catalog *service.CatalogService
	User    models.User
	Product models.Product
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	db := newTestDB(t)
	r := repo.New(db)

	f := &fixtures{
		DB:      db,
		Repo:    r,
		Cart:    &service.CartService{Repo: r},
		Orders:  &service.OrderService{Repo: r},
		Catalog: &service.CatalogService{Repo: r},
	}

	f.User = models.User{Email: "test@email.com", PasswordHash: "x", Role: "user"}
	require.NoError(t, db.Create(&f.User).Error)

	category := models.ProductCategory{CategoryName: "Test Category"}
	require.NoError(t, db.Create(&category).Error)

	f.Product = models.Product{
		SKU:               "1",
		Name:              "Test Product 1",
		Description:       "Test Description 1",
		UnitPrice:         1,
		UnitsInStock:      10,
		ProductCategoryID: category.ID,
	}
	require.NoError(t, db.Create(&f.Product).Error)

	return f
}
