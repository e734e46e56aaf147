package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pawelapps/ecommerce/internal/handlers"
	"github.com/pawelapps/ecommerce/internal/middleware/auth"
	"github.com/pawelapps/ecommerce/internal/models"
	"github.com/pawelapps/ecommerce/internal/repo"
	"github.com/pawelapps/ecommerce/internal/service"
	httpserver "github.com/pawelapps/ecommerce/internal/transport/http"
)

type stubPublisher struct {
	mu     sync.Mutex
	events []map[string]any
}

func (s *stubPublisher) PublishEvent(_ context.Context, _, _ string, event interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := event.(map[string]any); ok {
		s.events = append(s.events, m)
	}
	return nil
}

func (s *stubPublisher) Close() error { return nil }

type stubIndexer struct {
	indexed []models.Product
	deleted []uint
}

func (s *stubIndexer) IndexProduct(_ context.Context, p models.Product) error {
	s.indexed = append(s.indexed, p)
	return nil
}

func (s *stubIndexer) DeleteProduct(_ context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type testEnv struct {
	T       *testing.T
	DB      *gorm.DB
	E       *echo.Echo
	Tokens  *service.TokenService
	Pub     *stubPublisher
	Idx     *stubIndexer
	User    models.User
	Admin   models.User
	Product models.Product
}

func newTestEnv(t *testing.T) *testEnv {
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

	r := repo.New(db)
	tokens := &service.TokenService{
		DB:            db,
		JWTSecret:     []byte("test-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	pub := &stubPublisher{}
	idx := &stubIndexer{}

	catalogSvc := &service.CatalogService{Repo: r}

	deps := httpserver.Deps{
		AuthHandler:     &handlers.AuthHandler{Repo: r, Tokens: tokens, Producer: pub},
		ProductHandler:  &handlers.ProductHandler{Svc: catalogSvc, Producer: pub, Indexer: idx},
		CategoryHandler: &handlers.CategoryHandler{Svc: catalogSvc, Producer: pub},
		CartHandler:     &handlers.CartHandler{Svc: &service.CartService{Repo: r}, Producer: pub},
		OrderHandler:    &handlers.OrderHandler{Svc: &service.OrderService{Repo: r}, Producer: pub},
		SearchHandler:   handlers.NewSearchHandler(nil, "product"),
		Guard:           &auth.Guard{Tokens: tokens},
	}

	e := echo.New()
	httpserver.Register(e, &deps)

	env := &testEnv{
		T:      t,
		DB:     db,
		E:      e,
		Tokens: tokens,
		Pub:    pub,
		Idx:    idx,
	}

	env.User = models.User{Email: "user@email.com", PasswordHash: "x", Role: "user"}
	require.NoError(t, db.Create(&env.User).Error)

	env.Admin = models.User{Email: "admin@email.com", PasswordHash: "x", Role: "admin"}
	require.NoError(t, db.Create(&env.Admin).Error)

	category := models.ProductCategory{CategoryName: "Test Category"}
	require.NoError(t, db.Create(&category).Error)

	env.Product = models.Product{
		SKU:               "1",
		Name:              "Test Product 1",
		Description:       "Test Description 1",
		UnitPrice:         1,
		UnitsInStock:      10,
		ProductCategoryID: category.ID,
	}
	require.NoError(t, db.Create(&env.Product).Error)

	return env
}

func (env *testEnv) cookieFor(user models.User) *http.Cookie {
	access, err := env.Tokens.SignAccessToken(user.ID, user.Email, user.Role)
	require.NoError(env.T, err)
	return &http.Cookie{Name: "accessToken", Value: access, Path: "/"}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}
