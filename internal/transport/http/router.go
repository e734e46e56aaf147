package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/pawelapps/ecommerce/internal/handlers"
	"github.com/pawelapps/ecommerce/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	SearchHandler   *handlers.SearchHandler
	Guard           *auth.Guard
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)
	api.POST("/auth/logout", d.AuthHandler.LogOut)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/search", d.SearchHandler.Search)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.POST("/products", d.ProductHandler.CreateProduct, d.Guard.AdminOnly)
	api.PUT("/products", d.ProductHandler.UpdateProduct, d.Guard.AdminOnly)
	api.DELETE("/products/:id", d.ProductHandler.DeleteProduct, d.Guard.AdminOnly)

	api.GET("/product-categories", d.CategoryHandler.GetCategories)
	api.GET("/product-categories/:id", d.CategoryHandler.GetCategory)
	api.GET("/product-categories/:id/products", d.CategoryHandler.GetCategoryProducts)
	api.POST("/product-categories", d.CategoryHandler.CreateCategory, d.Guard.AdminOnly)
	api.PUT("/product-categories", d.CategoryHandler.UpdateCategory, d.Guard.AdminOnly)
	api.DELETE("/product-categories/:id", d.CategoryHandler.DeleteCategory, d.Guard.AdminOnly)

	cart := api.Group("/cart", d.Guard.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:id/increase", d.CartHandler.IncreaseQuantity)
	cart.PATCH("/:id/decrease", d.CartHandler.DecreaseQuantity)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	orders := api.Group("/orders", d.Guard.RequireLogin)
	orders.GET("", d.OrderHandler.GetOrders, d.Guard.AdminOnly)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.GET("/user/:email", d.OrderHandler.GetOrdersByUserEmail)
	orders.GET("/customer/:email", d.OrderHandler.GetOrdersByCustomerEmail)
	orders.POST("", d.OrderHandler.CreateOrder)
}
