package models

import (
	"time"
)

type ProductCategory struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"                                  json:"id"`
	CategoryName string    `gorm:"not null"                                                  json:"category_name"`
	Products     []Product `gorm:"foreignKey:ProductCategoryID;constraint:OnDelete:CASCADE"  json:"products,omitempty"`
}

type Product struct {
	ID                uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU               string  `gorm:"index;not null"           json:"sku"`
	Name              string  `gorm:"not null"                 json:"name"`
	Description       string  `gorm:"not null"                 json:"description"`
	UnitPrice         float64 `gorm:"not null"                 json:"unit_price"`
	UnitsInStock      uint    `json:"units_in_stock"`
	ProductCategoryID uint    `gorm:"index"                    json:"product_category_id"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	Token     string    `gorm:"unique;not null"     json:"token"`
	UserID    uint      `gorm:"index;not null"      json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"            json:"expires_at"`
	Revoked   bool      `gorm:"default:false"       json:"revoked"`
}

type Cart struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null"     json:"user_id"`
}

// CartProduct is a cart line item. Name and Description are snapshots of the
// product taken when the item was added, not live references.
type CartProduct struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID      uint   `gorm:"index;not null"           json:"cart_id"`
	ProductID   uint   `gorm:"not null"                 json:"product_id"`
	Name        string `gorm:"not null"                 json:"name"`
	Description string `gorm:"not null"                 json:"description"`
	Quantity    uint   `gorm:"not null;default:1"       json:"quantity"`
}

// Order owns its children. The whole aggregate is written in one transaction
// and never mutated afterwards.
type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint            `gorm:"index;not null"           json:"user_id"`
	CreatedAt       int64           `json:"created_at"`
	Customer        Customer        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"customer"`
	ShippingAddress ShippingAddress `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"shipping_address"`
	Summary         Summary         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"summary"`
	OrderProducts   []OrderProduct  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_products"`
}

type Customer struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint   `gorm:"uniqueIndex;not null"     json:"order_id"`
	FirstName   string `gorm:"not null"                 json:"first_name"`
	LastName    string `gorm:"not null"                 json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `gorm:"index;not null"           json:"email"`
}

type ShippingAddress struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       uint   `gorm:"uniqueIndex;not null"     json:"order_id"`
	StreetAddress string `gorm:"not null"                 json:"street_address"`
	City          string `gorm:"not null"                 json:"city"`
	Country       string `gorm:"not null"                 json:"country"`
	ZipCode       string `json:"zip_code"`
}

// Summary is computed once when the order is placed and never recomputed.
type Summary struct {
	ID                      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID                 uint    `gorm:"uniqueIndex;not null"     json:"order_id"`
	TotalCartValue          float64 `gorm:"not null"                 json:"total_cart_value"`
	TotalQuantityOfProducts uint    `gorm:"not null"                 json:"total_quantity_of_products"`
}

// OrderProduct is an immutable snapshot of a product at order time.
type OrderProduct struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint    `gorm:"index;not null"           json:"order_id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `gorm:"not null"                 json:"description"`
	Quantity    uint    `gorm:"not null"                 json:"quantity"`
	UnitPrice   float64 `gorm:"not null"                 json:"unit_price"`
}
