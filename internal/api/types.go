package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a catalog taxonomy entry.
type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// Brand is a catalog taxonomy entry.
type Brand struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// Product is the catalog representation returned by product endpoints and
// embedded in populated cart, wishlist, and order payloads.
type Product struct {
	ID             string          `json:"_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	ImageCover     string          `json:"imageCover,omitempty"`
	Category       Category        `json:"category,omitempty"`
	Brand          Brand           `json:"brand,omitempty"`
	RatingsAverage float64         `json:"ratingsAverage,omitempty"`
	Quantity       int             `json:"quantity,omitempty"`
}

// CartEntry is a single cart line. Price is the server-computed unit price,
// which may differ from the product's list price under promotions.
type CartEntry struct {
	ID      string          `json:"_id"`
	Count   int             `json:"count"`
	Price   decimal.Decimal `json:"price"`
	Product Product         `json:"product"`
}

// CartData is the cart body inside a cart response.
type CartData struct {
	ID             string          `json:"_id"`
	CartOwner      string          `json:"cartOwner"`
	Products       []CartEntry     `json:"products"`
	TotalCartPrice decimal.Decimal `json:"totalCartPrice"`
}

// CartResponse is the envelope returned by every cart endpoint.
type CartResponse struct {
	Status         string   `json:"status"`
	Message        string   `json:"message,omitempty"`
	NumOfCartItems int      `json:"numOfCartItems"`
	CartID         string   `json:"cartId"`
	Data           CartData `json:"data"`
}

// WishlistResponse is the envelope returned by GET /wishlist.
type WishlistResponse struct {
	Status string    `json:"status"`
	Count  int       `json:"count"`
	Data   []Product `json:"data"`
}

// WishlistMutationResponse acknowledges a wishlist add or remove. Data holds
// the product identifiers remaining on the wishlist.
type WishlistMutationResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Data    []string `json:"data"`
}

// OrderUser identifies the customer on an order record.
type OrderUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// OrderItem is a purchased line within an order.
type OrderItem struct {
	Count   int             `json:"count"`
	Price   decimal.Decimal `json:"price"`
	Product Product         `json:"product"`
}

// ShippingAddress is the delivery payload for checkout operations.
type ShippingAddress struct {
	Details string `json:"details" validate:"required"`
	Phone   string `json:"phone" validate:"required,mobile_phone"`
	City    string `json:"city" validate:"required"`
}

// Order is a read-only order record.
type Order struct {
	ID                string          `json:"_id"`
	User              OrderUser       `json:"user"`
	CartItems         []OrderItem     `json:"cartItems"`
	TotalOrderPrice   decimal.Decimal `json:"totalOrderPrice"`
	PaymentMethodType string          `json:"paymentMethodType"`
	IsPaid            bool            `json:"isPaid"`
	IsDelivered       bool            `json:"isDelivered"`
	CreatedAt         time.Time       `json:"createdAt"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
}

// AuthUser is the identity block returned by the auth endpoints.
type AuthUser struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AuthResponse is returned by signin and signup.
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

// SignInInput carries signin credentials.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpInput carries the signup payload.
type SignUpInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
	Phone      string `json:"phone"`
}

// ProductList is the paginated envelope for product listings.
type ProductList struct {
	Results int       `json:"results"`
	Data    []Product `json:"data"`
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Data Product `json:"data"`
}

// CategoryList wraps category listings.
type CategoryList struct {
	Results int        `json:"results"`
	Data    []Category `json:"data"`
}

// BrandList wraps brand listings.
type BrandList struct {
	Results int     `json:"results"`
	Data    []Brand `json:"data"`
}

// BrandResponse wraps a single brand.
type BrandResponse struct {
	Data Brand `json:"data"`
}

// OrderList wraps the global order listing.
type OrderList struct {
	Results int     `json:"results"`
	Data    []Order `json:"data"`
}

// CheckoutSession is returned when initiating a hosted payment.
type CheckoutSession struct {
	Status  string `json:"status"`
	Session struct {
		URL string `json:"url"`
	} `json:"session"`
}

// CashOrderResponse acknowledges a cash-on-delivery order.
type CashOrderResponse struct {
	Status string `json:"status"`
	Data   Order  `json:"data"`
}
