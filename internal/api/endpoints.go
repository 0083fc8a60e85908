package api

import (
	"context"
	"net/http"
	"net/url"
)

// SignIn exchanges credentials for a token and identity.
func (c *Client) SignIn(ctx context.Context, input SignInInput) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, call{
		operation: "sign_in",
		method:    http.MethodPost,
		path:      "/auth/signin",
		body:      input,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp registers a new account and returns a token and identity.
func (c *Client) SignUp(ctx context.Context, input SignUpInput) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, call{
		operation: "sign_up",
		method:    http.MethodPost,
		path:      "/auth/signup",
		body:      input,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCart fetches the authoritative cart for the current session.
func (c *Client) GetCart(ctx context.Context) (*CartResponse, error) {
	var out CartResponse
	err := c.do(ctx, call{
		operation: "get_cart",
		method:    http.MethodGet,
		path:      "/cart",
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddCartItem creates or increments a cart line. The returned cart carries
// unpopulated product references; callers refresh for the full view.
func (c *Client) AddCartItem(ctx context.Context, productID string) (*CartResponse, error) {
	var out CartResponse
	err := c.do(ctx, call{
		operation: "add_cart_item",
		method:    http.MethodPost,
		path:      "/cart",
		body:      map[string]string{"productId": productID},
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartItemCount sets the quantity of an existing cart line and returns
// the resulting cart representation.
func (c *Client) UpdateCartItemCount(ctx context.Context, productID string, count int) (*CartResponse, error) {
	var out CartResponse
	err := c.do(ctx, call{
		operation: "update_cart_item",
		method:    http.MethodPut,
		path:      "/cart/" + url.PathEscape(productID),
		body:      map[string]int{"count": count},
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveCartItem deletes a cart line and returns the resulting cart
// representation.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) (*CartResponse, error) {
	var out CartResponse
	err := c.do(ctx, call{
		operation: "remove_cart_item",
		method:    http.MethodDelete,
		path:      "/cart/" + url.PathEscape(productID),
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWishlist fetches the populated wishlist for the current session.
func (c *Client) GetWishlist(ctx context.Context) (*WishlistResponse, error) {
	var out WishlistResponse
	err := c.do(ctx, call{
		operation: "get_wishlist",
		method:    http.MethodGet,
		path:      "/wishlist",
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddWishlistItem adds a product to the wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, productID string) (*WishlistMutationResponse, error) {
	var out WishlistMutationResponse
	err := c.do(ctx, call{
		operation: "add_wishlist_item",
		method:    http.MethodPost,
		path:      "/wishlist",
		body:      map[string]string{"productId": productID},
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveWishlistItem removes a product from the wishlist. The acknowledgment
// lists the identifiers still on the wishlist.
func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) (*WishlistMutationResponse, error) {
	var out WishlistMutationResponse
	err := c.do(ctx, call{
		operation: "remove_wishlist_item",
		method:    http.MethodDelete,
		path:      "/wishlist/" + url.PathEscape(productID),
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAllOrders fetches the global order list.
func (c *Client) ListAllOrders(ctx context.Context) (*OrderList, error) {
	var out OrderList
	err := c.do(ctx, call{
		operation: "list_all_orders",
		method:    http.MethodGet,
		path:      "/orders",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUserOrders fetches the orders placed by the given user. The
// collaborator returns a bare array here, unlike the global listing.
func (c *Client) ListUserOrders(ctx context.Context, userID string) ([]Order, error) {
	var out []Order
	err := c.do(ctx, call{
		operation: "list_user_orders",
		method:    http.MethodGet,
		path:      "/orders/user/" + url.PathEscape(userID),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListProducts fetches the product catalog.
func (c *Client) ListProducts(ctx context.Context) (*ProductList, error) {
	var out ProductList
	err := c.do(ctx, call{
		operation: "list_products",
		method:    http.MethodGet,
		path:      "/products",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProductsByBrand fetches the products of a single brand.
func (c *Client) ListProductsByBrand(ctx context.Context, brandID string) (*ProductList, error) {
	query := url.Values{}
	query.Set("brand", brandID)
	var out ProductList
	err := c.do(ctx, call{
		operation: "list_products_by_brand",
		method:    http.MethodGet,
		path:      "/products",
		query:     query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var out ProductResponse
	err := c.do(ctx, call{
		operation: "get_product",
		method:    http.MethodGet,
		path:      "/products/" + url.PathEscape(productID),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListCategories fetches the category taxonomy.
func (c *Client) ListCategories(ctx context.Context) (*CategoryList, error) {
	var out CategoryList
	err := c.do(ctx, call{
		operation: "list_categories",
		method:    http.MethodGet,
		path:      "/categories",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBrands fetches the brand taxonomy.
func (c *Client) ListBrands(ctx context.Context) (*BrandList, error) {
	var out BrandList
	err := c.do(ctx, call{
		operation: "list_brands",
		method:    http.MethodGet,
		path:      "/brands",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBrand fetches a single brand.
func (c *Client) GetBrand(ctx context.Context, brandID string) (*Brand, error) {
	var out BrandResponse
	err := c.do(ctx, call{
		operation: "get_brand",
		method:    http.MethodGet,
		path:      "/brands/" + url.PathEscape(brandID),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateCheckoutSession initiates a hosted payment for the given cart and
// returns the redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, cartID, returnURL string, addr ShippingAddress) (*CheckoutSession, error) {
	query := url.Values{}
	if returnURL != "" {
		query.Set("url", returnURL)
	}
	var out CheckoutSession
	err := c.do(ctx, call{
		operation: "create_checkout_session",
		method:    http.MethodPost,
		path:      "/orders/checkout-session/" + url.PathEscape(cartID),
		query:     query,
		body:      map[string]ShippingAddress{"shippingAddress": addr},
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCashOrder places a cash-on-delivery order for the given cart.
func (c *Client) CreateCashOrder(ctx context.Context, cartID string, addr ShippingAddress) (*CashOrderResponse, error) {
	var out CashOrderResponse
	err := c.do(ctx, call{
		operation: "create_cash_order",
		method:    http.MethodPost,
		path:      "/orders/" + url.PathEscape(cartID),
		body:      map[string]ShippingAddress{"shippingAddress": addr},
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
