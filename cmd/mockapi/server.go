package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
)

var signingKey = []byte("mockapi-local-secret")

type account struct {
	id       string
	name     string
	password string
}

type cartLine struct {
	lineID string
	count  int
}

type server struct {
	log *logger.Logger

	mu        sync.Mutex
	accounts  map[string]*account          // email -> account
	carts     map[string]map[string]*cartLine // user id -> product id -> line
	cartIDs   map[string]string            // user id -> cart id
	wishlists map[string][]string          // user id -> product ids, insertion order
	orders    []api.Order

	products   []api.Product
	categories []api.Category
	brands     []api.Brand
}

func newServer(log *logger.Logger) *server {
	s := &server{
		log:       log,
		accounts:  map[string]*account{},
		carts:     map[string]map[string]*cartLine{},
		cartIDs:   map[string]string{},
		wishlists: map[string][]string{},
	}
	s.seed()
	return s
}

func (s *server) seed() {
	electronics := api.Category{ID: "cat-electronics", Name: "Electronics", Slug: "electronics"}
	fashion := api.Category{ID: "cat-fashion", Name: "Fashion", Slug: "fashion"}
	lumen := api.Brand{ID: "brand-lumen", Name: "Lumen", Slug: "lumen"}
	weave := api.Brand{ID: "brand-weave", Name: "Weave", Slug: "weave"}

	s.categories = []api.Category{electronics, fashion}
	s.brands = []api.Brand{lumen, weave}
	s.products = []api.Product{
		{ID: "prod-lamp", Title: "Desk Lamp", Price: decimal.NewFromInt(120), Category: electronics, Brand: lumen, Quantity: 40},
		{ID: "prod-bulb", Title: "Smart Bulb", Price: decimal.NewFromInt(45), Category: electronics, Brand: lumen, Quantity: 200},
		{ID: "prod-scarf", Title: "Wool Scarf", Price: decimal.NewFromInt(80), Category: fashion, Brand: weave, Quantity: 15},
	}
	s.accounts["shopper@example.com"] = &account{id: "user-1", name: "Test Shopper", password: "Abcde1"}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Post("/api/v1/auth/signin", s.handleSignIn)
	r.Post("/api/v1/auth/signup", s.handleSignUp)

	r.Get("/api/v1/products", s.handleListProducts)
	r.Get("/api/v1/products/{productID}", s.handleGetProduct)
	r.Get("/api/v1/categories", s.handleListCategories)
	r.Get("/api/v1/brands", s.handleListBrands)
	r.Get("/api/v1/brands/{brandID}", s.handleGetBrand)

	// Order listings are open reads on the real collaborator; only the
	// checkout mutations demand a token.
	r.Get("/api/v1/orders", s.handleListOrders)
	r.Get("/api/v1/orders/user/{userID}", s.handleListUserOrders)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/api/v1/cart", s.handleGetCart)
		r.Post("/api/v1/cart", s.handleAddCartItem)
		r.Put("/api/v1/cart/{productID}", s.handleUpdateCartItem)
		r.Delete("/api/v1/cart/{productID}", s.handleRemoveCartItem)

		r.Get("/api/v1/wishlist", s.handleGetWishlist)
		r.Post("/api/v1/wishlist", s.handleAddWishlistItem)
		r.Delete("/api/v1/wishlist/{productID}", s.handleRemoveWishlistItem)

		r.Post("/api/v1/orders/checkout-session/{cartID}", s.handleCheckoutSession)
		r.Post("/api/v1/orders/{cartID}", s.handleCashOrder)
	})

	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := s.log.WithField(r.Context(), "path", r.URL.Path)
		s.log.Debug(s.log.WithField(ctx, "method", r.Method), "request")
		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func userIDFrom(r *http.Request) string {
	userID, _ := r.Context().Value(ctxKey{}).(string)
	return userID
}

func (s *server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("token")
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "No token provided, please login or signup")
			return
		}
		claims := jwt.MapClaims{}
		_, err := jwt.NewParser().ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return signingKey, nil
		})
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid Token. please login again")
			return
		}
		userID, _ := claims["id"].(string)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "Invalid Token. please login again")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

func (s *server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var input api.SignInInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[input.Email]
	s.mu.Unlock()
	if !ok || acct.password != input.Password {
		writeError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	s.writeAuthResponse(w, acct)
}

func (s *server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var input api.SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[input.Email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "Account Already Exists")
		return
	}
	acct := &account{id: uuid.NewString(), name: input.Name, password: input.Password}
	s.accounts[input.Email] = acct
	s.mu.Unlock()

	s.writeAuthResponse(w, acct)
}

func (s *server) writeAuthResponse(w http.ResponseWriter, acct *account) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   acct.id,
		"name": acct.name,
		"iat":  time.Now().Unix(),
	}).SignedString(signingKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}
	writeJSON(w, http.StatusOK, api.AuthResponse{
		Message: "success",
		Token:   token,
		User:    api.AuthUser{ID: acct.id, Name: acct.name},
	})
}

func (s *server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	brandID := r.URL.Query().Get("brand")

	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]api.Product, 0, len(s.products))
	for _, p := range s.products {
		if brandID != "" && p.Brand.ID != brandID {
			continue
		}
		list = append(list, p)
	}
	writeJSON(w, http.StatusOK, api.ProductList{Results: len(list), Data: list})
}

func (s *server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.findProduct(chi.URLParam(r, "productID"))
	if !ok {
		writeError(w, http.StatusNotFound, "No product found")
		return
	}
	writeJSON(w, http.StatusOK, api.ProductResponse{Data: product})
}

func (s *server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, api.CategoryList{Results: len(s.categories), Data: s.categories})
}

func (s *server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, api.BrandList{Results: len(s.brands), Data: s.brands})
}

func (s *server) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	brandID := chi.URLParam(r, "brandID")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.brands {
		if b.ID == brandID {
			writeJSON(w, http.StatusOK, api.BrandResponse{Data: b})
			return
		}
	}
	writeError(w, http.StatusNotFound, "No brand found")
}

func (s *server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.cartResponse(userID))
}

func (s *server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	userID := userIDFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findProduct(payload.ProductID); !ok {
		writeError(w, http.StatusNotFound, "No product found")
		return
	}

	cart := s.cartFor(userID)
	if line, ok := cart[payload.ProductID]; ok {
		line.count++
	} else {
		cart[payload.ProductID] = &cartLine{lineID: uuid.NewString(), count: 1}
	}
	writeJSON(w, http.StatusOK, s.cartResponse(userID))
}

func (s *server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	productID := chi.URLParam(r, "productID")
	userID := userIDFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartFor(userID)
	line, ok := cart[productID]
	if !ok {
		writeError(w, http.StatusNotFound, "No product with this id in the cart")
		return
	}
	if payload.Count < 1 {
		delete(cart, productID)
	} else {
		line.count = payload.Count
	}
	writeJSON(w, http.StatusOK, s.cartResponse(userID))
}

func (s *server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cartFor(userID), chi.URLParam(r, "productID"))
	writeJSON(w, http.StatusOK, s.cartResponse(userID))
}

func (s *server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]api.Product, 0, len(s.wishlists[userID]))
	for _, id := range s.wishlists[userID] {
		if p, ok := s.findProduct(id); ok {
			items = append(items, p)
		}
	}
	writeJSON(w, http.StatusOK, api.WishlistResponse{Status: "success", Count: len(items), Data: items})
}

func (s *server) handleAddWishlistItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	userID := userIDFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findProduct(payload.ProductID); !ok {
		writeError(w, http.StatusNotFound, "No product found")
		return
	}
	present := false
	for _, id := range s.wishlists[userID] {
		if id == payload.ProductID {
			present = true
			break
		}
	}
	if !present {
		s.wishlists[userID] = append(s.wishlists[userID], payload.ProductID)
	}
	writeJSON(w, http.StatusOK, api.WishlistMutationResponse{
		Status:  "success",
		Message: "Product added successfully to your wishlist",
		Data:    append([]string{}, s.wishlists[userID]...),
	})
}

func (s *server) handleRemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	userID := userIDFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := s.wishlists[userID][:0]
	for _, id := range s.wishlists[userID] {
		if id != productID {
			remaining = append(remaining, id)
		}
	}
	s.wishlists[userID] = remaining
	writeJSON(w, http.StatusOK, api.WishlistMutationResponse{
		Status:  "success",
		Message: "Product removed successfully from your wishlist",
		Data:    append([]string{}, remaining...),
	})
}

func (s *server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, api.OrderList{Results: len(s.orders), Data: s.orders})
}

func (s *server) handleListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []api.Order{}
	for _, order := range s.orders {
		if orderOwner(order) == userID {
			list = append(list, order)
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *server) handleCheckoutSession(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	returnURL := r.URL.Query().Get("url")

	resp := api.CheckoutSession{Status: "success"}
	resp.Session.URL = fmt.Sprintf("https://pay.local/session/%s?return=%s", cartID, returnURL)
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleCashOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ShippingAddress api.ShippingAddress `json:"shippingAddress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	userID := userIDFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(userID)
	if len(cart) == 0 {
		writeError(w, http.StatusNotFound, "Cart is empty")
		return
	}

	order := api.Order{
		ID:                uuid.NewString(),
		User:              api.OrderUser{Name: s.accountName(userID), Email: userID},
		PaymentMethodType: "cash",
		CreatedAt:         time.Now().UTC(),
		ShippingAddress:   payload.ShippingAddress,
	}
	total := decimal.Zero
	for productID, line := range cart {
		product, ok := s.findProduct(productID)
		if !ok {
			continue
		}
		order.CartItems = append(order.CartItems, api.OrderItem{
			Count:   line.count,
			Price:   product.Price,
			Product: product,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.count))))
	}
	order.TotalOrderPrice = total
	s.orders = append(s.orders, order)
	s.carts[userID] = map[string]*cartLine{}

	writeJSON(w, http.StatusOK, api.CashOrderResponse{Status: "success", Data: order})
}

func (s *server) cartFor(userID string) map[string]*cartLine {
	cart, ok := s.carts[userID]
	if !ok {
		cart = map[string]*cartLine{}
		s.carts[userID] = cart
		s.cartIDs[userID] = uuid.NewString()
	}
	return cart
}

func (s *server) cartResponse(userID string) api.CartResponse {
	cart := s.cartFor(userID)
	data := api.CartData{ID: s.cartIDs[userID], CartOwner: userID}
	total := decimal.Zero
	count := 0
	for productID, line := range cart {
		product, ok := s.findProduct(productID)
		if !ok {
			continue
		}
		data.Products = append(data.Products, api.CartEntry{
			ID:      line.lineID,
			Count:   line.count,
			Price:   product.Price,
			Product: product,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.count))))
		count += line.count
	}
	data.TotalCartPrice = total
	return api.CartResponse{
		Status:         "success",
		NumOfCartItems: count,
		CartID:         data.ID,
		Data:           data,
	}
}

func (s *server) findProduct(productID string) (api.Product, bool) {
	for _, p := range s.products {
		if p.ID == productID {
			return p, true
		}
	}
	return api.Product{}, false
}

func (s *server) accountName(userID string) string {
	for _, acct := range s.accounts {
		if acct.id == userID {
			return acct.name
		}
	}
	return "Unknown"
}

// Fixture orders carry the owning user id in the email slot so the
// per-user listing can match without a dedicated owner field.
func orderOwner(order api.Order) string {
	return order.User.Email
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"statusMsg": "fail", "message": message})
}
