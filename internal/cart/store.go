package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
	"github.com/shopspring/decimal"
)

type cartClient interface {
	GetCart(ctx context.Context) (*api.CartResponse, error)
	AddCartItem(ctx context.Context, productID string) (*api.CartResponse, error)
	UpdateCartItemCount(ctx context.Context, productID string, count int) (*api.CartResponse, error)
	RemoveCartItem(ctx context.Context, productID string) (*api.CartResponse, error)
}

// Item is a cart line as last confirmed by the server.
type Item struct {
	ProductID string
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Snapshot is the wholesale-replaced cart state. It is always the last
// representation returned or fetched from the collaborator, never a
// client-computed projection, so server-side pricing and promotions cannot
// drift from what the user sees.
type Snapshot struct {
	CartID     string
	Items      []Item
	TotalPrice decimal.Decimal
	ItemCount  int
}

// Store mirrors the server-side cart for the current session.
type Store struct {
	client cartClient
	log    *logger.Logger

	mu       sync.RWMutex
	snapshot Snapshot

	// locks serializes mutations per product: mutation N+1 starts only after
	// mutation N's resulting snapshot swap completed, so rapid quantity
	// changes cannot land out of order. Different products run concurrently.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore builds a cart store over the collaborator client.
func NewStore(client cartClient, log *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("cart client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Store{
		client: client,
		log:    log,
		locks:  map[string]*sync.Mutex{},
	}, nil
}

// Refresh fetches the authoritative cart and replaces the snapshot.
func (s *Store) Refresh(ctx context.Context) error {
	resp, err := s.client.GetCart(ctx)
	if err != nil {
		return err
	}
	s.swap(fromResponse(resp))
	return nil
}

// AddItem creates or increments the cart line for productID. The add
// acknowledgment carries unpopulated product references, so the snapshot is
// re-synced with a full fetch before the call returns.
func (s *Store) AddItem(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("product id is required")
	}
	lock := s.lockFor(productID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.client.AddCartItem(ctx, productID); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.log.Debug(s.log.WithProductID(ctx, productID), "cart item added")
	return nil
}

// SetItemQuantity sets the quantity for productID. A quantity below one is
// equivalent to RemoveItem. The server's returned cart representation is
// applied directly, saving the extra fetch.
func (s *Store) SetItemQuantity(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return fmt.Errorf("product id is required")
	}
	if quantity < 1 {
		return s.RemoveItem(ctx, productID)
	}
	lock := s.lockFor(productID)
	lock.Lock()
	defer lock.Unlock()

	resp, err := s.client.UpdateCartItemCount(ctx, productID, quantity)
	if err != nil {
		return err
	}
	s.swap(fromResponse(resp))
	return nil
}

// RemoveItem deletes the cart line for productID, applying the server's
// returned representation.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("product id is required")
	}
	lock := s.lockFor(productID)
	lock.Lock()
	defer lock.Unlock()

	resp, err := s.client.RemoveCartItem(ctx, productID)
	if err != nil {
		return err
	}
	s.swap(fromResponse(resp))
	s.log.Debug(s.log.WithProductID(ctx, productID), "cart item removed")
	return nil
}

// Snapshot returns a copy of the last confirmed cart state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	snap.Items = append([]Item(nil), s.snapshot.Items...)
	return snap
}

// ItemCount returns the server-reported item count.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.ItemCount
}

// TotalPrice returns the server-computed cart total.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.TotalPrice
}

func (s *Store) swap(next Snapshot) {
	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()
}

func (s *Store) lockFor(productID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[productID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[productID] = lock
	}
	return lock
}

func fromResponse(resp *api.CartResponse) Snapshot {
	items := make([]Item, 0, len(resp.Data.Products))
	for _, entry := range resp.Data.Products {
		items = append(items, Item{
			ProductID: entry.Product.ID,
			Title:     entry.Product.Title,
			UnitPrice: entry.Price,
			Quantity:  entry.Count,
		})
	}
	cartID := resp.CartID
	if cartID == "" {
		cartID = resp.Data.ID
	}
	return Snapshot{
		CartID:     cartID,
		Items:      items,
		TotalPrice: resp.Data.TotalCartPrice,
		ItemCount:  resp.NumOfCartItems,
	}
}
