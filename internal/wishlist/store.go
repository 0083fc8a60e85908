package wishlist

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
)

type wishlistClient interface {
	GetWishlist(ctx context.Context) (*api.WishlistResponse, error)
	AddWishlistItem(ctx context.Context, productID string) (*api.WishlistMutationResponse, error)
	RemoveWishlistItem(ctx context.Context, productID string) (*api.WishlistMutationResponse, error)
}

type tokenSource interface {
	Token() string
}

// Store mirrors the server-side wishlist: an ordered set of product
// summaries, unique by product identifier.
type Store struct {
	client wishlistClient
	tokens tokenSource
	log    *logger.Logger

	mu      sync.RWMutex
	order   []string
	members map[string]api.Product
}

// NewStore builds a wishlist store over the collaborator client.
func NewStore(client wishlistClient, tokens tokenSource, log *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("wishlist client is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Store{
		client:  client,
		tokens:  tokens,
		log:     log,
		members: map[string]api.Product{},
	}, nil
}

// Refresh fetches the wishlist and replaces the local set wholesale. With no
// active session the set is simply emptied; an anonymous visitor has no
// wishlist to fetch.
func (s *Store) Refresh(ctx context.Context) error {
	if s.tokens.Token() == "" {
		s.replace(nil)
		return nil
	}

	resp, err := s.client.GetWishlist(ctx)
	if err != nil {
		return err
	}
	s.replace(resp.Data)
	return nil
}

// Add puts the product on the wishlist, then re-syncs so IsMember reflects
// the server's view once the call returns.
func (s *Store) Add(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("product id is required")
	}
	if _, err := s.client.AddWishlistItem(ctx, productID); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.log.Debug(s.log.WithProductID(ctx, productID), "wishlist item added")
	return nil
}

// Remove drops the product from the wishlist. The local set is updated from
// the server acknowledgment rather than by assuming the removal happened;
// on failure the member stays and the error is returned.
func (s *Store) Remove(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("product id is required")
	}
	resp, err := s.client.RemoveWishlistItem(ctx, productID)
	if err != nil {
		return err
	}

	remaining := map[string]struct{}{}
	for _, id := range resp.Data {
		remaining[id] = struct{}{}
	}

	s.mu.Lock()
	order := s.order[:0]
	for _, id := range s.order {
		if _, ok := remaining[id]; ok {
			order = append(order, id)
		} else {
			delete(s.members, id)
		}
	}
	s.order = order
	s.mu.Unlock()

	s.log.Debug(s.log.WithProductID(ctx, productID), "wishlist item removed")
	return nil
}

// IsMember is a synchronous membership test against the last known snapshot.
// Views call this per visible product on every render, so it never touches
// the network.
func (s *Store) IsMember(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[productID]
	return ok
}

// Items returns the wishlist products in server order.
func (s *Store) Items() []api.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]api.Product, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.members[id])
	}
	return items
}

// Len returns the number of wishlist members.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store) replace(products []api.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	s.members = map[string]api.Product{}
	for _, product := range products {
		if _, seen := s.members[product.ID]; seen {
			continue
		}
		s.order = append(s.order, product.ID)
		s.members[product.ID] = product
	}
}
