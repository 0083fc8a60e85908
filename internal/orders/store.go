package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
	"go.uber.org/multierr"
)

type ordersClient interface {
	ListAllOrders(ctx context.Context) (*api.OrderList, error)
	ListUserOrders(ctx context.Context, userID string) ([]api.Order, error)
}

type tokenSource interface {
	Token() string
}

// Store holds the read-only order listings for the session: the current
// user's orders and the global administrative list.
type Store struct {
	client ordersClient
	tokens tokenSource
	log    *logger.Logger

	mu         sync.RWMutex
	userOrders []api.Order
	allOrders  []api.Order
	loadErr    error
	loaded     bool
}

// NewStore builds an orders store over the collaborator client.
func NewStore(client ordersClient, tokens tokenSource, log *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("orders client is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Store{client: client, tokens: tokens, log: log}, nil
}

// Load fetches the user's orders and the global list concurrently. Either
// fetch failing records an error without discarding the other's data. A
// cancelled ctx aborts both fetches and leaves the store untouched; results
// from cancelled fetches never race into the store.
func (s *Store) Load(ctx context.Context) error {
	var (
		wg      sync.WaitGroup
		userErr error
		allErr  error
	)

	token := s.tokens.Token()
	if token != "" {
		userID, err := DecodeUserID(token)
		if err != nil {
			// An undecodable token still allows the global listing.
			s.log.Warn(ctx, "cannot derive user id from token, skipping user orders")
			userErr = err
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				orders, err := s.client.ListUserOrders(ctx, userID)
				if err != nil {
					userErr = err
					return
				}
				s.store(ctx, func() { s.userOrders = orders })
			}()
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		list, err := s.client.ListAllOrders(ctx)
		if err != nil {
			allErr = err
			return
		}
		s.store(ctx, func() { s.allOrders = list.Data })
	}()

	wg.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	combined := multierr.Combine(userErr, allErr)
	s.mu.Lock()
	s.loadErr = combined
	s.loaded = true
	s.mu.Unlock()
	return combined
}

// store applies a state write unless ctx was cancelled, so a torn-down
// consumer cannot receive late results.
func (s *Store) store(ctx context.Context, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	apply()
}

// UserOrders returns the current user's orders as last loaded.
func (s *Store) UserOrders() []api.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.Order(nil), s.userOrders...)
}

// AllOrders returns the global order list as last loaded.
func (s *Store) AllOrders() []api.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.Order(nil), s.allOrders...)
}

// Err reports the error recorded by the last Load, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Loaded reports whether a Load has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
