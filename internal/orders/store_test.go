package orders

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-sync/internal/api"
	pkgerrors "github.com/angelmondragon/storefront-sync/pkg/errors"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

type stubOrdersClient struct {
	listAll  func(ctx context.Context) (*api.OrderList, error)
	listUser func(ctx context.Context, userID string) ([]api.Order, error)
}

func (s *stubOrdersClient) ListAllOrders(ctx context.Context) (*api.OrderList, error) {
	return s.listAll(ctx)
}

func (s *stubOrdersClient) ListUserOrders(ctx context.Context, userID string) ([]api.Order, error) {
	return s.listUser(ctx, userID)
}

type stubTokens struct {
	token string
}

func (s *stubTokens) Token() string { return s.token }

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "orders-test", Level: logger.ParseLevel("error")})
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestDecodeUserID(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"id": "u-42", "name": "A B"})
	id, err := DecodeUserID(token)
	if err != nil {
		t.Fatalf("DecodeUserID: %v", err)
	}
	if id != "u-42" {
		t.Fatalf("expected u-42, got %q", id)
	}

	if _, err := DecodeUserID("not-a-token"); err == nil {
		t.Fatalf("malformed token must fail to decode")
	}
	if _, err := DecodeUserID(signedToken(t, jwt.MapClaims{"name": "no id"})); err == nil {
		t.Fatalf("token without id claim must fail")
	}
}

func TestLoadFetchesBothListsConcurrently(t *testing.T) {
	var inFlight, peak atomic.Int32
	track := func() func() {
		current := inFlight.Add(1)
		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}
		return func() { inFlight.Add(-1) }
	}

	client := &stubOrdersClient{
		listAll: func(ctx context.Context) (*api.OrderList, error) {
			defer track()()
			time.Sleep(20 * time.Millisecond)
			return &api.OrderList{Data: []api.Order{{ID: "o-all"}}}, nil
		},
		listUser: func(ctx context.Context, userID string) ([]api.Order, error) {
			defer track()()
			if userID != "u-1" {
				t.Errorf("unexpected user id %q", userID)
			}
			time.Sleep(20 * time.Millisecond)
			return []api.Order{{ID: "o-user"}}, nil
		},
	}

	tokens := &stubTokens{token: signedToken(t, jwt.MapClaims{"id": "u-1"})}
	store, err := NewStore(client, tokens, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if peak.Load() < 2 {
		t.Fatalf("fetches should overlap, peak concurrency %d", peak.Load())
	}
	if len(store.UserOrders()) != 1 || len(store.AllOrders()) != 1 {
		t.Fatalf("expected both lists populated: user=%d all=%d", len(store.UserOrders()), len(store.AllOrders()))
	}
}

func TestLoadToleratesPartialFailure(t *testing.T) {
	client := &stubOrdersClient{
		listAll: func(ctx context.Context) (*api.OrderList, error) {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "listing down")
		},
		listUser: func(ctx context.Context, userID string) ([]api.Order, error) {
			return []api.Order{{ID: "o-user"}}, nil
		},
	}

	tokens := &stubTokens{token: signedToken(t, jwt.MapClaims{"id": "u-1"})}
	store, _ := NewStore(client, tokens, testLogger())

	err := store.Load(context.Background())
	if err == nil {
		t.Fatalf("expected an error from the failed fetch")
	}
	if len(store.UserOrders()) != 1 {
		t.Fatalf("successful fetch must survive the other's failure")
	}
	if store.Err() == nil {
		t.Fatalf("error flag should be readable by views")
	}
}

func TestLoadWithoutTokenSkipsUserOrders(t *testing.T) {
	userCalled := false
	client := &stubOrdersClient{
		listAll: func(ctx context.Context) (*api.OrderList, error) {
			return &api.OrderList{Data: []api.Order{{ID: "o-all"}}}, nil
		},
		listUser: func(ctx context.Context, userID string) ([]api.Order, error) {
			userCalled = true
			return nil, nil
		},
	}

	store, _ := NewStore(client, &stubTokens{}, testLogger())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if userCalled {
		t.Fatalf("user orders must not be fetched without a token")
	}
	if len(store.AllOrders()) != 1 {
		t.Fatalf("global list should load")
	}
}

func TestCancelledLoadDoesNotMutateStore(t *testing.T) {
	release := make(chan struct{})
	client := &stubOrdersClient{
		listAll: func(ctx context.Context) (*api.OrderList, error) {
			// Simulates a response arriving after the consumer tore down.
			<-release
			return &api.OrderList{Data: []api.Order{{ID: "late"}}}, nil
		},
		listUser: func(ctx context.Context, userID string) ([]api.Order, error) {
			<-release
			return []api.Order{{ID: "late-user"}}, nil
		},
	}

	tokens := &stubTokens{token: signedToken(t, jwt.MapClaims{"id": "u-1"})}
	store, _ := NewStore(client, tokens, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Load(ctx) }()

	cancel()
	close(release)

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(store.UserOrders()) != 0 || len(store.AllOrders()) != 0 {
		t.Fatalf("cancelled load must not mutate store state")
	}
}
