package checkout

import (
	"context"
	"io"
	"testing"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/pkg/errors"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
)

type stubCheckoutClient struct {
	sessions   int
	cashOrders int

	lastCartID    string
	lastReturnURL string
	lastAddr      api.ShippingAddress

	sessionURL string
	sessionErr error
	cashErr    error
}

func (s *stubCheckoutClient) CreateCheckoutSession(ctx context.Context, cartID, returnURL string, addr api.ShippingAddress) (*api.CheckoutSession, error) {
	s.sessions++
	s.lastCartID = cartID
	s.lastReturnURL = returnURL
	s.lastAddr = addr
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	resp := &api.CheckoutSession{Status: "success"}
	resp.Session.URL = s.sessionURL
	return resp, nil
}

func (s *stubCheckoutClient) CreateCashOrder(ctx context.Context, cartID string, addr api.ShippingAddress) (*api.CashOrderResponse, error) {
	s.cashOrders++
	s.lastCartID = cartID
	s.lastAddr = addr
	if s.cashErr != nil {
		return nil, s.cashErr
	}
	return &api.CashOrderResponse{
		Status: "success",
		Data:   api.Order{ID: "order-1", PaymentMethodType: "cash"},
	}, nil
}

func newTestService(t *testing.T, client checkoutClient) *Service {
	t.Helper()
	log := logger.New(logger.Options{ServiceName: "checkout-test", Output: io.Discard})
	svc, err := NewService(client, log)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validAddress() api.ShippingAddress {
	return api.ShippingAddress{
		Details: "14 Tahrir St, Apt 3",
		Phone:   "01012345678",
		City:    "Cairo",
	}
}

func TestCreateSessionReturnsRedirectURL(t *testing.T) {
	client := &stubCheckoutClient{sessionURL: "https://pay.example.com/cs_123"}
	svc := newTestService(t, client)

	url, err := svc.CreateSession(context.Background(), "cart-1", "https://shop.example.com", validAddress())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if url != "https://pay.example.com/cs_123" {
		t.Fatalf("unexpected redirect url %q", url)
	}
	if client.lastCartID != "cart-1" || client.lastReturnURL != "https://shop.example.com" {
		t.Fatalf("unexpected call: cart %q return %q", client.lastCartID, client.lastReturnURL)
	}
}

func TestCreateSessionRejectsInvalidPhoneLocally(t *testing.T) {
	client := &stubCheckoutClient{sessionURL: "https://pay.example.com/cs_123"}
	svc := newTestService(t, client)

	addr := validAddress()
	addr.Phone = "0123"
	_, err := svc.CreateSession(context.Background(), "cart-1", "https://shop.example.com", addr)
	if appErr := errors.As(err); appErr == nil || appErr.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if client.sessions != 0 {
		t.Fatal("invalid address must not reach the network")
	}
}

func TestCreateSessionRequiresCart(t *testing.T) {
	client := &stubCheckoutClient{}
	svc := newTestService(t, client)

	_, err := svc.CreateSession(context.Background(), "", "https://shop.example.com", validAddress())
	if appErr := errors.As(err); appErr == nil || appErr.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if client.sessions != 0 {
		t.Fatal("missing cart must not reach the network")
	}
}

func TestCreateSessionMissingRedirectIsDependencyError(t *testing.T) {
	client := &stubCheckoutClient{sessionURL: ""}
	svc := newTestService(t, client)

	_, err := svc.CreateSession(context.Background(), "cart-1", "https://shop.example.com", validAddress())
	if appErr := errors.As(err); appErr == nil || appErr.Code() != errors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestPlaceCashOrder(t *testing.T) {
	client := &stubCheckoutClient{}
	svc := newTestService(t, client)

	order, err := svc.PlaceCashOrder(context.Background(), "cart-1", validAddress())
	if err != nil {
		t.Fatalf("place cash order: %v", err)
	}
	if order.ID != "order-1" || order.PaymentMethodType != "cash" {
		t.Fatalf("unexpected order %+v", order)
	}
	if client.lastAddr.City != "Cairo" {
		t.Fatalf("address not forwarded: %+v", client.lastAddr)
	}
}

func TestPlaceCashOrderRejectsMissingDetails(t *testing.T) {
	client := &stubCheckoutClient{}
	svc := newTestService(t, client)

	addr := validAddress()
	addr.Details = ""
	_, err := svc.PlaceCashOrder(context.Background(), "cart-1", addr)
	if appErr := errors.As(err); appErr == nil || appErr.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if client.cashOrders != 0 {
		t.Fatal("invalid address must not reach the network")
	}
}
