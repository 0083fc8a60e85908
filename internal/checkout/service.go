package checkout

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/internal/validate"
	"github.com/angelmondragon/storefront-sync/pkg/errors"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
)

type checkoutClient interface {
	CreateCheckoutSession(ctx context.Context, cartID, returnURL string, addr api.ShippingAddress) (*api.CheckoutSession, error)
	CreateCashOrder(ctx context.Context, cartID string, addr api.ShippingAddress) (*api.CashOrderResponse, error)
}

// Service places orders for the active cart, either through a hosted
// payment session or as cash on delivery. Shipping addresses are validated
// locally before any request is issued.
type Service struct {
	client checkoutClient
	log    *logger.Logger
}

func NewService(client checkoutClient, log *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("checkout client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{client: client, log: log}, nil
}

// CreateSession opens a hosted payment session for the cart and returns the
// redirect URL the shopper completes payment at.
func (s *Service) CreateSession(ctx context.Context, cartID, returnURL string, addr api.ShippingAddress) (string, error) {
	if cartID == "" {
		return "", errors.New(errors.CodeValidation, "no active cart to check out")
	}
	if err := validate.Struct(addr); err != nil {
		return "", err
	}

	session, err := s.client.CreateCheckoutSession(ctx, cartID, returnURL, addr)
	if err != nil {
		return "", err
	}
	if session.Session.URL == "" {
		return "", errors.New(errors.CodeDependency, "payment session missing redirect url")
	}
	s.log.Info(s.log.WithField(ctx, "cart_id", cartID), "payment session created")
	return session.Session.URL, nil
}

// PlaceCashOrder places a cash-on-delivery order for the cart.
func (s *Service) PlaceCashOrder(ctx context.Context, cartID string, addr api.ShippingAddress) (*api.Order, error) {
	if cartID == "" {
		return nil, errors.New(errors.CodeValidation, "no active cart to check out")
	}
	if err := validate.Struct(addr); err != nil {
		return nil, err
	}

	resp, err := s.client.CreateCashOrder(ctx, cartID, addr)
	if err != nil {
		return nil, err
	}
	s.log.Info(s.log.WithField(ctx, "order_id", resp.Data.ID), "cash order placed")
	return &resp.Data, nil
}
