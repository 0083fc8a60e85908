package session

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/internal/validate"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
)

type authClient interface {
	SignIn(ctx context.Context, input api.SignInInput) (*api.AuthResponse, error)
	SignUp(ctx context.Context, input api.SignUpInput) (*api.AuthResponse, error)
}

// Authenticator drives the login and signup flows: validate locally, call
// the collaborator, then record the returned token and display name.
type Authenticator struct {
	client authClient
	store  *Store
	log    *logger.Logger
}

// NewAuthenticator builds an authenticator over the session store.
func NewAuthenticator(client authClient, store *Store, log *logger.Logger) (*Authenticator, error) {
	if client == nil {
		return nil, fmt.Errorf("auth client is required")
	}
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Authenticator{client: client, store: store, log: log}, nil
}

// SignInCredentials carries the login form.
type SignInCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,account_password"`
}

// SignUpDetails carries the registration form.
type SignUpDetails struct {
	Name       string `json:"name" validate:"required,min=3"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,account_password"`
	RePassword string `json:"rePassword" validate:"required,eqfield=Password"`
	Phone      string `json:"phone" validate:"required,mobile_phone"`
}

// SignIn authenticates against the collaborator and establishes the session.
func (a *Authenticator) SignIn(ctx context.Context, creds SignInCredentials) (Session, error) {
	if err := validate.Struct(creds); err != nil {
		return Session{}, err
	}

	resp, err := a.client.SignIn(ctx, api.SignInInput{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return Session{}, err
	}

	if err := a.store.Login(ctx, resp.Token, resp.User.Name); err != nil {
		return Session{}, err
	}
	a.log.Info(a.log.WithField(ctx, "user", resp.User.Name), "signed in")
	return a.store.Current(), nil
}

// SignUp registers a new account and establishes the session from the
// returned token, matching the collaborator's signup contract.
func (a *Authenticator) SignUp(ctx context.Context, details SignUpDetails) (Session, error) {
	if err := validate.Struct(details); err != nil {
		return Session{}, err
	}

	resp, err := a.client.SignUp(ctx, api.SignUpInput{
		Name:       details.Name,
		Email:      details.Email,
		Password:   details.Password,
		RePassword: details.RePassword,
		Phone:      details.Phone,
	})
	if err != nil {
		return Session{}, err
	}

	if err := a.store.Login(ctx, resp.Token, resp.User.Name); err != nil {
		return Session{}, err
	}
	a.log.Info(a.log.WithField(ctx, "user", resp.User.Name), "account created")
	return a.store.Current(), nil
}
