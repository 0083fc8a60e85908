package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/internal/cart"
	"github.com/angelmondragon/storefront-sync/internal/catalog"
	"github.com/angelmondragon/storefront-sync/internal/checkout"
	"github.com/angelmondragon/storefront-sync/internal/orders"
	"github.com/angelmondragon/storefront-sync/internal/session"
	"github.com/angelmondragon/storefront-sync/internal/theme"
	"github.com/angelmondragon/storefront-sync/internal/wishlist"
	"github.com/angelmondragon/storefront-sync/pkg/config"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
	"github.com/angelmondragon/storefront-sync/pkg/metrics"
)

// App wires the client, stores, and services together for the commands.
// Session state is restored from disk before any command runs so cached
// credentials survive process restarts.
type App struct {
	Config *config.Config
	Log    *logger.Logger

	Client   *api.Client
	Session  *session.Store
	Auth     *session.Authenticator
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Orders   *orders.Store
	Catalog  *catalog.Store
	Checkout *checkout.Service
	Theme    *theme.Store

	storage session.Storage
	cache   *catalog.Cache
}

// NewApp builds the full dependency graph from the environment.
func NewApp(ctx context.Context) (*App, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	clientMetrics := metrics.NewClientMetrics(registry)
	cacheMetrics := metrics.NewCacheMetrics(registry)

	// An empty storage path opts out of persistence; the session then
	// lives only as long as the process.
	var storage session.Storage = session.NewMemoryStorage()
	if cfg.Session.StoragePath != "" {
		storage, err = session.OpenSQLiteStorage(cfg.Session.StoragePath)
		if err != nil {
			return nil, err
		}
	}
	sessionStore, err := session.NewStore(storage, log)
	if err != nil {
		return nil, err
	}
	if err := sessionStore.Restore(ctx); err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.Options{
		Config:        cfg.API,
		Tokens:        sessionStore,
		OnAuthFailure: sessionStore,
		Logger:        log,
		Metrics:       clientMetrics,
	})
	if err != nil {
		return nil, err
	}

	auth, err := session.NewAuthenticator(client, sessionStore, log)
	if err != nil {
		return nil, err
	}
	cartStore, err := cart.NewStore(client, log)
	if err != nil {
		return nil, err
	}
	wishlistStore, err := wishlist.NewStore(client, sessionStore, log)
	if err != nil {
		return nil, err
	}
	ordersStore, err := orders.NewStore(client, sessionStore, log)
	if err != nil {
		return nil, err
	}

	cache := catalog.NewCache(catalog.CacheOptions{
		IdleEviction: cfg.Catalog.IdleEviction,
		Logger:       log,
		Metrics:      cacheMetrics,
	})
	catalogStore, err := catalog.NewStore(client, cache, cfg.Catalog)
	if err != nil {
		cache.Close()
		return nil, err
	}
	checkoutService, err := checkout.NewService(client, log)
	if err != nil {
		cache.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Log:      log,
		Client:   client,
		Session:  sessionStore,
		Auth:     auth,
		Cart:     cartStore,
		Wishlist: wishlistStore,
		Orders:   ordersStore,
		Catalog:  catalogStore,
		Checkout: checkoutService,
		Theme:    theme.NewStore(lipgloss.DefaultRenderer()),
		storage:  storage,
		cache:    cache,
	}, nil
}

// Close releases the session database and the catalog cache janitor.
func (a *App) Close() error {
	a.cache.Close()
	if closer, ok := a.storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing session storage: %w", err)
		}
	}
	return nil
}

// RequireSession fails fast for commands that need a signed-in shopper.
func (a *App) RequireSession() error {
	if !a.Session.Current().Active() {
		return fmt.Errorf("not signed in, run \"storefront login\" first")
	}
	return nil
}
