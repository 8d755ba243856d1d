package router

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-account-wishlist/config"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/application"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/container"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/event"
	repo "github.com/oksasatya/go-ddd-account-wishlist/internal/domain/repository"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/infrastructure/gcs"
	pginfra "github.com/oksasatya/go-ddd-account-wishlist/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-ddd-account-wishlist/internal/interface/http"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/router/modules"
)

// Repositories groups the storage ports behind the services.
type Repositories struct {
	Accounts repo.AccountRepository
	Wishlist repo.WishlistRepository
	Catalog  repo.ProductCatalog
}

// Services groups the application services built from the container.
type Services struct {
	Accounts *application.AccountService
	Wishlist *application.WishlistService
}

// BuildRepositories selects the storage backend from configuration. Postgres is
// used when configured and a pool is available; otherwise the in-memory store.
func BuildRepositories(cfg *config.Config) Repositories {
	if pool := container.GetPGPool(); cfg.UsePostgres() && pool != nil {
		return Repositories{
			Accounts: pginfra.NewAccountRepository(pool),
			Wishlist: pginfra.NewWishlistRepository(pool),
			Catalog:  pginfra.NewProductCatalog(pool),
		}
	}
	store := container.GetMemoryStore()
	return Repositories{
		Accounts: store.Accounts(),
		Wishlist: store.Wishlist(),
		Catalog:  store.Catalog(),
	}
}

// BuildServices wires the application services with whatever optional
// infrastructure (GCS, Elasticsearch, RabbitMQ) the container holds.
func BuildServices(cfg *config.Config, repos Repositories, logger *logrus.Logger) Services {
	var images repo.ImageStore
	if c := container.GetGCS(); c != nil && cfg.GCSBucket != "" {
		images = gcs.NewImageStore(c, cfg.GCSBucket)
	}
	var index repo.AccountSearch
	if es := container.GetES(); es != nil && cfg.SearchEnabled {
		index = search.NewAccountIndex(es, cfg.ESAccountsIndex, logger)
	}
	var events event.Publisher
	if p := container.GetPublisher(); p != nil && cfg.EventsEnabled {
		events = p
	}

	return Services{
		Accounts: application.NewAccountService(repos.Accounts, images, index, events, logger),
		Wishlist: application.NewWishlistService(repos.Wishlist, repos.Accounts, repos.Catalog, events, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svcs := BuildServices(cfg, BuildRepositories(cfg), logger)

	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(svcs.Accounts, svcs.Wishlist, logger)))
	r.Add(modules.NewWishlistModule(handlers.NewWishlistHandler(svcs.Wishlist, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
