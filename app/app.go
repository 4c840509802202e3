package app

import (
	"context"
	"fmt"
	"log"

	"github.com/Shooukoo/yesmos.com/app/controller"
	"github.com/Shooukoo/yesmos.com/app/router"
	"github.com/Shooukoo/yesmos.com/config"
	"github.com/Shooukoo/yesmos.com/db"
	"github.com/Shooukoo/yesmos.com/repository"
	"github.com/Shooukoo/yesmos.com/service"

	"github.com/redis/go-redis/v9"
)

// snapshotKey is the single key under which the quoting session persists.
// Old browser-based installs used the same name in localStorage.
const snapshotKey = "YESMOS_POS_V1"

// Initialize initializes the application
func Initialize(cfg *config.Config) error {
	ctx := context.Background()

	// Pick the snapshot backend
	var store repository.SnapshotStore
	switch cfg.SnapshotBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		store = repository.NewRedisSnapshotStore(client, snapshotKey)
		log.Printf("✓ Snapshot store: redis (%s)", cfg.RedisAddr)

	case config.BackendPostgres:
		if err := db.InitDB(); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		pgStore := repository.NewPostgresSnapshotStore(snapshotKey)
		if err := pgStore.EnsureTable(ctx); err != nil {
			return err
		}
		store = pgStore
		log.Printf("✓ Snapshot store: postgres")

	default:
		return fmt.Errorf("unknown SNAPSHOT_BACKEND %q (want %q or %q)",
			cfg.SnapshotBackend, config.BackendPostgres, config.BackendRedis)
	}

	// Services
	supplierService := service.NewSupplierService(cfg)
	catalogService := service.NewCatalogService(supplierService)
	quoteService := service.NewQuoteService(store)
	ticketService := service.NewTicketService(quoteService, cfg)

	// Rehydrate the session before anything can write; the aggregator
	// suppresses persistence until this completes.
	quoteService.Restore(ctx)

	// First catalog load runs in the background; the scrape is the only slow
	// operation in the system and an empty catalog is a valid state meanwhile.
	go catalogService.Refresh(context.Background())

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(catalogService),
		Quote:   controller.NewQuoteController(quoteService, catalogService),
		Ticket:  controller.NewTicketController(ticketService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
