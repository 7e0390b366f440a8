package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pcbanai/core/internal/catalog"
	"pcbanai/core/internal/client"
	"pcbanai/core/internal/config"
	"pcbanai/core/internal/proxy"
	"pcbanai/core/internal/queue"
	"pcbanai/core/internal/repository"
	"pcbanai/core/internal/scrape"
	"pcbanai/core/internal/server"
	"pcbanai/core/internal/state"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Repository repository.ComponentRepository
	Aggregator catalog.Source
	Server     *server.Server
	Scraper    *scrape.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	db, err := pgxpool.New(context.Background(),
		fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
		))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to component store: %w", err)
	}
	container.db = db

	componentRepo := repository.NewComponentRepository(db)
	container.Repository = componentRepo

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	container.redis = rdb
	log.Info("Connected to redis")

	aggregator := catalog.NewAggregator(componentRepo, cfg.DomainRetailers())
	cacheTTL := time.Duration(cfg.Catalog.CacheTTL) * time.Second
	container.Aggregator = catalog.NewCache(aggregator, rdb, cacheTTL)

	container.Server = server.New(container.Aggregator, cfg.Catalog.CacheTTL)

	// Scrape pipeline wiring. The proxy pool validates against the primary
	// retailer's storefront.
	testURL := ""
	for _, r := range cfg.Retailers {
		if r.BaseURL != "" {
			testURL = r.BaseURL
			break
		}
	}
	proxySupplier, err := proxy.NewSupplier(context.Background(), cfg.Scraper.Proxies, testURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize proxy supplier: %w", err)
	}

	scrapeQueue, err := queue.NewRedisQueue(rdb, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scrape queue: %w", err)
	}

	retailerClient := client.NewRetailerClient(cfg.Scraper, proxySupplier)
	stateManager := state.NewRedisManager(rdb)

	container.Scraper = scrape.NewService(
		componentRepo,
		retailerClient,
		scrapeQueue,
		stateManager,
		cfg.Retailers,
		cfg.Scraper.SaveInterval,
		cfg.Redis.ConsumerGroup,
		cfg.Redis.MinIdleTime,
	)

	return container, nil
}

// RunServer serves the HTTP surface until it fails or is shut down.
func (c *Container) RunServer(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", c.Config.Server.Host, c.Config.Server.Port)

	go func() {
		<-ctx.Done()
		if err := c.Server.Shutdown(); err != nil {
			log.Errorf("Server shutdown failed: %v", err)
		}
	}()

	return c.Server.Listen(addr)
}

// RunScraper enqueues listing pages and processes them until both sides
// finish or the context is canceled.
func (c *Container) RunScraper(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Scraper.ScrapeAll(ctx)
	})
	g.Go(func() error {
		return c.Scraper.RunWorkers(ctx, c.Config.Scraper.MaxWorkers)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.db.Close()
	if err := c.redis.Close(); err != nil {
		return err
	}

	log.Info("Container shut down successfully")
	return nil
}
