package commands

import (
	"context"
	"fmt"

	"github.com/vsinha/partcounter/pkg/application/services/catalog"
	"github.com/vsinha/partcounter/pkg/domain/repositories"
	"github.com/vsinha/partcounter/pkg/infrastructure/config"
	"github.com/vsinha/partcounter/pkg/infrastructure/events"
	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
	"github.com/vsinha/partcounter/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/partcounter/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/partcounter/pkg/infrastructure/seed"
	httpapi "github.com/vsinha/partcounter/pkg/interfaces/http"
	httpH "github.com/vsinha/partcounter/pkg/interfaces/http/handlers"
)

// ServeCommand runs the HTTP API and metrics endpoint until its context is canceled
type ServeCommand struct {
	config config.Config
	log    *logger.Logger
}

// NewServeCommand creates a serve command. A nil log is replaced by one built from config.LogMode.
func NewServeCommand(cfg config.Config, log *logger.Logger) *ServeCommand {
	return &ServeCommand{config: cfg, log: log}
}

// Execute opens the catalog, seeds it if configured and serves until ctx ends
func (c *ServeCommand) Execute(ctx context.Context) error {
	log := c.log
	if log == nil {
		var err error
		if log, err = logger.New(c.config.LogMode); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer log.Sync()
	}

	repo, closeRepo, err := c.openRepository(log)
	if err != nil {
		return err
	}
	defer closeRepo()

	store := events.NewInMemoryEventStore(log)
	if err := store.Subscribe(events.CatalogEventTypes, events.NewLoggingHandler(log)); err != nil {
		return fmt.Errorf("failed to subscribe to catalog events: %w", err)
	}

	svc := catalog.NewService(repo, store, log)

	if c.config.Seed {
		f, err := seed.Load(c.config.SeedFile)
		if err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}
		if _, err := seed.Apply(ctx, svc, f, log); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	server := httpapi.NewServer(httpapi.RouterConfig{
		PartHandler:    httpH.NewPartHandler(svc),
		ComplexHandler: httpH.NewComplexHandler(svc),
		CountHandler:   httpH.NewCountHandler(svc),
		EventHandler:   httpH.NewEventHandler(store),
		HealthHandler:  httpH.NewHealthHandler(),
		Logger:         log,
		CORSOrigins:    c.config.CORSOrigins,
	}, httpapi.ServerConfig{
		Addr:            c.config.HTTPAddr,
		MetricsAddr:     c.config.MetricsAddr,
		ShutdownTimeout: c.config.ShutdownTimeout,
	})

	log.Info("starting partcounter",
		"http_addr", c.config.HTTPAddr,
		"metrics_addr", c.config.MetricsAddr,
		"store", c.storeKind(),
	)
	return server.Run(ctx)
}

func (c *ServeCommand) storeKind() string {
	if c.config.DBPath == "" {
		return "memory"
	}
	return "sqlite"
}

// openRepository returns the configured catalog store and its release function
func (c *ServeCommand) openRepository(log *logger.Logger) (repositories.CatalogRepository, func(), error) {
	if c.config.DBPath == "" {
		return memory.NewCatalogRepository(64, 16), func() {}, nil
	}

	repo, err := sqlite.Open(c.config.DBPath, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			log.Warn("failed to close catalog database", "error", err)
		}
	}, nil
}
