package commands

import (
	"fmt"

	"github.com/lp452254117/alpha-predator/internal/datasource"
	"github.com/lp452254117/alpha-predator/internal/deepdive"
	"github.com/lp452254117/alpha-predator/internal/llm"
	"github.com/lp452254117/alpha-predator/internal/predator"
	"github.com/lp452254117/alpha-predator/internal/report"
	"github.com/lp452254117/alpha-predator/pkg/config"
	"github.com/lp452254117/alpha-predator/pkg/database"
	"github.com/lp452254117/alpha-predator/pkg/httputil"
	"github.com/lp452254117/alpha-predator/pkg/logger"
	"github.com/lp452254117/alpha-predator/pkg/redis"
)

// app bundles the wired-up application components. The database and
// cache are optional: a nil db disables report persistence, a nil cache
// disables bar caching.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	source   *datasource.Source
	engine   *predator.Engine
	deepdive *deepdive.Engine
	store    *report.Repository
}

// newApp wires up the application from configuration. Only construction
// errors are fatal; missing optional backends log and degrade.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	httpClient := httputil.New(log)

	// Optional Redis cache
	var cache *redis.Cache
	if cfg.Redis.Enabled {
		client, err := redis.New(cfg)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, running without cache")
		} else {
			cache = redis.NewCache(client, "predator")
			log.Info("Redis cache enabled")
		}
	}

	source, err := datasource.New(cfg, httpClient, cache, log)
	if err != nil {
		return nil, fmt.Errorf("init data source: %w", err)
	}
	log.WithField("provider", source.ProviderName()).Info("Data source ready")

	// Optional report persistence
	var db *database.DB
	var store *report.Repository
	if cfg.Database.URL != "" {
		db, err = database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		store = report.NewRepository(db.Pool)
		log.Info("Report persistence enabled")
	} else {
		log.Warn("DATABASE_URL not set, reports will not be persisted")
	}

	chat := llm.New(cfg.LLM, httpClient, log)

	var engineStore predator.ReportStore
	if store != nil {
		engineStore = store
	}

	engine, err := predator.New(source, chat, engineStore, cfg.Pipeline, log)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("init pipeline engine: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		source:   source,
		engine:   engine,
		deepdive: deepdive.New(source, chat, cfg.Pipeline, log),
		store:    store,
	}, nil
}

// close releases held resources
func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}
