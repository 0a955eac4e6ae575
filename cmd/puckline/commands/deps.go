package commands

import (
	"fmt"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/internal/enrich"
	"github.com/hmelo/puckline/internal/pipeline"
	"github.com/hmelo/puckline/internal/provider"
	"github.com/hmelo/puckline/internal/provider/dailyfaceoff"
	"github.com/hmelo/puckline/internal/provider/nhl"
	"github.com/hmelo/puckline/internal/roles"
	"github.com/hmelo/puckline/internal/scoring"
	"github.com/hmelo/puckline/internal/store"
	"github.com/hmelo/puckline/pkg/config"
	"github.com/hmelo/puckline/pkg/database"
	"github.com/hmelo/puckline/pkg/logger"
	"github.com/hmelo/puckline/pkg/redis"
)

// deps holds everything a command needs past config and logging.
// Close releases the database and Redis connections.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	redis    *redis.Client
	provider contracts.DataProvider
	repo     *store.Repository
	builder  *enrich.Builder
}

// initDeps wires config, logging, storage and the data providers.
// withDB controls whether a database connection is required; dry runs
// and lineup lookups work without one.
func initDeps(withDB bool) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	d := &deps{cfg: cfg, log: log}

	if withDB {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		d.db = db
		d.repo = store.NewRepository(db.Pool)
		log.Info("Connected to database")
	}

	rc, err := redis.New(cfg)
	if err != nil {
		// Cache is an optimization, never a requirement
		log.WithError(err).Warn("Redis unavailable, provider cache disabled")
		rc, _ = redis.New(&config.Config{})
	}
	d.redis = rc

	nhlClient := nhl.New(cfg, log)
	linesScraper := dailyfaceoff.New(cfg, log)
	composite := provider.NewComposite(nhlClient, linesScraper)
	d.provider = provider.NewCached(composite, redis.NewCache(rc, "provider"), log)

	d.builder = enrich.NewBuilder(d.provider, roles.NewInferrer(log), log)

	return d, nil
}

// newGenerator builds a pipeline generator on top of the shared deps.
// A nil store makes the run a dry run.
func (d *deps) newGenerator(opts pipeline.Options, dryRun bool) *pipeline.Generator {
	var st pipeline.PredictionStore
	if d.repo != nil && !dryRun {
		st = d.repo
	}

	return pipeline.NewGenerator(
		d.provider,
		d.builder,
		st,
		scoring.WeightsFromConfig(d.cfg.Weights),
		opts,
		d.log,
	)
}

// Close releases held connections
func (d *deps) Close() {
	if d.db != nil {
		d.db.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
}
