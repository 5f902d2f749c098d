// Package engine drives a load run: it parses every input, creates the
// target tables, stores the rows and reconciles what was parsed against
// what was stored. A failure in one input never stops the others.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/leapstack-labs/csvto/internal/state"
	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/parser"
)

// ConfigService supplies the inputs and run-level flags of a load.
type ConfigService interface {
	InputSources() []core.InputSource
	HasHeaders() bool
	ShouldDropStore() bool
	// SingleTable names the table every input is loaded into; "" means
	// one table per input.
	SingleTable() string
	ShouldDeleteData() bool
	RunName() string
}

// Engine orchestrates load runs against one storage backend.
type Engine struct {
	// Database adapter (lazy initialized)
	db          adapter.Adapter
	dbConfig    adapter.Config
	dbConnected bool
	dbMu        sync.Mutex

	svc         ConfigService
	parser      *parser.Parser
	store       state.Store
	concurrency int
	phase       atomic.Int32

	// Structured logger
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Service supplies inputs and run flags (required)
	Service ConfigService
	// Target is the storage backend connection config
	Target adapter.Config
	// Adapter overrides the registry lookup for Target.Type (optional)
	Adapter adapter.Adapter
	// Parser configures CSV decoding
	Parser parser.Options
	// Concurrency is the number of inputs processed at once (default 1)
	Concurrency int
	// StatePath is the run history database; empty disables history
	StatePath string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a new engine with lazy database connection.
// The database adapter is only connected when a run starts.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.Service == nil {
		return nil, core.NewUsageError("engine requires a config service")
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	e := &Engine{
		db:          cfg.Adapter,
		dbConfig:    cfg.Target,
		svc:         cfg.Service,
		parser:      parser.New(cfg.Parser, logger),
		concurrency: concurrency,
		logger:      logger,
	}

	if cfg.StatePath != "" {
		store := state.NewSQLiteStore(logger)
		if err := store.Open(cfg.StatePath); err != nil {
			return nil, fmt.Errorf("failed to open state store: %w", err)
		}
		e.store = store
	}

	logger.Debug("initializing engine",
		"adapter_type", cfg.Target.Type,
		"concurrency", concurrency,
		"history", cfg.StatePath != "")

	return e, nil
}

// ensureDBConnected lazily connects to the database.
func (e *Engine) ensureDBConnected(ctx context.Context) error {
	e.dbMu.Lock()
	defer e.dbMu.Unlock()

	if e.dbConnected {
		return nil
	}

	e.logger.Debug("connecting to database", "adapter_type", e.dbConfig.Type)

	db := e.db
	if db == nil {
		var err error
		db, err = adapter.NewAdapter(e.dbConfig, e.logger)
		if err != nil {
			return err
		}
	}

	if err := db.Connect(ctx, e.dbConfig); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	e.db = db
	e.dbConnected = true

	e.logger.Debug("database connected", "dialect", db.Dialect().GetName())
	return nil
}

// Phase returns the phase the engine is currently in.
func (e *Engine) Phase() Phase {
	return Phase(e.phase.Load())
}

func (e *Engine) setPhase(p Phase, attrs ...any) {
	e.phase.Store(int32(p))
	e.logger.Debug("phase", append([]any{"phase", p.String()}, attrs...)...)
}

// StateStore returns the run history store, or nil if history is disabled.
func (e *Engine) StateStore() state.Store {
	return e.store
}

// Close releases all resources.
func (e *Engine) Close() error {
	e.logger.Debug("closing engine")

	var errs []error
	if e.db != nil && e.dbConnected {
		if err := e.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close state store: %w", err))
		}
	}
	return errors.Join(errs...)
}
