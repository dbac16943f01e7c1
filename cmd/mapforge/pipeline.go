package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"mapforge/strata/pkg/assets"
	"mapforge/strata/pkg/config"
	"mapforge/strata/pkg/geometry"
	"mapforge/strata/pkg/importer"
	"mapforge/strata/pkg/journal"
	"mapforge/strata/pkg/scene"
	"mapforge/strata/pkg/telemetry/logging"
	"mapforge/strata/pkg/telemetry/metrics"
	"mapforge/strata/pkg/telemetry/tracing"
	"mapforge/strata/pkg/vmf/parser"
)

// loadConfig initializes the global configuration. An explicit --config
// path must exist; the default path falls back to built-in defaults when
// absent, so a bare invocation needs no file on disk.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit := cmd != nil && cmd.Flags().Changed("config")

	var err error
	if explicit {
		err = config.Initialize(cfgFile)
	} else {
		err = config.InitializeOrDefault(cfgFile)
	}
	if err != nil {
		return nil, err
	}
	return config.GetConfig(), nil
}

// pipeline bundles the collaborators shared by every import a command makes.
// Parser limits, the material repository, the journal, metrics, and tracing
// come from config once and outlive individual runs.
type pipeline struct {
	parser    *parser.Parser
	repo      assets.Repository
	settings  scene.Settings
	journal   journal.Journal
	collector *metrics.Collector
	tracer    *tracing.Tracer
	logger    *slog.Logger

	closers []io.Closer
}

// newPipeline wires the import collaborators from the loaded config.
func newPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline, error) {
	p := &pipeline{logger: logger}

	ok := false
	defer func() {
		if !ok {
			p.close(context.Background())
		}
	}()

	p.parser = parser.NewParser()
	if cfg.Parser.MaxFileSize > 0 {
		p.parser = p.parser.WithMaxFileSize(cfg.Parser.MaxFileSize)
	}
	if cfg.Parser.MaxDepth > 0 {
		p.parser = p.parser.WithMaxDepth(cfg.Parser.MaxDepth)
	}

	p.settings = scene.Settings{
		ImportBrushes:       cfg.Import.Brushes,
		ImportWorldBrushes:  cfg.Import.WorldBrushes,
		ImportDetailBrushes: cfg.Import.DetailBrushes,
		ImportLights:        cfg.Import.Lights,
		MaterialPath:        cfg.Import.MaterialPath,
	}

	switch cfg.Assets.Backend {
	case "sqlite":
		catalog, err := assets.NewSQLiteCatalogWithConfig(assets.SQLiteCatalogConfig{
			DBPath:      cfg.Assets.CatalogPath,
			BusyTimeout: cfg.Assets.BusyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open material catalog: %w", err)
		}
		p.repo = catalog
		p.closers = append(p.closers, catalog)
	case "", "memory":
		mem := assets.NewMemoryRepository()
		if cfg.Assets.ManifestPath != "" {
			if err := mem.LoadManifest(cfg.Assets.ManifestPath); err != nil {
				return nil, err
			}
		}
		p.repo = mem
	default:
		return nil, fmt.Errorf("unsupported assets backend: %s (supported: memory, sqlite)", cfg.Assets.Backend)
	}

	if cfg.Journal.Enabled {
		jnl, err := openJournal(cfg, logger)
		if err != nil {
			return nil, err
		}
		p.journal = jnl
		p.closers = append(p.closers, jnl)
	}

	if cfg.Telemetry.Metrics.Enabled {
		p.collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	p.tracer = tracer

	ok = true
	return p, nil
}

// importInto assembles one map into host. Each call gets a fresh assembler
// and importer so watch mode can rebuild the scene from scratch per change.
func (p *pipeline) importInto(ctx context.Context, host scene.Host, path string) (*importer.Session, error) {
	asm := scene.NewAssembler(host, geometry.NewBlockoutBuilder(), p.repo, p.settings, p.logger)
	imp, err := importer.New(importer.Options{
		Parser:    p.parser,
		Assembler: asm,
		Journal:   p.journal,
		Metrics:   p.collector,
		Tracer:    p.tracer,
		Logger:    p.logger,
	})
	if err != nil {
		return nil, err
	}
	return imp.Run(ctx, path)
}

// close releases the journal, catalog, and tracer. Failures are logged, not
// returned; close runs on command exit where there is nothing left to abort.
func (p *pipeline) close(ctx context.Context) {
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			p.logger.Warn("close failed", "error", err)
		}
	}
	if p.tracer != nil {
		if err := p.tracer.Shutdown(ctx); err != nil {
			p.logger.Warn("tracer shutdown failed", "error", err)
		}
	}
}

// openJournal opens the configured journal backend. A fresh memory journal
// is always empty; the sqlite backend is where history accumulates.
func openJournal(cfg *config.Config, logger *slog.Logger) (journal.Journal, error) {
	switch cfg.Journal.Backend {
	case "sqlite":
		jc := journal.DefaultSQLiteConfig()
		jc.Path = cfg.Journal.Path
		if cfg.Journal.BusyTimeout > 0 {
			jc.BusyTimeout = cfg.Journal.BusyTimeout
		}
		jnl, err := journal.NewSQLiteJournal(jc, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
		return jnl, nil
	case "", "memory":
		return journal.NewMemoryJournal(), nil
	default:
		return nil, fmt.Errorf("unsupported journal backend: %s (supported: memory, sqlite)", cfg.Journal.Backend)
	}
}

// setupLogging builds the process logger from config and installs it as the
// slog default. --verbose wins over the configured level.
func setupLogging(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}
