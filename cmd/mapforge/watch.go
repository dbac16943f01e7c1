package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"mapforge/strata/pkg/assets"
	"mapforge/strata/pkg/cli"
	"mapforge/strata/pkg/config"
	"mapforge/strata/pkg/importer"
	"mapforge/strata/pkg/journal"
	"mapforge/strata/pkg/scene"
	"mapforge/strata/pkg/server"
	"mapforge/strata/pkg/telemetry/health"
)

var watchFlags struct {
	export   string
	debounce time.Duration
	address  string
}

var watchCmd = &cobra.Command{
	Use:   "watch <map.vmf | directory>",
	Short: "Reimport maps as they change on disk",
	Long: `Watch a map file or directory and reimport on every change.

Each change rebuilds the scene from scratch and, when an export path is
configured, rewrites the scene JSON. With watch.rescan_schedule set, all
watched maps are additionally reimported on a cron schedule, which picks
up changes the file watcher missed. With watch.metrics_address set, a
listener serves Prometheus metrics and health probes for the session.

Examples:
  # Rebuild arena.scene.json on every save
  mapforge watch maps/arena.vmf --export arena.scene.json

  # Watch a directory with a metrics listener
  mapforge watch maps/ --address 127.0.0.1:9090`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.export, "export", "e", "", "write the assembled scene JSON to this path after each import")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before reimporting a changed map")
	watchCmd.Flags().StringVar(&watchFlags.address, "address", "", "serve metrics and health probes on this address")
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if watchFlags.export != "" {
		cfg.Watch.ExportPath = watchFlags.export
	}
	if watchFlags.debounce > 0 {
		cfg.Watch.Debounce = watchFlags.debounce
	}
	if watchFlags.address != "" {
		cfg.Watch.MetricsAddress = watchFlags.address
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	pipe, err := newPipeline(cfg, logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer pipe.close(context.Background())

	ctx := cli.SetupSignalHandler()
	target := args[0]

	// Scheduled rescans and change callbacks both run reimport; the lock
	// keeps concurrent exports from interleaving.
	var importMu sync.Mutex
	reimport := func(path string) error {
		importMu.Lock()
		defer importMu.Unlock()

		// A fresh host per import keeps stale objects out of the export.
		host := scene.NewMemoryHost()
		session, err := pipe.importInto(ctx, host, path)
		if err != nil {
			return err
		}

		res := session.Result
		fmt.Printf("✓ %s: %d solids, %d groups, %d lights in %s\n",
			path, res.Solids, res.Groups, res.Lights,
			session.Duration.Round(time.Millisecond))

		if cfg.Watch.ExportPath != "" {
			if err := host.ExportFile(cfg.Watch.ExportPath); err != nil {
				return fmt.Errorf("scene export failed: %w", err)
			}
		}
		return nil
	}

	// Initial import pass. Failures are reported but do not end the watch;
	// the broken map will be reimported on its next save.
	maps, err := watchTargets(target)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	for _, path := range maps {
		if err := reimport(path); err != nil {
			fmt.Printf("✗ %s: %v\n", path, err)
		}
	}

	if cfg.Watch.MetricsAddress != "" {
		srv := newTelemetryServer(cfg, pipe)
		go func() {
			if err := srv.Start(ctx); err != nil {
				logger.Error("telemetry listener failed", "error", err)
			}
		}()
		if pipe.collector != nil {
			fmt.Printf("✓ Metrics: http://%s%s\n", cfg.Watch.MetricsAddress, cfg.Telemetry.Metrics.Path)
		} else {
			fmt.Printf("✓ Health: http://%s/health\n", cfg.Watch.MetricsAddress)
		}
	}

	if cfg.Watch.RescanSchedule != "" {
		scheduler := importer.NewScheduler(cfg.Watch.RescanSchedule, func() error {
			maps, err := watchTargets(target)
			if err != nil {
				return err
			}
			for _, path := range maps {
				if err := reimport(path); err != nil {
					fmt.Printf("✗ %s: %v\n", path, err)
				}
			}
			return nil
		}, logger)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer scheduler.Stop()
		if next := scheduler.NextRun(); next != nil {
			fmt.Printf("✓ Rescan scheduled, next at %s\n", next.Format(time.RFC3339))
		}
	}

	watcherCfg := importer.DefaultWatcherConfig(target)
	if cfg.Watch.Debounce > 0 {
		watcherCfg.Debounce = cfg.Watch.Debounce
	}
	watcher, err := importer.NewWatcher(watcherCfg, logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	fmt.Printf("Watching %s (debounce %s)\n", target, watcherCfg.Debounce)
	fmt.Println("Press Ctrl+C to stop")

	if err := watcher.Watch(ctx, func(path string) error {
		if err := reimport(path); err != nil {
			fmt.Printf("✗ %s: %v\n", path, err)
			return err
		}
		return nil
	}); err != nil {
		return cli.NewCommandError("watch", err)
	}

	fmt.Println("\n✓ Watch stopped")
	return nil
}

// watchTargets expands a watch target into the map files it covers.
func watchTargets(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	maps, err := filepath.Glob(filepath.Join(target, "*.vmf"))
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, fmt.Errorf("no map files found in %s", target)
	}
	return maps, nil
}

// newTelemetryServer builds the watch-mode listener serving Prometheus
// metrics and health probes for the import pipeline.
func newTelemetryServer(cfg *config.Config, pipe *pipeline) *server.Server {
	checker := health.New(0)

	if pipe.journal != nil {
		checker.RegisterCheck("journal", func(ctx context.Context) error {
			_, err := pipe.journal.Count(ctx, journal.Query{Limit: 1})
			return err
		})
	}

	// The placeholder being absent is fine; the check verifies the
	// catalog backend answers at all.
	checker.RegisterCheck("materials", func(ctx context.Context) error {
		_, err := pipe.repo.Resolve(ctx, assets.PlaceholderPath)
		if errors.Is(err, assets.ErrNotFound) {
			return nil
		}
		return err
	})

	var metricsHandler http.Handler
	if pipe.collector != nil {
		metricsHandler = pipe.collector.Handler()
	}

	return server.New(server.Config{
		Address:     cfg.Watch.MetricsAddress,
		MetricsPath: cfg.Telemetry.Metrics.Path,
		Version:     Version,
		Commit:      GitCommit,
		BuildDate:   BuildDate,
	}, metricsHandler, checker)
}
