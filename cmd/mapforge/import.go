package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"mapforge/strata/pkg/cli"
	"mapforge/strata/pkg/scene"
	"mapforge/strata/pkg/source"
)

var importFlags struct {
	gitURL   string
	gitRef   string
	export   string
	material string
	logLevel string
}

var importCmd = &cobra.Command{
	Use:   "import <map.vmf | directory>",
	Short: "Import a map into a scene",
	Long: `Import a map file into an assembled scene.

Importing a directory assembles every map in it into one scene. Importing
from a git repository clones the repository and resolves the given path
inside it.

Every run is recorded in the import journal; query it with
"mapforge history".

Examples:
  # Import a single map
  mapforge import maps/arena.vmf

  # Import every map in a directory
  mapforge import maps/

  # Import a map pinned to a git ref
  mapforge import levels/arena.vmf --git https://github.com/example/maps.git --ref v2

  # Write the assembled scene as JSON
  mapforge import maps/arena.vmf --export arena.scene.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importFlags.gitURL, "git", "", "import from this git repository URL")
	importCmd.Flags().StringVar(&importFlags.gitRef, "ref", "", "git branch or commit (with --git)")
	importCmd.Flags().StringVarP(&importFlags.export, "export", "e", "", "write the assembled scene JSON to this path")
	importCmd.Flags().StringVar(&importFlags.material, "material", "", "override the material assigned to imported solids")
	importCmd.Flags().StringVar(&importFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runImport(cmd *cobra.Command, args []string) error {
	if importFlags.gitRef != "" && importFlags.gitURL == "" {
		return fmt.Errorf("--ref requires --git")
	}

	// Load configuration
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if importFlags.material != "" {
		cfg.Import.MaterialPath = importFlags.material
	}
	if importFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = importFlags.logLevel
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	pipe, err := newPipeline(cfg, logger)
	if err != nil {
		return cli.NewCommandError("import", err)
	}
	defer pipe.close(context.Background())

	ctx := cli.SetupSignalHandler()

	// Resolve the map source.
	target := args[0]
	if importFlags.gitURL != "" {
		src, err := source.NewGitSource(source.GitConfig{
			URL: importFlags.gitURL,
			Ref: importFlags.gitRef,
		})
		if err != nil {
			return cli.NewCommandError("import", err)
		}
		fmt.Printf("Fetching %s from %s...\n", target, importFlags.gitURL)
		target, err = src.Fetch(ctx, target)
		if err != nil {
			return cli.NewCommandError("import", err)
		}
		fmt.Println("✓ Map fetched")
	}

	info, err := os.Stat(target)
	if err != nil {
		return cli.NewCommandError("import", err)
	}
	if info.IsDir() {
		return importDirectory(ctx, pipe, target)
	}
	return importFile(ctx, pipe, target)
}

func importFile(ctx context.Context, pipe *pipeline, path string) error {
	host := scene.NewMemoryHost()

	session, err := pipe.importInto(ctx, host, path)
	if err != nil {
		return cli.NewCommandError("import", err)
	}

	res := session.Result
	fmt.Printf("✓ Imported %s\n", path)
	fmt.Printf("  %d solids, %d groups (%d pruned), %d lights, %d skipped in %s\n",
		res.Solids, res.Groups, res.Pruned, res.Lights, res.Skipped(),
		session.Duration.Round(time.Millisecond))

	return exportScene(host)
}

func importDirectory(ctx context.Context, pipe *pipeline, dir string) error {
	maps, err := filepath.Glob(filepath.Join(dir, "*.vmf"))
	if err != nil {
		return cli.NewCommandError("import", err)
	}
	if len(maps) == 0 {
		return fmt.Errorf("no map files found in %s", dir)
	}

	host := scene.NewMemoryHost()
	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(int64(len(maps)))

	failed := 0
	for i, path := range maps {
		if ctx.Err() != nil {
			progress.Error(ctx.Err())
			return cli.NewCommandError("import", ctx.Err())
		}
		if _, err := pipe.importInto(ctx, host, path); err != nil {
			failed++
			progress.Error(fmt.Errorf("%s: %v", filepath.Base(path), err))
		}
		progress.Update(int64(i + 1))
	}
	progress.Finish()

	fmt.Printf("✓ Imported %d of %d maps (%d scene objects)\n", len(maps)-failed, len(maps), host.Len())
	if err := exportScene(host); err != nil {
		return err
	}
	if failed > 0 {
		return cli.NewCommandError("import", fmt.Errorf("%d of %d maps failed", failed, len(maps)))
	}
	return nil
}

func exportScene(host *scene.MemoryHost) error {
	if importFlags.export == "" {
		return nil
	}
	if err := host.ExportFile(importFlags.export); err != nil {
		return cli.NewCommandError("import", fmt.Errorf("scene export failed: %w", err))
	}
	fmt.Printf("✓ Scene exported to %s\n", importFlags.export)
	return nil
}
