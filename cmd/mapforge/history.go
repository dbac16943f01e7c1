package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"mapforge/strata/pkg/cli"
	"mapforge/strata/pkg/journal"
)

var historyFlags struct {
	source string
	status string
	since  string
	until  string
	limit  int
	format string
	output string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the import journal",
	Long: `Query recorded import sessions.

Every import run is journaled with its source, timing, and object
counts. The history command filters and exports those entries.

Time filters accept RFC3339 timestamps or durations relative to now:
  --since 2026-08-01T00:00:00Z
  --since 24h

Examples:
  # Most recent imports
  mapforge history

  # Failures in the last day
  mapforge history --status error --since 24h

  # Everything for one map, as CSV
  mapforge history --source maps/arena.vmf --format csv --output arena.csv`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyFlags.source, "source", "", "filter by exact source path")
	historyCmd.Flags().StringVar(&historyFlags.status, "status", "", "filter by status (success, error)")
	historyCmd.Flags().StringVar(&historyFlags.since, "since", "", "entries started after this time (RFC3339 or duration)")
	historyCmd.Flags().StringVar(&historyFlags.until, "until", "", "entries started before this time (RFC3339 or duration)")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 0, "max results (0 uses journal.query_limit)")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")
	historyCmd.Flags().StringVarP(&historyFlags.output, "output", "o", "", "output file (default: stdout)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	// Load config to get journal settings
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if !cfg.Journal.Enabled {
		return fmt.Errorf("journal is disabled in config (set journal.enabled: true)")
	}

	j, err := openJournal(cfg, slog.Default())
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer j.Close()

	// Build query
	query := journal.Query{
		Source: historyFlags.source,
		Status: historyFlags.status,
		Limit:  historyFlags.limit,
	}
	if query.Limit == 0 {
		query.Limit = cfg.Journal.QueryLimit
	}

	if historyFlags.since != "" {
		since, err := parseTimeFlag(historyFlags.since)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		query.Since = since
	}
	if historyFlags.until != "" {
		until, err := parseTimeFlag(historyFlags.until)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		query.Until = until
	}

	// Execute query
	ctx := context.Background()
	entries, err := j.List(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("query failed: %w", err))
	}
	total, err := j.Count(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("query failed: %w", err))
	}

	// Output results
	var output *os.File
	if historyFlags.output != "" {
		output, err = os.Create(historyFlags.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	switch historyFlags.format {
	case "json":
		return outputHistoryJSON(output, entries, total)
	case "csv":
		return cli.NewFormatter(cli.FormatCSV).FormatTo(output, historyTable(entries))
	default:
		return outputHistoryText(output, entries, total)
	}
}

// parseTimeFlag reads a time filter as either an RFC3339 timestamp or a
// duration back from now.
func parseTimeFlag(value string) (time.Time, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return time.Now().Add(-d), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC3339 or duration, got %q", value)
	}
	return t, nil
}

func outputHistoryText(output io.Writer, entries []*journal.Entry, total int64) error {
	fmt.Fprintf(output, "Showing %d of %d matching entries\n", len(entries), total)
	fmt.Fprintln(output)

	if len(entries) == 0 {
		fmt.Fprintln(output, "No entries found.")
		return nil
	}

	for i, entry := range entries {
		if i > 0 {
			fmt.Fprintln(output)
		}

		fmt.Fprintf(output, "Import ID: %s\n", entry.ID)
		fmt.Fprintf(output, "Started: %s\n", entry.StartedAt.Format(time.RFC3339))
		fmt.Fprintf(output, "Duration: %s\n", entry.Duration.Round(time.Millisecond))
		fmt.Fprintf(output, "Status: %s\n", entry.Status)
		fmt.Fprintf(output, "Source: %s\n", entry.Source)
		if entry.Error != "" {
			fmt.Fprintf(output, "Error: %s\n", entry.Error)
		}
		fmt.Fprintf(output, "Objects: %d solids, %d groups, %d lights (%d pruned, %d skipped)\n",
			entry.Solids, entry.Groups, entry.Lights, entry.Pruned, entry.Skipped)

		// Show limited output for large result sets
		if i >= 9 && len(entries) > 10 {
			remaining := len(entries) - 10
			fmt.Fprintln(output)
			fmt.Fprintf(output, "... and %d more entries\n", remaining)
			fmt.Fprintf(output, "Use --limit for more, or --format csv for the full set.\n")
			break
		}
	}

	return nil
}

func outputHistoryJSON(output io.Writer, entries []*journal.Entry, total int64) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"total_entries": total,
		"entries":       entries,
	}

	return encoder.Encode(result)
}

// historyTable adapts journal entries to CSV output.
type historyTable []*journal.Entry

func (t historyTable) CSVHeader() []string {
	return []string{
		"id", "started_at", "duration_ms", "status", "source",
		"nodes", "solids", "groups", "lights", "pruned", "skipped", "error",
	}
}

func (t historyTable) CSVRecords() [][]string {
	records := make([][]string, 0, len(t))
	for _, e := range t {
		records = append(records, []string{
			e.ID,
			e.StartedAt.Format(time.RFC3339),
			strconv.FormatInt(e.Duration.Milliseconds(), 10),
			e.Status,
			e.Source,
			strconv.Itoa(e.Nodes),
			strconv.Itoa(e.Solids),
			strconv.Itoa(e.Groups),
			strconv.Itoa(e.Lights),
			strconv.Itoa(e.Pruned),
			strconv.Itoa(e.Skipped),
			e.Error,
		})
	}
	return records
}
