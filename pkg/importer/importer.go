package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mapforge/strata/pkg/config"
	"mapforge/strata/pkg/journal"
	"mapforge/strata/pkg/scene"
	"mapforge/strata/pkg/tasks"
	"mapforge/strata/pkg/telemetry/logging"
	"mapforge/strata/pkg/telemetry/metrics"
	"mapforge/strata/pkg/telemetry/tracing"
	"mapforge/strata/pkg/vmf/ast"
	"mapforge/strata/pkg/vmf/parser"
)

// Options configures an Importer. Assembler is required; everything else
// has a working default.
type Options struct {
	// Parser parses map sources. Nil uses a parser with default limits.
	Parser *parser.Parser

	// Assembler materializes parsed documents into the scene host.
	Assembler *scene.Assembler

	// Journal records one entry per run. Nil disables journaling.
	Journal journal.Journal

	// Metrics records run counters and durations. Nil disables metrics.
	Metrics *metrics.Collector

	// Tracer wraps the run and its stages in spans. Nil uses a disabled
	// tracer.
	Tracer *tracing.Tracer

	// Logger receives run logs. Nil uses the default logger.
	Logger *slog.Logger
}

// Importer drives one import pipeline. It is safe for concurrent use.
type Importer struct {
	parser    *parser.Parser
	assembler *scene.Assembler
	journal   journal.Journal
	metrics   *metrics.Collector
	tracer    *tracing.Tracer
	logger    *slog.Logger
}

// Session reports one completed run.
type Session struct {
	// ID is the run's unique id, shared with its journal entry.
	ID string

	// Source names what was imported.
	Source string

	// Document is the parsed tree.
	Document *ast.Document

	// Result summarizes the assembled scene.
	Result *scene.Result

	// Tasks is a registry scoped to this session. The pipeline itself does
	// not drive it; callers enqueue and complete follow-up work around the
	// import.
	Tasks *tasks.Registry

	// StartedAt and Duration cover the whole run, parse through assembly.
	StartedAt time.Time
	Duration  time.Duration
}

// New creates an importer.
func New(opts Options) (*Importer, error) {
	if opts.Assembler == nil {
		return nil, fmt.Errorf("assembler cannot be nil")
	}
	if opts.Parser == nil {
		opts.Parser = parser.NewParser()
	}
	if opts.Tracer == nil {
		tracer, err := tracing.New(&config.TracingConfig{Enabled: false})
		if err != nil {
			return nil, fmt.Errorf("failed to create disabled tracer: %w", err)
		}
		opts.Tracer = tracer
	}

	return &Importer{
		parser:    opts.Parser,
		assembler: opts.Assembler,
		journal:   opts.Journal,
		metrics:   opts.Metrics,
		tracer:    opts.Tracer,
		logger:    logging.Component(opts.Logger, "importer"),
	}, nil
}

// Run imports the map file at path and returns the session.
func (i *Importer) Run(ctx context.Context, path string) (*Session, error) {
	return i.run(ctx, path, func() (*ast.Document, error) {
		return i.parser.Parse(path)
	})
}

// RunBytes imports an in-memory map source. sourcePath names the source in
// diagnostics and the journal.
func (i *Importer) RunBytes(ctx context.Context, data []byte, sourcePath string) (*Session, error) {
	return i.run(ctx, sourcePath, func() (*ast.Document, error) {
		return i.parser.ParseBytes(data, sourcePath)
	})
}

// Parse imports the map file at path and returns its document tree. The
// scene is assembled through the configured collaborators as a side effect;
// callers that need run details use Run.
func (i *Importer) Parse(ctx context.Context, path string) (*ast.Document, error) {
	session, err := i.Run(ctx, path)
	if err != nil {
		return nil, err
	}
	return session.Document, nil
}

// ParseBytes is Parse for an in-memory source.
func (i *Importer) ParseBytes(ctx context.Context, data []byte, sourcePath string) (*ast.Document, error) {
	session, err := i.RunBytes(ctx, data, sourcePath)
	if err != nil {
		return nil, err
	}
	return session.Document, nil
}

func (i *Importer) run(ctx context.Context, source string, parse func() (*ast.Document, error)) (*Session, error) {
	sessionID := uuid.New().String()
	started := time.Now()

	ctx = logging.WithSessionID(ctx, sessionID)
	ctx = logging.WithSource(ctx, source)
	logger := logging.ContextLogger(ctx, i.logger)

	ctx, span := i.tracer.Start(ctx, "import.run")
	defer span.End()
	tracing.SetSourceAttributes(span, sessionID, source)

	logger.Info("import started")

	doc, err := i.parseStage(ctx, parse)
	if err != nil {
		tracing.RecordError(span, err)
		i.recordFailure(ctx, logger, sessionID, source, started, err)
		logger.Error("parse failed", "error", err)
		return nil, err
	}

	variants, nodes := countVariants(doc)
	if i.metrics != nil {
		for variant, count := range variants {
			i.metrics.RecordNodes(variant, count)
		}
	}

	result, err := i.assembleStage(ctx, doc)
	if err != nil {
		tracing.RecordError(span, err)
		i.recordFailure(ctx, logger, sessionID, source, started, err)
		logger.Error("assembly failed", "error", err)
		return nil, err
	}

	elapsed := time.Since(started)
	if i.metrics != nil {
		i.metrics.RecordObjects("solid", result.Solids)
		i.metrics.RecordObjects("group", result.Groups)
		i.metrics.RecordObjects("light", result.Lights)
		i.metrics.RecordPruned(result.Pruned)
		i.metrics.RecordSkipped("solid", result.SkippedSolids)
		i.metrics.RecordSkipped("light", result.SkippedLights)
		i.metrics.RecordImport(journal.StatusSuccess, elapsed)
	}
	tracing.SetResultAttributes(span, result.Solids, result.Groups, result.Lights,
		result.Pruned, result.Skipped())

	i.record(ctx, logger, &journal.Entry{
		ID:        sessionID,
		Source:    source,
		StartedAt: started,
		Duration:  elapsed,
		Status:    journal.StatusSuccess,
		Nodes:     nodes,
		Solids:    result.Solids,
		Groups:    result.Groups,
		Lights:    result.Lights,
		Pruned:    result.Pruned,
		Skipped:   result.Skipped(),
	})

	logger.Info("import complete",
		"nodes", nodes,
		"solids", result.Solids,
		"groups", result.Groups,
		"lights", result.Lights,
		"pruned", result.Pruned,
		"skipped", result.Skipped(),
		"duration", elapsed,
	)

	return &Session{
		ID:        sessionID,
		Source:    source,
		Document:  doc,
		Result:    result,
		Tasks:     tasks.NewRegistry(),
		StartedAt: started,
		Duration:  elapsed,
	}, nil
}

// parseStage runs the parser under its own span and records parse duration.
func (i *Importer) parseStage(ctx context.Context, parse func() (*ast.Document, error)) (*ast.Document, error) {
	_, span := i.tracer.Start(ctx, "import.parse")
	defer span.End()

	started := time.Now()
	doc, err := parse()
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if i.metrics != nil {
		i.metrics.RecordParse(time.Since(started))
	}
	return doc, nil
}

// assembleStage runs the assembler under its own span.
func (i *Importer) assembleStage(ctx context.Context, doc *ast.Document) (*scene.Result, error) {
	ctx, span := i.tracer.Start(ctx, "import.assemble")
	defer span.End()

	result, err := i.assembler.Assemble(ctx, doc)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return result, nil
}

// record writes a journal entry. Journal failures never fail the run; they
// are logged and dropped.
func (i *Importer) record(ctx context.Context, logger *slog.Logger, entry *journal.Entry) {
	if i.journal == nil {
		return
	}
	if err := i.journal.Record(ctx, entry); err != nil {
		logger.Warn("journal record failed", "error", err)
	}
}

// recordFailure records the error outcome in metrics and the journal.
func (i *Importer) recordFailure(ctx context.Context, logger *slog.Logger, sessionID, source string, started time.Time, cause error) {
	elapsed := time.Since(started)
	if i.metrics != nil {
		i.metrics.RecordImport(journal.StatusError, elapsed)
	}
	i.record(ctx, logger, &journal.Entry{
		ID:        sessionID,
		Source:    source,
		StartedAt: started,
		Duration:  elapsed,
		Status:    journal.StatusError,
		Error:     cause.Error(),
	})
}

// countVariants tallies parsed nodes by variant. The document node itself is
// not counted.
func countVariants(doc *ast.Document) (map[string]int, int) {
	counts := make(map[string]int)
	total := 0
	ast.Walk(doc, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Document:
			return true
		case *ast.World:
			counts["world"]++
		case *ast.Entity:
			counts["entity"]++
		case *ast.Solid:
			counts["solid"]++
		case *ast.Group:
			counts["group"]++
		case *ast.Editor:
			counts["editor"]++
		default:
			counts["generic"]++
		}
		total++
		return true
	})
	return counts, total
}
