package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mapforge/strata/pkg/assets"
	"mapforge/strata/pkg/geometry"
	"mapforge/strata/pkg/vmf/ast"
)

// Settings gates which parts of a parsed map the assembler materializes.
type Settings struct {
	// ImportBrushes gates solid import entirely. The world and detail flags
	// select within it.
	ImportBrushes bool

	// ImportWorldBrushes imports solids sitting under the world block.
	ImportWorldBrushes bool

	// ImportDetailBrushes imports solids carried by entities.
	ImportDetailBrushes bool

	// ImportLights imports entities whose classname starts with "light".
	ImportLights bool

	// MaterialPath is resolved once per run through the asset repository
	// and assigned to every imported solid. When it cannot be resolved the
	// built-in placeholder material is used instead.
	MaterialPath string
}

// DefaultSettings imports everything with the placeholder material.
func DefaultSettings() Settings {
	return Settings{
		ImportBrushes:       true,
		ImportWorldBrushes:  true,
		ImportDetailBrushes: true,
		ImportLights:        true,
		MaterialPath:        assets.PlaceholderPath,
	}
}

// Result summarizes one assembly run.
type Result struct {
	// Groups is the number of placeholders created before pruning.
	Groups int

	// Solids is the number of solid objects created.
	Solids int

	// Lights is the number of light objects created.
	Lights int

	// Pruned is the number of placeholders destroyed by group pruning.
	Pruned int

	// SkippedSolids counts solids dropped by per-solid failures.
	SkippedSolids int

	// SkippedLights counts lights dropped by per-light failures.
	SkippedLights int

	// GroupObjects maps surviving group ids to their placeholders.
	GroupObjects map[int]ObjectID
}

// Skipped is the total number of solids and lights dropped during the run.
func (r *Result) Skipped() int {
	return r.SkippedSolids + r.SkippedLights
}

// Assembler materializes documents into a Host. One Assembler may be reused
// across documents; each Assemble call is independent.
type Assembler struct {
	host     Host
	builder  geometry.Builder
	repo     assets.Repository
	settings Settings
	logger   *slog.Logger
}

// groupEntry pairs a group node with its placeholder. Entries stay in source
// order so identifier lookups are first-match.
type groupEntry struct {
	group       *ast.Group
	placeholder ObjectID
}

// run carries the mutable state of one Assemble call.
type run struct {
	doc      *ast.Document
	groups   []groupEntry
	material *assets.Material
	result   *Result
}

// NewAssembler creates an assembler. A nil logger falls back to the default.
func NewAssembler(host Host, builder geometry.Builder, repo assets.Repository, settings Settings, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		host:     host,
		builder:  builder,
		repo:     repo,
		settings: settings,
		logger:   logger.With("component", "scene.assembler"),
	}
}

// Assemble walks doc and creates scene objects in the fixed order groups,
// solids, lights, pruning. Per-solid and per-light failures are logged and
// skipped; only host failures during group bookkeeping abort the run.
func (a *Assembler) Assemble(ctx context.Context, doc *ast.Document) (*Result, error) {
	r := &run{
		doc:    doc,
		result: &Result{GroupObjects: make(map[int]ObjectID)},
	}

	world := doc.World()
	if world == nil {
		a.logger.Warn("document has no world block; importing entities only",
			"source", doc.SourceFile)
	}

	r.material = a.resolveMaterial(ctx)

	if world != nil {
		if err := a.createGroups(ctx, r, world); err != nil {
			return nil, err
		}
	}
	if a.settings.ImportBrushes {
		a.importSolids(ctx, r, world)
	}
	if a.settings.ImportLights {
		a.importLights(ctx, r)
	}
	if err := a.pruneGroups(ctx, r); err != nil {
		return nil, err
	}

	for _, entry := range r.groups {
		r.result.GroupObjects[entry.group.ID] = entry.placeholder
	}
	return r.result, nil
}

// resolveMaterial resolves the configured material once per run, falling
// back to the built-in placeholder when the repository cannot serve it.
func (a *Assembler) resolveMaterial(ctx context.Context) *assets.Material {
	path := a.settings.MaterialPath
	if path == "" {
		path = assets.PlaceholderPath
	}

	mat, err := a.repo.Resolve(ctx, path)
	if err == nil {
		return mat
	}
	if errors.Is(err, assets.ErrNotFound) {
		a.logger.Warn("material not found; using placeholder", "path", path)
	} else {
		a.logger.Warn("material resolution failed; using placeholder",
			"path", path, "error", err)
	}
	return assets.Placeholder()
}

// createGroups creates one placeholder per group under the world.
func (a *Assembler) createGroups(ctx context.Context, r *run, world *ast.World) error {
	for _, g := range world.Groups() {
		id, err := a.host.CreateObject(ctx, fmt.Sprintf("group_%d", g.ID))
		if err != nil {
			return fmt.Errorf("creating placeholder for group %d: %w", g.ID, err)
		}
		r.groups = append(r.groups, groupEntry{group: g, placeholder: id})
		r.result.Groups++
	}
	return nil
}

// groupByID returns the placeholder for the first group with the given id.
func (r *run) groupByID(id int) (ObjectID, bool) {
	for _, entry := range r.groups {
		if entry.group.ID == id {
			return entry.placeholder, true
		}
	}
	return RootID, false
}

// groupByNode returns the placeholder created for a specific group node.
func (r *run) groupByNode(g *ast.Group) (ObjectID, bool) {
	for _, entry := range r.groups {
		if entry.group == g {
			return entry.placeholder, true
		}
	}
	return RootID, false
}
