package scene

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"mapforge/strata/pkg/vmf/ast"
)

const (
	// lightColorScale normalizes _light RGB components from [0,255].
	lightColorScale = 255

	// lightIntensityScale maps the _light brightness scalar onto the host
	// intensity convention.
	lightIntensityScale = 200

	// lightRange is the fixed falloff range assigned to every imported
	// light, in world units.
	lightRange = 25
)

// importLights imports every light-classed entity under the root.
// Failures are isolated per light.
func (a *Assembler) importLights(ctx context.Context, r *run) {
	for _, e := range r.doc.Entities() {
		if !strings.HasPrefix(e.ClassName, "light") {
			continue
		}
		if err := a.importLight(ctx, e); err != nil {
			a.logger.Warn("skipping light",
				"id", e.ID, "class", e.ClassName, "line", e.Line(), "error", err)
			r.result.SkippedLights++
			continue
		}
		r.result.Lights++
	}
}

// importLight materializes one light entity at its origin and angles.
func (a *Assembler) importLight(ctx context.Context, e *ast.Entity) error {
	light, err := decodeLight(e)
	if err != nil {
		return err
	}

	id, err := a.host.CreateObject(ctx, fmt.Sprintf("%s_%d", e.ClassName, e.ID))
	if err != nil {
		return err
	}
	if err := a.configureLight(ctx, e, id, light); err != nil {
		if derr := a.host.DestroyObject(ctx, id); derr != nil {
			a.logger.Warn("cleanup of failed light object failed",
				"id", e.ID, "error", derr)
		}
		return err
	}
	return nil
}

func (a *Assembler) configureLight(ctx context.Context, e *ast.Entity, id ObjectID, light Light) error {
	if err := a.host.SetTransform(ctx, id, e.Origin, e.Angles); err != nil {
		return err
	}
	return a.host.AttachLight(ctx, id, light)
}

// decodeLight turns an entity's _light property (and _cone for spots) into
// host light parameters. The classname picks the kind: "light" is a point
// light, "light_spot" a spot light, and any other light class keeps the
// host's default kind.
func decodeLight(e *ast.Entity) (Light, error) {
	light := Light{Range: lightRange}

	raw := e.Property("_light")
	if raw == "" {
		return light, fmt.Errorf("entity %d has no _light property", e.ID)
	}

	// Fields collapses runs of whitespace, which hand-edited maps contain.
	fields := strings.Fields(raw)
	if len(fields) != 4 {
		return light, fmt.Errorf("_light %q has %d fields, want 4", raw, len(fields))
	}
	var vals [4]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return light, fmt.Errorf("_light %q: bad number %q", raw, f)
		}
		vals[i] = float32(v)
	}

	light.Color = mgl32.Vec3{
		vals[0] / lightColorScale,
		vals[1] / lightColorScale,
		vals[2] / lightColorScale,
	}
	light.Intensity = vals[3] / lightIntensityScale

	switch e.ClassName {
	case "light":
		light.Kind = LightPoint
	case "light_spot":
		light.Kind = LightSpot
		cone := e.Property("_cone")
		angle, err := strconv.Atoi(strings.TrimSpace(cone))
		if err != nil {
			return light, fmt.Errorf("light_spot %d: bad _cone %q", e.ID, cone)
		}
		light.ConeAngle = float32(angle)
	}
	return light, nil
}
