package validation

import (
	"fmt"

	"github.com/ChicagoDave/townpaint/pkg/config"
)

// ValidateConfig checks a configuration for values the simulation cannot run
// with. It runs before any zone is painted.
func ValidateConfig(c *config.Config) *Report {
	r := NewReport()

	validateWorld(c, r)
	validateZones(c, r)
	validateRoads(c, r)
	validateConnectivity(c, r)
	validateAgents(c, r)
	validateLots(c, r)
	validateTerritory(c, r)

	return r
}

func requirePositive(r *Report, path string, v float64) {
	if v <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("%s must be greater than 0", path),
			Path:        path,
			ActualValue: v,
			Expected:    "> 0",
		})
	}
}

func requireAtLeast(r *Report, path string, v, min int) {
	if v < min {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("%s must be at least %d", path, min),
			Path:        path,
			ActualValue: v,
			Expected:    fmt.Sprintf(">= %d", min),
		})
	}
}

func requireOrdered(r *Report, path string, lo, hi float64) {
	if lo > hi {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("%s: minimum (%.1f) exceeds maximum (%.1f)", path, lo, hi),
			Path:        path,
			ActualValue: fmt.Sprintf("%.1f-%.1f", lo, hi),
		})
	}
}

func validateWorld(c *config.Config, r *Report) {
	requirePositive(r, "world.width", c.World.Width)
	requirePositive(r, "world.height", c.World.Height)
}

func validateZones(c *config.Config, r *Report) {
	requirePositive(r, "zones.merge_factor", c.Zones.MergeFactor)
}

func validateRoads(c *config.Config, r *Report) {
	rd := c.Roads
	requirePositive(r, "roads.connection_radius", rd.ConnectionRadius)
	requirePositive(r, "roads.min_point_distance", rd.MinPointDistance)
	requirePositive(r, "roads.intermediate_spacing", rd.IntermediateSpacing)
	requirePositive(r, "roads.approach_distance", rd.ApproachDistance)
	requirePositive(r, "roads.entry_band", rd.EntryBand)
	requireAtLeast(r, "roads.line_check_samples", rd.LineCheckSamples, 2)
	requireAtLeast(r, "roads.intersection_min_degree", rd.IntersectionMinDegree, 3)

	if rd.MinPointDistance >= rd.ConnectionRadius {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("roads.min_point_distance (%.1f) must be smaller than roads.connection_radius (%.1f)", rd.MinPointDistance, rd.ConnectionRadius),
			Path:        "roads.min_point_distance",
			ActualValue: rd.MinPointDistance,
			Suggestions: []string{"Waypoints closer than the connection radius are needed for the graph to link at all"},
		})
	}
	if rd.ApproachMinDegree < rd.IntersectionMinDegree {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "roads.approach_min_degree is below roads.intersection_min_degree; approaches will be added to non-intersections",
			Path:        "roads.approach_min_degree",
			ActualValue: rd.ApproachMinDegree,
		})
	}
	if rd.IntermediateSpacing > rd.ConnectionRadius {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "roads.intermediate_spacing exceeds roads.connection_radius; interpolated waypoints may not link",
			Path:        "roads.intermediate_spacing",
			ActualValue: rd.IntermediateSpacing,
		})
	}
}

func validateConnectivity(c *config.Config, r *Report) {
	requirePositive(r, "connectivity.grid_size", c.Connectivity.GridSize)
	requirePositive(r, "connectivity.edge_stride", c.Connectivity.EdgeStride)
	if c.Connectivity.TouchTolerance < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "connectivity.touch_tolerance must be non-negative",
			Path:        "connectivity.touch_tolerance",
			ActualValue: c.Connectivity.TouchTolerance,
			Expected:    ">= 0",
		})
	}

	cells := (c.World.Width / c.Connectivity.GridSize) * (c.World.Height / c.Connectivity.GridSize)
	if cells > 1_000_000 {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("flood-fill grid has %.0f cells; connectivity passes will be slow", cells),
			Path:        "connectivity.grid_size",
			ActualValue: c.Connectivity.GridSize,
			Suggestions: []string{"Increase connectivity.grid_size or shrink the world"},
		})
	}
}

func validateAgents(c *config.Config, r *Report) {
	a := c.Agents
	requirePositive(r, "agents.speed", a.Speed)
	requirePositive(r, "agents.footprint_radius", a.FootprintRadius)
	requireAtLeast(r, "agents.max_per_zone", a.MaxPerZone, 0)
	requireAtLeast(r, "agents.placement_attempts", a.PlacementAttempts, 1)

	if a.PackingEfficiency <= 0 || a.PackingEfficiency > 1 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("agents.packing_efficiency %.2f is outside (0, 1]", a.PackingEfficiency),
			Path:        "agents.packing_efficiency",
			ActualValue: a.PackingEfficiency,
			Expected:    "0 < efficiency <= 1",
		})
	}
	if a.SpawnDelay < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "agents.spawn_delay must be non-negative",
			Path:        "agents.spawn_delay",
			ActualValue: a.SpawnDelay.String(),
		})
	}
}

func validateLots(c *config.Config, r *Report) {
	l := c.Lots
	requirePositive(r, "lots.march_step", l.MarchStep)
	requirePositive(r, "lots.fallback_radius", l.FallbackRadius)
	requireAtLeast(r, "lots.fallback_segments", l.FallbackSegments, 3)
	requireOrdered(r, "lots.depth", l.MinDepth, l.MaxDepth)
	requireOrdered(r, "lots.width", l.MinWidth, l.MaxWidth)
}

func validateTerritory(c *config.Config, r *Report) {
	requireAtLeast(r, "territory.rays", c.Territory.Rays, 3)
	requirePositive(r, "territory.step", c.Territory.Step)
	requirePositive(r, "territory.max_distance", c.Territory.MaxDistance)
}
