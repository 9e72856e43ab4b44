package validation

import (
	"testing"

	"github.com/ChicagoDave/townpaint/pkg/config"
)

func TestValidateConfigDefault(t *testing.T) {
	cfg := config.Default()
	r := ValidateConfig(&cfg)
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
}

func TestValidateConfigWorld(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 0
	r := ValidateConfig(&cfg)
	if r.Valid {
		t.Error("expected invalid report for world.width=0")
	}
	assertHasError(t, r, "world.width")
}

func TestValidateConfigPacking(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.PackingEfficiency = 1.5
	r := ValidateConfig(&cfg)
	assertHasError(t, r, "agents.packing_efficiency")
}

func TestValidateConfigMinPointDistance(t *testing.T) {
	cfg := config.Default()
	cfg.Roads.MinPointDistance = cfg.Roads.ConnectionRadius
	r := ValidateConfig(&cfg)
	assertHasError(t, r, "roads.min_point_distance")
}

func TestValidateConfigLotBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Lots.MinWidth = 40
	cfg.Lots.MaxWidth = 20
	r := ValidateConfig(&cfg)
	assertHasError(t, r, "lots.width")
}

func TestValidateConfigTerritoryRays(t *testing.T) {
	cfg := config.Default()
	cfg.Territory.Rays = 2
	r := ValidateConfig(&cfg)
	assertHasError(t, r, "territory.rays")
}

func TestValidateConfigLargeGridWarns(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 20000
	cfg.World.Height = 20000
	r := ValidateConfig(&cfg)
	if !r.Valid {
		t.Errorf("large grid should only warn, got errors: %v", r.Errors)
	}
	if !r.HasLevel(LevelConfig) || len(r.Warnings) == 0 {
		t.Error("expected a config warning for a large flood-fill grid")
	}
}

func assertHasError(t *testing.T, r *Report, path string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.Path == path {
			return
		}
	}
	t.Errorf("expected error with path %q, got errors: %v", path, r.Errors)
}
