package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the scenario file name looked up by LoadProject.
const ProjectFile = "town.yaml"

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		World: WorldDef{Width: 800, Height: 600},
		Zones: ZonesDef{MergeFactor: 1.5},
		Roads: RoadsDef{
			ConnectionRadius:      60,
			MinPointDistance:      15,
			IntermediateThreshold: 30,
			IntermediateSpacing:   20,
			LineCheckSamples:      10,
			ApproachDistance:      20,
			ApproachMinDegree:     4,
			IntersectionMinDegree: 3,
			EdgeThreshold:         50,
			EntryBand:             60,
		},
		Connectivity: ConnectivityDef{
			GridSize:       10,
			EdgeStride:     10,
			TouchTolerance: 15,
		},
		Agents: AgentsDef{
			Speed:             2.0,
			Radius:            4,
			FootprintRadius:   12,
			PackingEfficiency: 0.6,
			MaxPerZone:        40,
			MinSeparation:     20,
			PlacementAttempts: 60,
			SpawnDelay:        250 * time.Millisecond,
			Seed:              1,
		},
		Lots: LotsDef{
			RoadSearchRadius:      150,
			DirectionSampleRadius: 60,
			FrontOffset:           6,
			MarchStep:             2,
			MinDepth:              8,
			MaxDepth:              30,
			MinWidth:              8,
			MaxWidth:              28,
			ClaimRadius:           8,
			FallbackRadius:        10,
			FallbackSegments:      8,
		},
		Territory: TerritoryDef{
			Rays:        16,
			Step:        2,
			MaxDistance: 40,
			Proximity:   10,
		},
		Sim: SimDef{
			Tick:  16 * time.Millisecond,
			Ticks: 2000,
		},
	}
}

// Load reads a configuration overlay from a YAML file. Fields absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return &cfg, nil
}

// LoadProject loads a scenario script from a project directory.
// It looks for town.yaml in the given directory.
func LoadProject(projectDir string) (*Project, error) {
	path := filepath.Join(projectDir, ProjectFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	p := Project{Settings: Default()}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	if p.Ticks <= 0 {
		p.Ticks = p.Settings.Sim.Ticks
	}
	for i, s := range p.Strokes {
		if err := s.check(); err != nil {
			return nil, fmt.Errorf("strokes[%d]: %w", i, err)
		}
	}
	return &p, nil
}

func (s Stroke) check() error {
	switch s.Op {
	case OpPaint:
		if s.Kind != "road" && s.Kind != "residential" {
			return fmt.Errorf("unknown zone kind %q", s.Kind)
		}
	case OpErase:
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	if s.Radius <= 0 {
		return fmt.Errorf("radius must be > 0, got %v", s.Radius)
	}
	if len(s.Points) == 0 {
		return fmt.Errorf("stroke has no points")
	}
	for j, pt := range s.Points {
		if len(pt) < 2 || len(pt) > 3 {
			return fmt.Errorf("points[%d]: want [x, y] or [x, y, t_ms], got %d values", j, len(pt))
		}
	}
	return nil
}

// Samples returns the stroke points with timestamps filled in.
func (s Stroke) Samples() []Sample {
	out := make([]Sample, len(s.Points))
	for i, pt := range s.Points {
		at := time.Duration(i) * 16 * time.Millisecond
		if len(pt) == 3 {
			at = time.Duration(pt[2] * float64(time.Millisecond))
		}
		out[i] = Sample{X: pt[0], Y: pt[1], At: at}
	}
	return out
}

// Sample is a timestamped brush position.
type Sample struct {
	X, Y float64
	At   time.Duration
}
