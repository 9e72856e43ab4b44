package config

import "time"

// Config holds every tunable of the simulation core.
type Config struct {
	World        WorldDef        `yaml:"world" json:"world"`
	Zones        ZonesDef        `yaml:"zones" json:"zones"`
	Roads        RoadsDef        `yaml:"roads" json:"roads"`
	Connectivity ConnectivityDef `yaml:"connectivity" json:"connectivity"`
	Agents       AgentsDef       `yaml:"agents" json:"agents"`
	Lots         LotsDef         `yaml:"lots" json:"lots"`
	Territory    TerritoryDef    `yaml:"territory" json:"territory"`
	Sim          SimDef          `yaml:"sim" json:"sim"`
}

// WorldDef is the fixed extent of the painting plane.
type WorldDef struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

type ZonesDef struct {
	// MergeFactor scales the brush radius into the distance within which a
	// stroke joins an existing zone of the same kind.
	MergeFactor float64 `yaml:"merge_factor" json:"merge_factor"`
}

type RoadsDef struct {
	ConnectionRadius      float64 `yaml:"connection_radius" json:"connection_radius"`
	MinPointDistance      float64 `yaml:"min_point_distance" json:"min_point_distance"`
	IntermediateThreshold float64 `yaml:"intermediate_threshold" json:"intermediate_threshold"`
	IntermediateSpacing   float64 `yaml:"intermediate_spacing" json:"intermediate_spacing"`
	LineCheckSamples      int     `yaml:"line_check_samples" json:"line_check_samples"`
	ApproachDistance      float64 `yaml:"approach_distance" json:"approach_distance"`
	ApproachMinDegree     int     `yaml:"approach_min_degree" json:"approach_min_degree"`
	IntersectionMinDegree int     `yaml:"intersection_min_degree" json:"intersection_min_degree"`
	EdgeThreshold         float64 `yaml:"edge_threshold" json:"edge_threshold"`
	EntryBand             float64 `yaml:"entry_band" json:"entry_band"`
}

type ConnectivityDef struct {
	GridSize       float64 `yaml:"grid_size" json:"grid_size"`
	EdgeStride     float64 `yaml:"edge_stride" json:"edge_stride"`
	TouchTolerance float64 `yaml:"touch_tolerance" json:"touch_tolerance"`
}

type AgentsDef struct {
	Speed             float64       `yaml:"speed" json:"speed"`
	Radius            float64       `yaml:"radius" json:"radius"`
	FootprintRadius   float64       `yaml:"footprint_radius" json:"footprint_radius"`
	PackingEfficiency float64       `yaml:"packing_efficiency" json:"packing_efficiency"`
	MaxPerZone        int           `yaml:"max_per_zone" json:"max_per_zone"`
	MinSeparation     float64       `yaml:"min_separation" json:"min_separation"`
	PlacementAttempts int           `yaml:"placement_attempts" json:"placement_attempts"`
	SpawnDelay        time.Duration `yaml:"spawn_delay" json:"spawn_delay"`
	Seed              uint64        `yaml:"seed" json:"seed"`
}

type LotsDef struct {
	RoadSearchRadius      float64 `yaml:"road_search_radius" json:"road_search_radius"`
	DirectionSampleRadius float64 `yaml:"direction_sample_radius" json:"direction_sample_radius"`
	FrontOffset           float64 `yaml:"front_offset" json:"front_offset"`
	MarchStep             float64 `yaml:"march_step" json:"march_step"`
	MinDepth              float64 `yaml:"min_depth" json:"min_depth"`
	MaxDepth              float64 `yaml:"max_depth" json:"max_depth"`
	MinWidth              float64 `yaml:"min_width" json:"min_width"`
	MaxWidth              float64 `yaml:"max_width" json:"max_width"`
	ClaimRadius           float64 `yaml:"claim_radius" json:"claim_radius"`
	FallbackRadius        float64 `yaml:"fallback_radius" json:"fallback_radius"`
	FallbackSegments      int     `yaml:"fallback_segments" json:"fallback_segments"`
}

type TerritoryDef struct {
	Rays        int     `yaml:"rays" json:"rays"`
	Step        float64 `yaml:"step" json:"step"`
	MaxDistance float64 `yaml:"max_distance" json:"max_distance"`
	Proximity   float64 `yaml:"proximity" json:"proximity"`
}

// SimDef configures the drivers (CLI and server), not the core tick itself.
type SimDef struct {
	Tick  time.Duration `yaml:"tick" json:"tick"`
	Ticks int           `yaml:"ticks" json:"ticks"`
}

// Project is a scenario script: settings overlaid on the defaults plus a list
// of brush strokes replayed before the run.
type Project struct {
	Settings Config   `yaml:"settings" json:"settings"`
	Strokes  []Stroke `yaml:"strokes" json:"strokes"`
	Ticks    int      `yaml:"ticks" json:"ticks"`
}

// StrokeOp selects what a scripted stroke does.
type StrokeOp string

const (
	OpPaint StrokeOp = "paint"
	OpErase StrokeOp = "erase"
)

// Stroke is one scripted brush gesture. Points are [x, y] or [x, y, t_ms];
// missing timestamps are spaced 16ms apart.
type Stroke struct {
	Op     StrokeOp    `yaml:"op" json:"op"`
	Kind   string      `yaml:"kind" json:"kind"`
	Radius float64     `yaml:"radius" json:"radius"`
	Points [][]float64 `yaml:"points" json:"points"`
}
