// Package view produces read-only snapshots of a simulation for renderers
// and tools.
package view

import (
	"github.com/ChicagoDave/townpaint/pkg/agent"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/lot"
	"github.com/ChicagoDave/townpaint/pkg/roadnet"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Snapshot is the complete read-only state of a simulation at one tick.
type Snapshot struct {
	Metadata Metadata    `json:"metadata"`
	Zones    []ZoneView  `json:"zones"`
	Graph    GraphView   `json:"graph"`
	Agents   []AgentView `json:"agents"`
	Queued   []AgentView `json:"queued"`
}

// Metadata holds world-level values.
type Metadata struct {
	Tick              int      `json:"tick"`
	World             geo.Rect `json:"world"`
	MinPointDistance  float64  `json:"min_point_distance"`
	GraphStale        bool     `json:"graph_stale"`
	ConnectivityStale bool     `json:"connectivity_stale"`
	GeneratedAt       string   `json:"generated_at"`
}

// ZoneView describes one zone.
type ZoneView struct {
	ID         zone.ID      `json:"id"`
	Kind       zone.Kind    `json:"kind"`
	Circles    []geo.Circle `json:"circles"`
	Area       float64      `json:"area"`
	Connected  bool         `json:"connected"`
	Capacity   int          `json:"capacity"`
	Population int          `json:"population"`
}

// GraphView is the road graph with its classifications.
type GraphView struct {
	Waypoints  []roadnet.Waypoint                          `json:"waypoints"`
	Adjacency  map[roadnet.WaypointID][]roadnet.WaypointID `json:"adjacency"`
	EdgePoints []roadnet.WaypointID                        `json:"edge_points"`
	Entries    map[zone.ID][]roadnet.WaypointID            `json:"entries"`
}

// AgentView describes one agent.
type AgentView struct {
	ID        agent.ID       `json:"id"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Phase     agent.Phase    `json:"phase"`
	Zone      zone.ID        `json:"zone"`
	Target    geo.Point      `json:"target"`
	PathLen   int            `json:"path_len"`
	GridPath  bool           `json:"grid_path,omitempty"`
	Lot       *lot.Lot       `json:"lot,omitempty"`
	Territory *lot.Territory `json:"territory,omitempty"`
}
