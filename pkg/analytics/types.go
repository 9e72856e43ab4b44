package analytics

// ZoneStats holds computed figures for one residential zone.
type ZoneStats struct {
	ID          int     `json:"id"`
	Circles     int     `json:"circles"`
	Area        float64 `json:"area"`
	Connected   bool    `json:"connected"`
	Capacity    int     `json:"capacity"`
	Population  int     `json:"population"`
	Settled     int     `json:"settled"`
	Traveling   int     `json:"traveling"`
	Queued      int     `json:"queued"`
	Entries     int     `json:"entries"`
	Fill        float64 `json:"fill"`
	LotArea     float64 `json:"lot_area"`
	GridPaths   int     `json:"grid_paths"`
	FallbackLot int     `json:"fallback_lots"`
}

// GraphStats summarizes the road graph.
type GraphStats struct {
	Waypoints     int     `json:"waypoints"`
	Edges         int     `json:"edges"`
	RoadCenters   int     `json:"road_centers"`
	Intermediates int     `json:"intermediates"`
	Intersections int     `json:"intersections"`
	Approaches    int     `json:"approaches"`
	EdgePoints    int     `json:"edge_points"`
	Components    int     `json:"components"`
	AvgDegree     float64 `json:"avg_degree"`
}

// Summary is the full statistics report for one snapshot.
type Summary struct {
	Tick          int            `json:"tick"`
	RoadZones     int            `json:"road_zones"`
	RoadArea      float64        `json:"road_area"`
	Residential   []ZoneStats    `json:"residential"`
	Graph         GraphStats     `json:"graph"`
	Phases        map[string]int `json:"phases"`
	TotalAgents   int            `json:"total_agents"`
	TotalQueued   int            `json:"total_queued"`
	TotalCapacity int            `json:"total_capacity"`
}
