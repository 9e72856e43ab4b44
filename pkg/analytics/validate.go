package analytics

import (
	"fmt"

	"github.com/ChicagoDave/townpaint/pkg/validation"
)

func validateSummary(s *Summary, report *validation.Report) {
	for i, z := range s.Residential {
		path := fmt.Sprintf("residential[%d]", i)
		if !z.Connected {
			report.AddWarning(validation.Result{
				Level:   validation.LevelConnectivity,
				Message: fmt.Sprintf("zone %d is not connected to the world edge by road", z.ID),
				Path:    path + ".connected",
				Suggestions: []string{
					"Paint a road from the zone to the edge of the world",
				},
			})
			continue
		}
		if z.Capacity == 0 {
			report.AddWarning(validation.Result{
				Level:       validation.LevelAgents,
				Message:     fmt.Sprintf("zone %d is too small to house an agent", z.ID),
				Path:        path + ".capacity",
				ActualValue: z.Area,
				Suggestions: []string{"Paint a larger residential area"},
			})
		}
		if z.Entries == 0 {
			report.AddWarning(validation.Result{
				Level:   validation.LevelAgents,
				Message: fmt.Sprintf("zone %d has no entry waypoints; agents fall back to grid paths", z.ID),
				Path:    path + ".entries",
			})
		}
		if z.GridPaths > 0 {
			report.AddInfo(validation.Result{
				Level:       validation.LevelAgents,
				Message:     fmt.Sprintf("%d agents of zone %d route over the flood-fill grid", z.GridPaths, z.ID),
				Path:        path + ".grid_paths",
				ActualValue: z.GridPaths,
			})
		}
	}
	if s.Graph.Components > 1 {
		report.AddInfo(validation.Result{
			Level:       validation.LevelRebuild,
			Message:     fmt.Sprintf("road graph has %d disconnected components", s.Graph.Components),
			Path:        "graph.components",
			ActualValue: s.Graph.Components,
		})
	}
}
