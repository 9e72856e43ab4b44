package main

import (
	"fmt"
	"sort"

	"github.com/ChicagoDave/townpaint/pkg/analytics"
	"github.com/ChicagoDave/townpaint/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(e validation.Result) {
	fmt.Printf("  [%s] %s\n", e.Level, e.Message)
	if e.Path != "" {
		fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
	}
	if e.Expected != "" {
		fmt.Printf("    expected: %s\n", e.Expected)
	}
	for _, s := range e.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printSummary(s *analytics.Summary) {
	fmt.Printf("Town after %d ticks\n", s.Tick)
	fmt.Println("====================")
	fmt.Println()

	fmt.Printf("  Road zones:      %d (area %.0f)\n", s.RoadZones, s.RoadArea)
	fmt.Printf("  Waypoints:       %d (%d edges, %d components)\n", s.Graph.Waypoints, s.Graph.Edges, s.Graph.Components)
	fmt.Printf("  Intersections:   %d (%d approaches)\n", s.Graph.Intersections, s.Graph.Approaches)
	fmt.Printf("  Edge points:     %d\n", s.Graph.EdgePoints)
	fmt.Printf("  Agents:          %d live, %d queued, capacity %d\n", s.TotalAgents, s.TotalQueued, s.TotalCapacity)
	fmt.Println()

	if len(s.Residential) > 0 {
		fmt.Printf("%-6s %10s %10s %9s %9s %8s %7s\n",
			"Zone", "Area", "Connected", "Capacity", "Settled", "Queued", "Fill")
		fmt.Printf("%-6s %10s %10s %9s %9s %8s %7s\n",
			"------", "----------", "----------", "---------", "---------", "--------", "-------")
		for _, z := range s.Residential {
			fmt.Printf("%-6d %10.0f %10t %9d %9d %8d %6.0f%%\n",
				z.ID, z.Area, z.Connected, z.Capacity, z.Settled, z.Queued, z.Fill*100)
		}
		fmt.Println()
	}

	phases := make([]string, 0, len(s.Phases))
	for p := range s.Phases {
		phases = append(phases, p)
	}
	sort.Strings(phases)
	for _, p := range phases {
		fmt.Printf("  %-20s %d\n", p, s.Phases[p])
	}
}
