package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/ChicagoDave/townpaint/pkg/analytics"
	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/sim"
	"github.com/ChicagoDave/townpaint/pkg/validation"
	"github.com/ChicagoDave/townpaint/pkg/view"
)

// validateTicks bounds the replay done by the validate command.
const validateTicks = 300

type loaded struct {
	project *config.Project
	sim     *sim.Sim
	report  *validation.Report
}

// loadProject loads the scenario and runs config validation. A non-empty
// settingsPath replaces the project's settings with that file overlaid on the
// defaults.
func loadProject(projectPath, settingsPath string) (*config.Project, *validation.Report, error) {
	project, err := config.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading project: %w", err)
	}
	if settingsPath != "" {
		cfg, err := config.Load(settingsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading settings: %w", err)
		}
		project.Settings = *cfg
	}
	return project, validation.ValidateConfig(&project.Settings), nil
}

// loadSim loads the scenario, refuses invalid settings and replays every
// stroke into a fresh simulation.
func loadSim(projectPath, settingsPath string) (*loaded, error) {
	project, report, err := loadProject(projectPath, settingsPath)
	if err != nil {
		return nil, err
	}
	if !report.Valid {
		printValidationReport(report)
		return nil, fmt.Errorf("settings have validation errors")
	}
	s := sim.New(project.Settings, slog.Default())
	if err := s.ReplayAll(project.Strokes); err != nil {
		return nil, fmt.Errorf("replaying strokes: %w", err)
	}
	return &loaded{project: project, sim: s, report: report}, nil
}

func runRun(projectPath, settingsPath string, ticks int, asJSON bool) error {
	l, err := loadSim(projectPath, settingsPath)
	if err != nil {
		return err
	}
	if ticks <= 0 {
		ticks = l.project.Ticks
	}

	for _, res := range l.sim.Run(ticks, l.project.Settings.Sim.Tick) {
		l.report.Merge(res.Report)
	}

	snap := view.Assemble(l.sim)
	summary, statsReport := analytics.Summarize(snap)
	l.report.Merge(statsReport)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"summary":    summary,
			"validation": l.report,
			"snapshot":   snap,
		})
	}

	printSummary(summary)
	if len(l.report.Errors) > 0 || len(l.report.Warnings) > 0 {
		fmt.Println()
		printValidationReport(l.report)
	}
	return nil
}

func runValidate(projectPath, settingsPath string) error {
	project, report, err := loadProject(projectPath, settingsPath)
	if err != nil {
		return err
	}

	if report.Valid {
		s := sim.New(project.Settings, slog.Default())
		if err := s.ReplayAll(project.Strokes); err != nil {
			return fmt.Errorf("replaying strokes: %w", err)
		}
		ticks := min(project.Ticks, validateTicks)
		for _, res := range s.Run(ticks, project.Settings.Sim.Tick) {
			report.Merge(res.Report)
		}
		report.Merge(view.ValidateSnapshot(view.Assemble(s)))
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}
