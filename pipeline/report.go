/*
 * report.go, part of gopw.
 *
 *
 * Copyright 2026 The gopw authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package pipeline

import (
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/molspace/gopw/opt"
)

//The run summary is a small YAML document for humans and scripts; it
//repeats what the log already said, structured.
type summary struct {
	RunID      string         `yaml:"run_id"`
	Identifier string         `yaml:"identifier"`
	Stages     []stageSummary `yaml:"stages"`
}

type stageSummary struct {
	Stage  string  `yaml:"stage"`
	Status string  `yaml:"status"`
	Value  float64 `yaml:"value,omitempty"`
	Path   string  `yaml:"path,omitempty"`
	Error  string  `yaml:"error,omitempty"`
}

//report writes the optional post-run artifacts: the YAML summary and the
//energy-vs-step convergence plot. Both are best-effort; a failure is
//logged and nothing else.
func report(cfg Config, runID string, outcomes []Outcome, ores *opt.Result, logger *Logger) {
	if cfg.SummaryPath != "" {
		if err := writeSummary(cfg.SummaryPath, runID, cfg.Identifier, outcomes); err != nil {
			logger.Record("report: can't write run summary: " + err.Error())
		} else {
			logger.Record("Run summary written to " + cfg.SummaryPath)
		}
	}
	if cfg.PlotPath != "" && ores != nil && len(ores.Energies) > 0 {
		if err := writePlot(cfg.PlotPath, ores.Energies); err != nil {
			logger.Record("report: can't write convergence plot: " + err.Error())
		} else {
			logger.Record("Convergence plot written to " + cfg.PlotPath)
		}
	}
}

func writeSummary(path, runID, identifier string, outcomes []Outcome) error {
	s := summary{RunID: runID, Identifier: identifier}
	for _, o := range outcomes {
		ss := stageSummary{Stage: o.Stage, Status: "ok", Value: o.Value, Path: o.Path}
		if o.Failed() {
			ss.Status = "failed"
			ss.Error = o.Err.Error()
		}
		s.Stages = append(s.Stages, ss)
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writePlot(path string, energies []float64) error {
	p := plot.New()
	p.Title.Text = "Geometry relaxation"
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Energy (eV)"
	p.Add(plotter.NewGrid())
	pts := make(plotter.XYs, len(energies))
	for i, e := range energies {
		pts[i].X = float64(i)
		pts[i].Y = e
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(12*vg.Centimeter, 9*vg.Centimeter, path)
}
