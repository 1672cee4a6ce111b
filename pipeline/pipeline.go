/*
 * pipeline.go, part of gopw.
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

//Package pipeline sequences one end-to-end relaxation workflow: build a
//reference structure, configure a calculator, relax the geometry,
//evaluate derived quantities, export the structure, checkpoint the
//calculator, and finalize. Every stage is fault-isolated: a failure is
//caught at the stage boundary, logged once with its taxonomy label, and
//the next stage runs regardless. The pipeline has no fatal errors and
//the log is the only failure surface.
//
//Continuing after a failed construction is preserved source behavior:
//the later stages then fail one by one on the missing state. A stricter
//pipeline would short-circuit; this one doesn't, on purpose.
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	mol "github.com/molspace/gopw"
	"github.com/molspace/gopw/opt"
	"github.com/molspace/gopw/qc"
)

//Format selects the structure export encoding.
type Format string

const (
	FormatXYZ  Format = "xyz"
	FormatJSON Format = "json"
)

//Config is the literal configuration record for one pipeline run. There
//are no flags, environment variables or configuration files behind it;
//the caller embeds the whole record in the orchestration call.
type Config struct {
	Identifier string     //reference-structure identifier, e.g. "H2O"
	Solver     qc.Options //calculator configuration

	Ftol     float64 //force convergence threshold, eV/A
	OptSteps int     //optimizer step budget, 0 for the default
	TrajPath string  //trajectory store target

	StructurePath string //structure export target
	Format        Format //export encoding, default xyz

	CheckpointPath string
	CheckpointMode qc.CheckpointMode //default "all"

	LogPath string
	LogOut  io.Writer //echo target for the log, defaults to stdout

	PlotPath    string //optional convergence plot (PNG); empty disables
	SummaryPath string //optional YAML run summary; empty disables
}

//Run executes the whole pipeline, strictly sequentially, and returns the
//ordered stage outcomes. It never aborts early: every stage is
//attempted, every failure is logged exactly once with its taxonomy
//label, and finalization always runs last. There is no success/failure
//signal beyond the outcomes and the log.
func Run(cfg Config) []Outcome {
	logger := &Logger{Path: cfg.LogPath, Out: cfg.LogOut}
	runID := uuid.NewString()
	logger.Record("Starting pipeline run " + runID)

	if cfg.Format == "" {
		cfg.Format = FormatXYZ
	}
	if cfg.CheckpointMode == "" {
		cfg.CheckpointMode = qc.CheckpointAll
	}

	outcomes := make([]Outcome, 0, 8)
	fail := func(stage, label string, err error) {
		se := &StageError{Label: label, Err: err}
		logger.Record(se.Error())
		outcomes = append(outcomes, Outcome{Stage: stage, Err: se})
	}

	var M *mol.Molecule
	var calc *qc.PW
	var ores *opt.Result

	//construct
	M, err := mol.Reference(cfg.Identifier)
	if err != nil {
		//the pipeline keeps going with an unset molecular state; the
		//downstream stages will fail on it one by one
		fail(StageConstruct, ConstructionError, err)
	} else {
		logger.Record("Molecule defined successfully.")
		outcomes = append(outcomes, Outcome{Stage: StageConstruct})
	}

	//configure
	calc, err = qc.New(cfg.Solver)
	if err != nil {
		fail(StageConfigure, ConfigurationError, err)
	} else {
		logger.Record("Calculator initialized successfully.")
		outcomes = append(outcomes, Outcome{Stage: StageConfigure})
	}

	//optimize: attaching the binding to the state is part of this stage
	switch {
	case M == nil:
		fail(StageOptimize, OptimizationError, errors.New("no molecular state to optimize"))
	case calc == nil:
		fail(StageOptimize, OptimizationError, errors.New("no calculator binding"))
	default:
		if err := calc.Attach(M); err != nil {
			fail(StageOptimize, OptimizationError, err)
			break
		}
		b := &opt.BFGS{Ftol: cfg.Ftol, Steps: cfg.OptSteps, TrajPath: cfg.TrajPath}
		ores, err = b.Run(M)
		if err != nil {
			//best-effort: M keeps whatever geometry the optimizer left
			fail(StageOptimize, OptimizationError, err)
			break
		}
		logger.Record("Geometry optimization completed.")
		outcomes = append(outcomes, Outcome{Stage: StageOptimize, Value: ores.Fmax})
	}

	//evaluate-energy, through the binding attached to the state
	if M == nil || M.Calc() == nil {
		fail(StageEnergy, EvaluationError, errors.New("no calculator attached to the molecular state"))
	} else if e, err := M.Calc().Energy(); err != nil {
		fail(StageEnergy, EvaluationError, err)
	} else {
		logger.Record(fmt.Sprintf("Total energy: %.5f eV", e))
		outcomes = append(outcomes, Outcome{Stage: StageEnergy, Value: e})
	}

	//export-structure
	if err := export(cfg, M); err != nil {
		fail(StageExport, ExportError, err)
	} else {
		logger.Record("Structure written to " + cfg.StructurePath)
		outcomes = append(outcomes, Outcome{Stage: StageExport, Path: cfg.StructurePath})
	}

	//evaluate-gap: a capability of the binding, not of every engine
	if calc == nil {
		fail(StageGap, EvaluationError, errors.New("no calculator binding"))
	} else if gc, ok := qc.Calculator(calc).(qc.GapCalculator); !ok {
		fail(StageGap, EvaluationError, errors.New("calculator does not support gap evaluation"))
	} else if g, err := gc.Gap(); err != nil {
		fail(StageGap, EvaluationError, err)
	} else {
		logger.Record(fmt.Sprintf("HOMO-LUMO gap: %.5f eV", g))
		outcomes = append(outcomes, Outcome{Stage: StageGap, Value: g})
	}

	//checkpoint
	if calc == nil {
		fail(StageCheckpoint, CheckpointError, errors.New("no calculator binding"))
	} else if err := calc.Checkpoint(cfg.CheckpointPath, cfg.CheckpointMode); err != nil {
		fail(StageCheckpoint, CheckpointError, err)
	} else {
		logger.Record("Checkpoint written to " + cfg.CheckpointPath)
		outcomes = append(outcomes, Outcome{Stage: StageCheckpoint, Path: cfg.CheckpointPath})
	}

	//finalize: attempted exactly once, last, no matter what failed above
	if calc == nil {
		fail(StageFinalize, FinalizationError, errors.New("no calculator binding to finalize"))
	} else if err := calc.Close(); err != nil {
		fail(StageFinalize, FinalizationError, err)
	} else {
		logger.Record("Calculator finalized.")
		outcomes = append(outcomes, Outcome{Stage: StageFinalize})
	}

	report(cfg, runID, outcomes, ores, logger)
	return outcomes
}

func export(cfg Config, M *mol.Molecule) error {
	if M == nil {
		return errors.New("no molecular state to export")
	}
	switch cfg.Format {
	case FormatXYZ:
		return mol.XYZWrite(cfg.StructurePath, M)
	case FormatJSON:
		return mol.JSONWrite(cfg.StructurePath, M)
	default:
		return fmt.Errorf("unknown export format %q", cfg.Format)
	}
}
