/*
 * stages.go, part of gopw.
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

//Stage names, in execution order. Finalization always runs last,
//whatever happened before it.
const (
	StageConstruct  = "construct"
	StageConfigure  = "configure"
	StageOptimize   = "optimize"
	StageEnergy     = "evaluate-energy"
	StageExport     = "export-structure"
	StageGap        = "evaluate-gap"
	StageCheckpoint = "checkpoint"
	StageFinalize   = "finalize"
)

//One failure label per stage. A stage failure produces exactly one log
//record carrying its label; the labels are the error taxonomy of the
//pipeline and the only failure surface a user sees.
const (
	ConstructionError  = "ConstructionError"
	ConfigurationError = "ConfigurationError"
	OptimizationError  = "OptimizationError"
	EvaluationError    = "EvaluationError"
	ExportError        = "ExportError"
	CheckpointError    = "CheckpointError"
	FinalizationError  = "FinalizationError"
)

//StageError wraps whatever a collaborator raised, tagged with the
//taxonomy label of the stage it was caught at.
type StageError struct {
	Label string
	Err   error
}

func (e *StageError) Error() string {
	return e.Label + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

//Outcome is the result of one stage: either a produced value (a number,
//an artifact path, or both absent for pure side effects) or a captured
//failure, never both. Outcomes don't roll anything back: a failed stage
//leaves whatever its predecessors did to the molecular state in place.
type Outcome struct {
	Stage string
	Value float64
	Path  string
	Err   *StageError
}

//Failed reports whether the stage captured a failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}
