/*
 * qc.go, part of gopw.
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

package qc

import (
	"gonum.org/v1/gonum/mat"

	mol "github.com/molspace/gopw"
)

//XCModel selects the exchange-correlation treatment.
type XCModel string

const (
	PBE  XCModel = "PBE"
	LDA  XCModel = "LDA"
	BLYP XCModel = "BLYP"
)

//CheckpointMode selects how much of the engine state a checkpoint
//carries.
type CheckpointMode string

const (
	//CheckpointAll persists everything needed to re-serve converged
	//results without recomputation.
	CheckpointAll CheckpointMode = "all"
	//CheckpointMinimal persists the configuration and geometry only.
	CheckpointMinimal CheckpointMode = "minimal"
)

//Options holds the numerical and method configuration for a calculation.
//The zero value is not usable; New fills defaults for the fields that
//have them. Options are fixed once a calculator has been created from
//them: no part of a calculation reconfigures a live engine.
type Options struct {
	Cutoff   float64        //plane-wave basis cutoff, eV
	XC       XCModel        //exchange-correlation model
	KPoints  [3]int         //k-point sampling grid; (1,1,1) means a single-point, molecular treatment
	Parallel map[string]int //parallelization hints; recognized key: "nprocs"
	Trace    string         //path for the engine's own diagnostic stream; empty discards it
	MaxSCF   int            //SCF iteration budget, default 30
	SCFTol   float64        //SCF residual convergence threshold, default 1e-6
}

//Calculator is the interface to a configured electronic-structure
//engine. Creation (configuration) is up to each implementation; after
//that the binding is attached to exactly one molecule and queried. Close
//releases whatever external resources the engine holds and must be the
//last call.
type Calculator interface {
	//Attach binds the calculator to M, and M to the calculator.
	Attach(M *mol.Molecule) error

	//Energy returns the total energy, in eV, for the current geometry
	//of the attached molecule.
	Energy() (float64, error)

	//Forces returns the forces, in eV/A, on each atom of the attached
	//molecule as an N x 3 matrix.
	Forces() (*mat.Dense, error)

	//Checkpoint persists the internal state of the engine to path.
	Checkpoint(path string, mode CheckpointMode) error

	//Close releases the resources held by the engine. The engine can
	//not be queried afterwards.
	Close() error
}

//GapCalculator is implemented by engines able to report the HOMO-LUMO
//gap. The capability depends on the engine (and, for external drivers,
//on the program version), so callers are expected to type-assert and
//treat absence as a failed query, not as a zero gap.
type GapCalculator interface {
	//Gap returns the HOMO-LUMO gap, in eV.
	Gap() (float64, error)
}
