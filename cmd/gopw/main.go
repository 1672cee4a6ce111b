/*
 * main.go, part of gopw.
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

//gopw runs the reference water relaxation workflow. The whole
//configuration is this literal record: no flags, no environment, no
//configuration files. The log is the only report surface, and the exit
//status does not distinguish how many stages succeeded.
package main

import (
	"github.com/molspace/gopw/pipeline"
	"github.com/molspace/gopw/qc"
)

func main() {
	pipeline.Run(pipeline.Config{
		Identifier: "H2O",
		Solver: qc.Options{
			Cutoff:   400,
			XC:       qc.PBE,
			KPoints:  [3]int{1, 1, 1},
			Parallel: map[string]int{"nprocs": 2},
			Trace:    "h2o.txt",
		},
		Ftol:           0.05,
		TrajPath:       "h2o_opt.trz",
		StructurePath:  "h2o_final.xyz",
		Format:         pipeline.FormatXYZ,
		CheckpointPath: "h2o.chk",
		CheckpointMode: qc.CheckpointAll,
		LogPath:        "water_pipeline.log",
		PlotPath:       "h2o_convergence.png",
		SummaryPath:    "h2o_summary.yaml",
	})
}
