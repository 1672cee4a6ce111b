/*
 * bfgs_test.go, part of gopw.
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

package opt

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	mol "github.com/molspace/gopw"
	"github.com/molspace/gopw/qc"
	"github.com/molspace/gopw/traj"
)

func relaxedWater(Te *testing.T, trajpath string) (*mol.Molecule, *Result) {
	Te.Helper()
	M, err := mol.Reference("H2O")
	if err != nil {
		Te.Fatal(err)
	}
	P, err := qc.New(qc.Options{Cutoff: 400, XC: qc.PBE, KPoints: [3]int{1, 1, 1}})
	if err != nil {
		Te.Fatal(err)
	}
	if err := P.Attach(M); err != nil {
		Te.Fatal(err)
	}
	B := &BFGS{Ftol: 0.05, TrajPath: trajpath}
	res, err := B.Run(M)
	if err != nil {
		Te.Fatal(err)
	}
	return M, res
}

func TestRelaxWater(Te *testing.T) {
	trajpath := filepath.Join(Te.TempDir(), "h2o.trz")
	_, res := relaxedWater(Te, trajpath)
	if !res.Converged {
		Te.Fatal("water should converge well within the default budget")
	}
	if res.Fmax >= 0.05 {
		Te.Errorf("converged fmax %g not below the tolerance", res.Fmax)
	}
	if len(res.Energies) < 2 {
		Te.Fatal("expected the optimizer to take at least one step")
	}
	first, last := res.Energies[0], res.Energies[len(res.Energies)-1]
	if last >= first {
		Te.Errorf("relaxation should lower the energy: %g -> %g", first, last)
	}
	//every visited geometry must be on the trajectory store
	R, err := traj.NewReader(trajpath)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	frames := 0
	for {
		if _, err := R.Next(); err != nil {
			if !errors.Is(err, traj.ErrLastFrame) {
				Te.Fatal(err)
			}
			break
		}
		frames++
	}
	if frames != len(res.Energies) {
		Te.Errorf("trajectory has %d frames, expected %d", frames, len(res.Energies))
	}
}

//TestIdempotentAtConvergence re-runs the optimizer on an already
//converged geometry: positions must not move.
func TestIdempotentAtConvergence(Te *testing.T) {
	M, _ := relaxedWater(Te, "")
	before := make([]float64, 0, M.Len()*3)
	for i := 0; i < M.Len(); i++ {
		before = append(before, M.Coords.At(i, 0), M.Coords.At(i, 1), M.Coords.At(i, 2))
	}
	B := &BFGS{Ftol: 0.05}
	res, err := B.Run(M)
	if err != nil {
		Te.Fatal(err)
	}
	if !res.Converged || res.Steps != 0 {
		Te.Errorf("re-run on a converged state should converge in zero steps, got %d", res.Steps)
	}
	for i := 0; i < M.Len(); i++ {
		for k := 0; k < 3; k++ {
			if math.Abs(M.Coords.At(i, k)-before[i*3+k]) > 1e-10 {
				Te.Error("re-run on a converged state moved the atoms")
			}
		}
	}
}

func TestNoCalculator(Te *testing.T) {
	M, err := mol.Reference("H2")
	if err != nil {
		Te.Fatal(err)
	}
	B := &BFGS{Ftol: 0.05}
	if _, err := B.Run(M); !errors.Is(err, ErrNoCalculator) {
		Te.Errorf("expected ErrNoCalculator, got %v", err)
	}
}

//TestBudgetExhaustion relaxes with a starved step budget and checks the
//best-effort contract: an ErrNotConverged error, and a mutated, usable
//geometry.
func TestBudgetExhaustion(Te *testing.T) {
	M, err := mol.Reference("H2O")
	if err != nil {
		Te.Fatal(err)
	}
	orig := M.Coords.At(1, 1)
	P, err := qc.New(qc.Options{Cutoff: 400, XC: qc.PBE, KPoints: [3]int{1, 1, 1}})
	if err != nil {
		Te.Fatal(err)
	}
	if err := P.Attach(M); err != nil {
		Te.Fatal(err)
	}
	B := &BFGS{Ftol: 1e-9, Steps: 2}
	res, err := B.Run(M)
	if !errors.Is(err, ErrNotConverged) {
		Te.Fatalf("expected ErrNotConverged, got %v", err)
	}
	if res.Converged {
		Te.Error("result should not claim convergence")
	}
	if res.Steps != 2 {
		Te.Errorf("expected 2 steps taken, got %d", res.Steps)
	}
	if M.Coords.At(1, 1) == orig {
		Te.Error("best-effort geometry should have moved")
	}
}
