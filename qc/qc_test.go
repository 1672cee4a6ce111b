/*
 * qc_test.go, part of gopw.
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
	"math"
	"path/filepath"
	"strings"
	"testing"

	mol "github.com/molspace/gopw"
)

func validOptions() Options {
	return Options{Cutoff: 400, XC: PBE, KPoints: [3]int{1, 1, 1}}
}

func water(Te *testing.T) *mol.Molecule {
	Te.Helper()
	M, err := mol.Reference("H2O")
	if err != nil {
		Te.Fatal(err)
	}
	return M
}

func TestNewValidation(Te *testing.T) {
	bad := []Options{
		{Cutoff: 0, XC: PBE, KPoints: [3]int{1, 1, 1}},
		{Cutoff: -300, XC: PBE, KPoints: [3]int{1, 1, 1}},
		{Cutoff: 400, XC: "B3PW91", KPoints: [3]int{1, 1, 1}},
		{Cutoff: 400, XC: PBE, KPoints: [3]int{0, 1, 1}},
	}
	for i, o := range bad {
		if _, err := New(o); err == nil {
			Te.Errorf("option set %d should have been rejected", i)
		} else if !strings.Contains(err.Error(), ErrBadOption) {
			Te.Errorf("option set %d: unexpected failure %v", i, err)
		}
	}
	P, err := New(validOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if P.Options().MaxSCF != 30 {
		Te.Error("MaxSCF default not filled in")
	}
}

func TestAttach(Te *testing.T) {
	P, err := New(validOptions())
	if err != nil {
		Te.Fatal(err)
	}
	M := water(Te)
	if err := P.Attach(M); err != nil {
		Te.Fatal(err)
	}
	if M.Calc() == nil {
		Te.Error("attachment should bind the calculator to the molecule")
	}
	N := water(Te)
	if err := P.Attach(N); err == nil {
		Te.Error("an engine serves exactly one molecule; second Attach should fail")
	}
	//non-molecular sampling on an isolated molecule is an invalid combination
	o := validOptions()
	o.KPoints = [3]int{2, 2, 2}
	Q, err := New(o)
	if err != nil {
		Te.Fatal(err)
	}
	if err := Q.Attach(water(Te)); err == nil {
		Te.Error("k-point sampling without a cell should be rejected")
	}
}

//TestForces compares the analytic forces against a central finite
//difference of the energy.
func TestForces(Te *testing.T) {
	P, err := New(validOptions())
	if err != nil {
		Te.Fatal(err)
	}
	M := water(Te)
	if err := P.Attach(M); err != nil {
		Te.Fatal(err)
	}
	f, err := P.Forces()
	if err != nil {
		Te.Fatal(err)
	}
	const h = 1e-6
	for i := 0; i < M.Len(); i++ {
		for k := 0; k < 3; k++ {
			orig := M.Coords.At(i, k)
			M.Coords.Set(i, k, orig+h)
			ep, err := P.Energy()
			if err != nil {
				Te.Fatal(err)
			}
			M.Coords.Set(i, k, orig-h)
			em, err := P.Energy()
			if err != nil {
				Te.Fatal(err)
			}
			M.Coords.Set(i, k, orig)
			want := -(ep - em) / (2 * h)
			if math.Abs(f.At(i, k)-want) > 1e-5 {
				Te.Errorf("force on atom %d axis %d: analytic %g, numeric %g", i, k, f.At(i, k), want)
			}
		}
	}
}

//TestParallelForces checks that the worker-pool evaluation agrees with a
//single-worker one.
func TestParallelForces(Te *testing.T) {
	serial := validOptions()
	serial.Parallel = map[string]int{"nprocs": 1}
	parallel := validOptions()
	parallel.Parallel = map[string]int{"nprocs": 4}
	var got [2]float64
	for n, o := range []Options{serial, parallel} {
		P, err := New(o)
		if err != nil {
			Te.Fatal(err)
		}
		M := water(Te)
		if err := P.Attach(M); err != nil {
			Te.Fatal(err)
		}
		f, err := P.Forces()
		if err != nil {
			Te.Fatal(err)
		}
		got[n] = f.At(0, 2)
	}
	if math.Abs(got[0]-got[1]) > 1e-12 {
		Te.Errorf("serial and parallel forces differ: %g vs %g", got[0], got[1])
	}
}

func TestGap(Te *testing.T) {
	P, err := New(validOptions())
	if err != nil {
		Te.Fatal(err)
	}
	M := water(Te)
	if err := P.Attach(M); err != nil {
		Te.Fatal(err)
	}
	g, err := P.Gap()
	if err != nil {
		Te.Fatal(err)
	}
	if g <= 0 {
		Te.Errorf("H2O gap should be positive, got %g", g)
	}
	//unattached engines can't report a gap
	Q, err := New(validOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := Q.Gap(); err == nil {
		Te.Error("gap on an unattached engine should fail")
	}
}

func TestCheckpointRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	P, err := New(validOptions())
	if err != nil {
		Te.Fatal(err)
	}
	M := water(Te)
	if err := P.Attach(M); err != nil {
		Te.Fatal(err)
	}
	e, err := P.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	g, err := P.Gap()
	if err != nil {
		Te.Fatal(err)
	}
	chk := filepath.Join(dir, "water.chk")
	if err := P.Checkpoint(chk, CheckpointAll); err != nil {
		Te.Fatal(err)
	}
	R, err := LoadCheckpoint(chk)
	if err != nil {
		Te.Fatal(err)
	}
	e2, err := R.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(e-e2) > 1e-12 {
		Te.Errorf("restored energy %g differs from original %g", e2, e)
	}
	g2, err := R.Gap()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(g-g2) > 1e-12 {
		Te.Errorf("restored gap %g differs from original %g", g2, g)
	}
	//minimal checkpoints carry no electronic state but keep the geometry,
	//so a restored engine recomputes the same energy
	chkmin := filepath.Join(dir, "water_min.chk")
	if err := P.Checkpoint(chkmin, CheckpointMinimal); err != nil {
		Te.Fatal(err)
	}
	Rm, err := LoadCheckpoint(chkmin)
	if err != nil {
		Te.Fatal(err)
	}
	e3, err := Rm.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(e-e3) > 1e-10 {
		Te.Errorf("minimally restored energy %g differs from original %g", e3, e)
	}
}

//TestCheckpointUnattached covers the contract that any validly
//configured binding can be checkpointed, attached or not.
func TestCheckpointUnattached(Te *testing.T) {
	P, err := New(validOptions())
	if err != nil {
		Te.Fatal(err)
	}
	chk := filepath.Join(Te.TempDir(), "bare.chk")
	if err := P.Checkpoint(chk, CheckpointAll); err != nil {
		Te.Fatal(err)
	}
	R, err := LoadCheckpoint(chk)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := R.Energy(); err == nil {
		Te.Error("a configuration-only checkpoint has no geometry to evaluate")
	}
}

func TestClose(Te *testing.T) {
	o := validOptions()
	o.Trace = filepath.Join(Te.TempDir(), "trace.txt")
	P, err := New(o)
	if err != nil {
		Te.Fatal(err)
	}
	M := water(Te)
	if err := P.Attach(M); err != nil {
		Te.Fatal(err)
	}
	if err := P.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := P.Close(); err == nil {
		Te.Error("second Close should fail")
	}
	if _, err := P.Energy(); err == nil {
		Te.Error("queries after Close should fail")
	}
	if _, err := P.Forces(); err == nil {
		Te.Error("queries after Close should fail")
	}
}
