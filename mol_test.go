/*
 * mol_test.go, part of gopw.
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

package mol

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestReference(Te *testing.T) {
	M, err := Reference("H2O")
	if err != nil {
		Te.Fatal(err)
	}
	if M.Len() != 3 {
		Te.Errorf("H2O should have 3 atoms, got %d", M.Len())
	}
	if M.Atom(0).Symbol != "O" || M.Atom(1).Symbol != "H" || M.Atom(2).Symbol != "H" {
		Te.Error("wrong atom symbols for H2O")
	}
	for i := 0; i < M.Len(); i++ {
		if M.Atom(i).Mass <= 0 {
			Te.Errorf("atom %d has no mass", i)
		}
	}
	if M.Calc() != nil {
		Te.Error("freshly built molecule should have no calculator attached")
	}
}

func TestReferenceUnknown(Te *testing.T) {
	_, err := Reference("XYZQ")
	if err == nil {
		Te.Fatal("expected an error for an unknown identifier")
	}
	if !errors.Is(err, ErrUnknownReference) {
		Te.Errorf("error should wrap ErrUnknownReference, got %v", err)
	}
}

//TestXYZIO checks that exporting a structure and re-importing it
//reproduces species and positions within floating-point tolerance.
func TestXYZIO(Te *testing.T) {
	M, err := Reference("NH3")
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "nh3.xyz")
	if err := XYZWrite(name, M); err != nil {
		Te.Fatal(err)
	}
	N, err := XYZRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	compareMolecules(Te, M, N, 1e-6)
}

func TestJSONIO(Te *testing.T) {
	M, err := Reference("CO2")
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "co2.json")
	if err := JSONWrite(name, M); err != nil {
		Te.Fatal(err)
	}
	N, err := JSONRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	compareMolecules(Te, M, N, 1e-12)
}

func compareMolecules(Te *testing.T, M, N *Molecule, tol float64) {
	Te.Helper()
	if M.Len() != N.Len() {
		Te.Fatalf("atom counts differ: %d vs %d", M.Len(), N.Len())
	}
	for i := 0; i < M.Len(); i++ {
		if M.Atom(i).Symbol != N.Atom(i).Symbol {
			Te.Errorf("atom %d: symbol %s vs %s", i, M.Atom(i).Symbol, N.Atom(i).Symbol)
		}
		for k := 0; k < 3; k++ {
			if math.Abs(M.Coords.At(i, k)-N.Coords.At(i, k)) > tol {
				Te.Errorf("atom %d coordinate %d: %g vs %g", i, k, M.Coords.At(i, k), N.Coords.At(i, k))
			}
		}
	}
}

func TestSetCalc(Te *testing.T) {
	M, err := Reference("H2")
	if err != nil {
		Te.Fatal(err)
	}
	a := fakeCalc{1}
	b := fakeCalc{2}
	if err := M.SetCalc(a); err != nil {
		Te.Fatal(err)
	}
	if err := M.SetCalc(a); err != nil {
		Te.Error("re-attaching the same calculator should be a no-op")
	}
	if err := M.SetCalc(b); err == nil {
		Te.Error("attaching a second calculator should fail")
	}
	if M.Calc() != Calculator(a) {
		Te.Error("the original calculator should still be attached")
	}
}

type fakeCalc struct{ id int }

func (f fakeCalc) Energy() (float64, error)   { return 0, nil }
func (f fakeCalc) Forces() (*mat.Dense, error) { return nil, nil }
