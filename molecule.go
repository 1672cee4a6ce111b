/*
 * molecule.go, part of gopw.
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Atom contains the per-atom information that is not expected to change
//during a calculation. Coordinates are kept separately, in a matrix.
type Atom struct {
	Symbol string
	Mass   float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	return &Atom{Symbol: A.Symbol, Mass: A.Mass}
}

//Calculator is the narrow view of a configured electronic-structure
//engine that a Molecule can carry. The concrete implementations live in
//the qc subpackage; mol only needs to hold and hand back the binding.
type Calculator interface {
	Energy() (float64, error)
	Forces() (*mat.Dense, error)
}

//Molecule contains the atoms of a structure, their Cartesian coordinates
//in Angstrom (an N x 3 matrix) and, optionally, a calculator bound to the
//structure. The coordinates are mutated in place by geometry optimization;
//everything else stays fixed after construction.
type Molecule struct {
	Atoms    []*Atom
	Coords   *mat.Dense
	Cell     [3]float64 //box lengths, zero for an isolated molecule
	charge   int
	unpaired int
	calc     Calculator
}

//New makes a molecule from atoms and coordinates and returns it. It
//returns an error if either slice is nil or their lengths are
//inconsistent.
func New(ats []*Atom, coords *mat.Dense, charge, unpaired int) (*Molecule, error) {
	if ats == nil {
		return nil, fmt.Errorf("mol: supplied a nil atom slice")
	}
	if coords == nil {
		return nil, fmt.Errorf("mol: supplied nil coordinates")
	}
	r, c := coords.Dims()
	if c != 3 {
		return nil, fmt.Errorf("mol: malformed coordinate matrix: %d columns", c)
	}
	if r != len(ats) {
		return nil, fmt.Errorf("mol: inconsistent coordinates/atoms: atoms %d, coords %d", len(ats), r)
	}
	M := &Molecule{Atoms: ats, Coords: coords, charge: charge, unpaired: unpaired}
	return M, nil
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//Atom returns the Atom corresponding to the index i. Panics if out of
//range, as asking for a non-existent atom means the caller is already
//wrong.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() {
		panic("Molecule: requested Atom out of bounds")
	}
	return M.Atoms[i]
}

//Charge gets the total charge of the molecule.
func (M *Molecule) Charge() int {
	return M.charge
}

//Multi returns the multiplicity of the molecule.
func (M *Molecule) Multi() int {
	return M.unpaired + 1
}

//SetCalc binds the calculator c to the molecule. A molecule carries at
//most one binding for its whole life: attaching a second, different
//calculator is an error, so no caller can silently shadow the engine
//another part of the calculation is using. Re-attaching the same binding
//is a no-op.
func (M *Molecule) SetCalc(c Calculator) error {
	if c == nil {
		return fmt.Errorf("mol: attempted to attach a nil calculator")
	}
	if M.calc != nil && M.calc != c {
		return fmt.Errorf("mol: molecule already has a calculator attached")
	}
	M.calc = c
	return nil
}

//Calc returns the calculator bound to the molecule, or nil if none has
//been attached.
func (M *Molecule) Calc() Calculator {
	return M.calc
}

//Copy returns a copy of the molecule including coordinates. The
//calculator binding is not copied: a binding belongs to exactly one
//molecule.
func (M *Molecule) Copy() *Molecule {
	ats := make([]*Atom, M.Len())
	for i, v := range M.Atoms {
		ats[i] = v.Copy()
	}
	coords := mat.DenseCopyOf(M.Coords)
	N := &Molecule{Atoms: ats, Coords: coords, Cell: M.Cell, charge: M.charge, unpaired: M.unpaired}
	return N
}

//Coord returns the x,y,z coordinates of atom i as a slice. Panics if out
//of range.
func (M *Molecule) Coord(i int) []float64 {
	if i >= M.Len() {
		panic("Molecule: requested coordinate out of bounds")
	}
	return []float64{M.Coords.At(i, 0), M.Coords.At(i, 1), M.Coords.At(i, 2)}
}
