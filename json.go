/*
 * json.go, part of gopw.
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
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

//A ready-to-serialize container for a structure. Coordinates are stored
//flat, row-major, 3 per atom.
type jsonMolecule struct {
	Symbols  []string  `json:"symbols"`
	Coords   []float64 `json:"coords"`
	Charge   int       `json:"charge"`
	Unpaired int       `json:"unpaired"`
}

//JSONWrite serializes the molecule M to the file named name. The format
//is meant for interoperation with scripting environments, not for
//archival.
func JSONWrite(name string, M *Molecule) error {
	if M == nil || M.Coords == nil {
		return fmt.Errorf("mol: attempted to serialize a nil or coordinate-less molecule")
	}
	j := jsonMolecule{Charge: M.charge, Unpaired: M.unpaired}
	j.Symbols = make([]string, M.Len())
	j.Coords = make([]float64, 0, M.Len()*3)
	for i, v := range M.Atoms {
		j.Symbols[i] = v.Symbol
		j.Coords = append(j.Coords, M.Coords.At(i, 0), M.Coords.At(i, 1), M.Coords.At(i, 2))
	}
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	return enc.Encode(j)
}

//JSONRead deserializes a molecule written by JSONWrite.
func JSONRead(name string) (*Molecule, error) {
	in, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	j := new(jsonMolecule)
	if err := json.NewDecoder(in).Decode(j); err != nil {
		return nil, err
	}
	if len(j.Coords) != len(j.Symbols)*3 {
		return nil, fmt.Errorf("mol: inconsistent JSON structure in %s", name)
	}
	ats := make([]*Atom, len(j.Symbols))
	for i, s := range j.Symbols {
		ats[i] = &Atom{Symbol: s, Mass: symbolMass[s]}
	}
	return New(ats, mat.NewDense(len(ats), 3, j.Coords), j.Charge, j.Unpaired)
}
