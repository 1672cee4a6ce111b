/*
 * templates.go, part of gopw.
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//ErrUnknownReference is returned by Reference when the identifier does
//not name any structure in the registry.
var ErrUnknownReference = errors.New("mol: unknown reference structure")

//A reference entry holds the experimental gas-phase geometry for a small
//molecule, plus its multiplicity (unpaired electrons). Coordinates in
//Angstrom.
type template struct {
	symbols  []string
	coords   []float64
	unpaired int
}

//Experimental equilibrium geometries. Diatomic distances from Huber &
//Herzberg; polyatomics from the CCCBDB experimental tables.
var references = map[string]template{
	"H2O": {
		symbols: []string{"O", "H", "H"},
		coords: []float64{
			0.000000, 0.000000, 0.119262,
			0.000000, 0.763239, -0.477047,
			0.000000, -0.763239, -0.477047,
		},
	},
	"H2": {
		symbols: []string{"H", "H"},
		coords: []float64{
			0.0, 0.0, 0.370600,
			0.0, 0.0, -0.370600,
		},
	},
	"O2": {
		symbols: []string{"O", "O"},
		coords: []float64{
			0.0, 0.0, 0.604000,
			0.0, 0.0, -0.604000,
		},
		unpaired: 2, //triplet ground state
	},
	"N2": {
		symbols: []string{"N", "N"},
		coords: []float64{
			0.0, 0.0, 0.548850,
			0.0, 0.0, -0.548850,
		},
	},
	"CO": {
		symbols: []string{"C", "O"},
		coords: []float64{
			0.0, 0.0, -0.644607,
			0.0, 0.0, 0.483693,
		},
	},
	"CO2": {
		symbols: []string{"O", "C", "O"},
		coords: []float64{
			0.0, 0.0, 1.162100,
			0.0, 0.0, 0.000000,
			0.0, 0.0, -1.162100,
		},
	},
	"NH3": {
		symbols: []string{"N", "H", "H", "H"},
		coords: []float64{
			0.000000, 0.000000, 0.116489,
			0.000000, 0.939731, -0.271808,
			0.813831, -0.469865, -0.271808,
			-0.813831, -0.469865, -0.271808,
		},
	},
	"CH4": {
		symbols: []string{"C", "H", "H", "H", "H"},
		coords: []float64{
			0.000000, 0.000000, 0.000000,
			0.629118, 0.629118, 0.629118,
			0.629118, -0.629118, -0.629118,
			-0.629118, 0.629118, -0.629118,
			-0.629118, -0.629118, 0.629118,
		},
	},
}

//Reference resolves an identifier to a fully-populated Molecule with the
//registered gas-phase geometry. The returned molecule has no calculator
//attached. It returns an error wrapping ErrUnknownReference if the
//identifier is not in the registry.
func Reference(identifier string) (*Molecule, error) {
	t, ok := references[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReference, identifier)
	}
	ats := make([]*Atom, len(t.symbols))
	for i, s := range t.symbols {
		ats[i] = &Atom{Symbol: s, Mass: symbolMass[s]}
	}
	coords := mat.NewDense(len(t.symbols), 3, append([]float64{}, t.coords...))
	return New(ats, coords, 0, t.unpaired)
}

//References returns the identifiers known to the registry. Mostly for
//error messages and tests.
func References() []string {
	ret := make([]string, 0, len(references))
	for k := range references {
		ret = append(ret, k)
	}
	return ret
}
