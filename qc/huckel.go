/*
 * huckel.go, part of gopw.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	mol "github.com/molspace/gopw"
)

//Site energies, in eV, for the extended-Hueckel-style orbital picture the
//reference engine uses to report gaps. Valence-orbital ionization
//energies, one site per atom.
var siteEnergy = map[string]float64{
	"H": -13.6,
	"C": -11.4,
	"N": -13.9,
	"O": -17.3,
}

//Distance-decayed coupling parameters.
const (
	couplingBeta = -2.8 //eV, at the reference distance
	couplingMu   = 1.7  //1/A, decay rate
	couplingD0   = 1.4  //A, reference distance
)

//Gap returns the HOMO-LUMO gap, in eV, for the attached molecule. The
//orbital picture is a one-site-per-atom extended-Hueckel surrogate:
//site energies on the diagonal, distance-decayed couplings off it,
//occupation from the valence electron count. Engines without this
//capability simply don't implement GapCalculator.
func (P *PW) Gap() (float64, error) {
	if P.closed {
		return 0, Error{ErrFinalized, "PW", []string{"Gap"}, false}
	}
	if P.restored && len(P.eigs) > 0 {
		return P.gapFromEigs()
	}
	if P.mol == nil {
		return 0, Error{ErrNotAttached, "PW", []string{"Gap"}, false}
	}
	n := P.mol.Len()
	if n < 2 {
		return 0, Error{"structure too small for a gap", "PW", []string{"Gap"}, false}
	}
	h := mat.NewSymDense(n, nil)
	nelec := -P.mol.Charge()
	for i := 0; i < n; i++ {
		s := P.mol.Atom(i).Symbol
		h.SetSym(i, i, siteEnergy[s])
		nelec += mol.Valence(s)
		for j := i + 1; j < n; j++ {
			r := dist(P.mol.Coords, i, j)
			h.SetSym(i, j, couplingBeta*math.Exp(-couplingMu*(r-couplingD0)))
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(h, false); !ok {
		return 0, Error{"orbital eigendecomposition failed", "PW", []string{"mat.EigenSym.Factorize", "Gap"}, false}
	}
	P.eigs = eig.Values(nil) //ascending
	P.nocc = nelec / 2
	if P.nocc < 1 {
		P.nocc = 1
	}
	if P.nocc > n-1 {
		P.nocc = n - 1
	}
	g, err := P.gapFromEigs()
	if err == nil {
		fmt.Fprintf(P.trace, "orbital gap %.6f eV (%d occupied of %d)\n", g, P.nocc, n)
		P.trace.Flush()
	}
	return g, err
}

func (P *PW) gapFromEigs() (float64, error) {
	if P.nocc < 1 || P.nocc >= len(P.eigs) {
		return 0, Error{"no virtual orbital to report a gap against", "PW", []string{"Gap"}, false}
	}
	return P.eigs[P.nocc] - P.eigs[P.nocc-1], nil
}
