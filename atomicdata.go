/*
 * atomicdata.go, part of gopw.
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

//A map for assigning mass to elements.
//Note that just the elements covered by the reference-geometry registry
//are present.
var symbolMass = map[string]float64{
	"H": 1.008,
	"C": 12.011,
	"O": 15.999,
	"N": 14.007,
}

//A map for assigning covalent radii to elements, in Angstrom.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J).
var symbolCovrad = map[string]float64{
	"H": 0.31,
	"C": 0.76, //the sp3 radius
	"O": 0.66,
	"N": 0.71,
}

//A map for the number of valence electrons per element.
var symbolValence = map[string]int{
	"H": 1,
	"C": 4,
	"O": 6,
	"N": 5,
}

//Mass returns the atomic mass for an element symbol, or 0 if the symbol
//is not in the table.
func Mass(symbol string) float64 {
	return symbolMass[symbol]
}

//Covrad returns the covalent radius in Angstrom for an element symbol, or
//0 if the symbol is not in the table.
func Covrad(symbol string) float64 {
	return symbolCovrad[symbol]
}

//Valence returns the number of valence electrons for an element symbol,
//or 0 if the symbol is not in the table.
func Valence(symbol string) int {
	return symbolValence[symbol]
}
