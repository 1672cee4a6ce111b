/*
 * xyz.go, part of gopw.
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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//XYZRead reads an XYZ file and returns a Molecule. Only the first frame
//of a multi-XYZ file is read.
func XYZRead(xyzname string) (*Molecule, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, err
	}
	defer xyzfile.Close()
	xyz := bufio.NewReader(xyzfile)
	line, err := xyz.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("mol: ill-formatted XYZ file %s", xyzname)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, fmt.Errorf("mol: ill-formatted XYZ file %s", xyzname)
	}
	if _, err := xyz.ReadString('\n'); err != nil { //comment line
		return nil, fmt.Errorf("mol: truncated XYZ file %s", xyzname)
	}
	ats := make([]*Atom, natoms)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("mol: line %d in file %s missing", i, xyzname)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("mol: line %d in file %s ill-formed", i, xyzname)
		}
		ats[i] = &Atom{Symbol: fields[0], Mass: symbolMass[fields[0]]}
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("mol: line %d in file %s: %v", i, xyzname, err)
			}
		}
	}
	return New(ats, mat.NewDense(natoms, 3, coords), 0, 0)
}

//XYZWrite writes the molecule M to an XYZ file named xyzname, which is
//created, or overwritten if it exists. Six decimals are kept, enough to
//round-trip a geometry through XYZRead well within optimization
//tolerances.
func XYZWrite(xyzname string, M *Molecule) error {
	if M == nil || M.Coords == nil {
		return fmt.Errorf("mol: attempted to write a nil or coordinate-less molecule")
	}
	out, err := os.Create(xyzname)
	if err != nil {
		return err
	}
	defer out.Close()
	fmt.Fprintf(out, "%d\n", M.Len())
	fmt.Fprintf(out, "\n")
	for i := range M.Atoms {
		_, err = fmt.Fprintf(out, "%-2s %12.6f %12.6f %12.6f\n", M.Atoms[i].Symbol,
			M.Coords.At(i, 0), M.Coords.At(i, 1), M.Coords.At(i, 2))
		if err != nil {
			return err
		}
	}
	return nil
}
