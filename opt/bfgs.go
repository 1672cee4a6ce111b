/*
 * bfgs.go, part of gopw.
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

//Package opt relaxes molecular geometries. The optimizer queries the
//calculator attached to the molecule for energies and forces, mutates
//the coordinates in place, and appends every visited geometry to a
//trajectory store.
package opt

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	mol "github.com/molspace/gopw"
	"github.com/molspace/gopw/traj"
)

var (
	//ErrNoCalculator reports an optimization attempt on a molecule with
	//no calculator attached.
	ErrNoCalculator = errors.New("opt: molecule has no calculator attached")
	//ErrNotConverged reports step-budget exhaustion. The molecule keeps
	//the best-effort geometry of the last step.
	ErrNotConverged = errors.New("opt: not converged within the step budget")
)

//BFGS is a quasi-Newton geometry minimizer with the usual inverse-
//Hessian update. The zero value is not usable; set at least Ftol.
type BFGS struct {
	Ftol     float64 //convergence threshold on the max atomic force, eV/A
	Steps    int     //step budget, default 200
	MaxMove  float64 //per-atom displacement cap per step, default 0.2 A
	TrajPath string  //trajectory store target; empty disables the store
}

//Result reports how a relaxation went. Energies holds the total energy
//at every visited geometry, in order; it is what convergence reports
//plot.
type Result struct {
	Steps     int
	Converged bool
	Fmax      float64 //max atomic force at the final geometry
	Energies  []float64
}

//Run relaxes M in place until the maximum atomic force drops below
//B.Ftol or the step budget runs out. In the latter case the returned
//error wraps ErrNotConverged and M keeps the last geometry visited.
func (B *BFGS) Run(M *mol.Molecule) (*Result, error) {
	if M == nil {
		return nil, fmt.Errorf("opt: nil molecule")
	}
	calc := M.Calc()
	if calc == nil {
		return nil, ErrNoCalculator
	}
	if B.Ftol <= 0 {
		return nil, fmt.Errorf("opt: force tolerance must be positive, got %g", B.Ftol)
	}
	steps := B.Steps
	if steps == 0 {
		steps = 200
	}
	maxmove := B.MaxMove
	if maxmove == 0 {
		maxmove = 0.2
	}
	var tw *traj.Writer
	if B.TrajPath != "" {
		var err error
		tw, err = traj.NewWriter(B.TrajPath, M.Len())
		if err != nil {
			return nil, fmt.Errorf("opt: %w", err)
		}
		defer tw.Close()
	}
	n3 := M.Len() * 3
	//inverse Hessian, started as a scaled identity (70 eV/A^2 curvature
	//guess, reasonable for covalent bonds)
	hinv := mat.NewDense(n3, n3, nil)
	for i := 0; i < n3; i++ {
		hinv.Set(i, i, 1.0/70.0)
	}
	var x0, g0 *mat.VecDense
	res := new(Result)
	for it := 0; it <= steps; it++ {
		f, err := calc.Forces()
		if err != nil {
			return res, fmt.Errorf("opt: force evaluation failed: %w", err)
		}
		e, err := calc.Energy()
		if err != nil {
			return res, fmt.Errorf("opt: energy evaluation failed: %w", err)
		}
		res.Energies = append(res.Energies, e)
		if tw != nil {
			if err := tw.WNext(M.Coords); err != nil {
				return res, fmt.Errorf("opt: %w", err)
			}
		}
		res.Fmax = fmax(f)
		if res.Fmax < B.Ftol {
			res.Converged = true
			return res, nil
		}
		if it == steps {
			break
		}
		x := flatten(M.Coords)
		g := mat.NewVecDense(n3, nil)
		for i := 0; i < M.Len(); i++ {
			for k := 0; k < 3; k++ {
				g.SetVec(i*3+k, -f.At(i, k)) //gradient is minus the force
			}
		}
		if x0 != nil {
			update(hinv, x, x0, g, g0)
		}
		p := mat.NewVecDense(n3, nil)
		p.MulVec(hinv, g)
		p.ScaleVec(-1, p)
		capStep(p, M.Len(), maxmove)
		for i := 0; i < M.Len(); i++ {
			for k := 0; k < 3; k++ {
				M.Coords.Set(i, k, M.Coords.At(i, k)+p.AtVec(i*3+k))
			}
		}
		x0, g0 = x, g
		res.Steps++
	}
	return res, fmt.Errorf("%w: fmax %.4f after %d steps", ErrNotConverged, res.Fmax, res.Steps)
}

//update applies the BFGS inverse-Hessian update for the displacement
//x-x0 and gradient change g-g0. Skipped when the curvature condition
//fails, which keeps the approximation positive definite.
func update(hinv *mat.Dense, x, x0, g, g0 *mat.VecDense) {
	n3 := x.Len()
	s := mat.NewVecDense(n3, nil)
	s.SubVec(x, x0)
	y := mat.NewVecDense(n3, nil)
	y.SubVec(g, g0)
	sy := mat.Dot(s, y)
	if sy <= 1e-12 {
		return
	}
	rho := 1.0 / sy
	u := mat.NewDense(n3, n3, nil)
	u.Outer(-rho, s, y)
	for i := 0; i < n3; i++ {
		u.Set(i, i, u.At(i, i)+1)
	}
	v := mat.NewDense(n3, n3, nil)
	v.Outer(-rho, y, s)
	for i := 0; i < n3; i++ {
		v.Set(i, i, v.At(i, i)+1)
	}
	hv := new(mat.Dense)
	hv.Mul(hinv, v)
	uhv := new(mat.Dense)
	uhv.Mul(u, hv)
	ss := mat.NewDense(n3, n3, nil)
	ss.Outer(rho, s, s)
	uhv.Add(uhv, ss)
	hinv.Copy(uhv)
}

//fmax returns the maximum per-atom force magnitude of an N x 3 force
//matrix.
func fmax(f *mat.Dense) float64 {
	r, _ := f.Dims()
	max := 0.0
	for i := 0; i < r; i++ {
		m := math.Sqrt(f.At(i, 0)*f.At(i, 0) + f.At(i, 1)*f.At(i, 1) + f.At(i, 2)*f.At(i, 2))
		if m > max {
			max = m
		}
	}
	return max
}

//capStep rescales the step so no atom moves more than maxmove.
func capStep(p *mat.VecDense, natoms int, maxmove float64) {
	longest := 0.0
	for i := 0; i < natoms; i++ {
		d := math.Sqrt(p.AtVec(i*3)*p.AtVec(i*3) + p.AtVec(i*3+1)*p.AtVec(i*3+1) + p.AtVec(i*3+2)*p.AtVec(i*3+2))
		if d > longest {
			longest = d
		}
	}
	if longest > maxmove {
		p.ScaleVec(maxmove/longest, p)
	}
}

func flatten(c *mat.Dense) *mat.VecDense {
	r, _ := c.Dims()
	v := mat.NewVecDense(r*3, nil)
	for i := 0; i < r; i++ {
		for k := 0; k < 3; k++ {
			v.SetVec(i*3+k, c.At(i, k))
		}
	}
	return v
}
