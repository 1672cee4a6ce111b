/*
 * pw.go, part of gopw.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	mol "github.com/molspace/gopw"
)

//Potential parameters for the reference engine. A Morse well between
//bonded pairs, a short-range exponential repulsion between the rest.
const (
	morseDepth  = 4.48 //eV
	morseWidth  = 1.8  //1/A
	repStrength = 2.0  //eV
	repRange    = 0.33 //A
	bondFactor  = 1.25 //bond cutoff, in units of the covalent-radii sum
)

type pair struct {
	i, j   int
	bonded bool
	r0     float64 //equilibrium distance for bonded pairs
}

//PW is the in-process reference engine. It is configured once through
//New, attached to exactly one molecule, and immutable afterwards: no
//method reconfigures a live engine.
type PW struct {
	opts   Options
	mol    *mol.Molecule
	pairs  []pair
	nprocs int

	trace  *bufio.Writer
	tracef *os.File

	closed   bool
	restored bool //state came from a checkpoint; cached results are served as-is
	haveE    bool
	lastE    float64
	eigs     []float64
	nocc     int
}

//New validates the option record and returns a configured engine. The
//returned binding is meant to be attached to exactly one molecule.
func New(opts Options) (*PW, error) {
	if opts.Cutoff <= 0 {
		return nil, Error{fmt.Sprintf("%s: cutoff must be positive, got %g", ErrBadOption, opts.Cutoff), "PW", []string{"New"}, true}
	}
	switch opts.XC {
	case PBE, LDA, BLYP:
	default:
		return nil, Error{fmt.Sprintf("%s: unknown exchange-correlation model %q", ErrBadOption, opts.XC), "PW", []string{"New"}, true}
	}
	for _, k := range opts.KPoints {
		if k < 1 {
			return nil, Error{fmt.Sprintf("%s: k-point grid entries must be positive, got %v", ErrBadOption, opts.KPoints), "PW", []string{"New"}, true}
		}
	}
	if opts.MaxSCF == 0 {
		opts.MaxSCF = 30
	}
	if opts.SCFTol == 0 {
		opts.SCFTol = 1e-6
	}
	P := &PW{opts: opts}
	P.nprocs = opts.Parallel["nprocs"]
	if P.nprocs < 1 {
		P.nprocs = runtime.NumCPU() / 2
	}
	if P.nprocs < 1 {
		P.nprocs = 1
	}
	var w io.Writer = io.Discard
	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: %v", ErrNoTrace, err), "PW", []string{"os.Create", "New"}, true}
		}
		P.tracef = f
		w = f
	}
	P.trace = bufio.NewWriter(w)
	fmt.Fprintf(P.trace, "gopw PW engine\ncutoff=%g eV xc=%s kpts=%dx%dx%d nprocs=%d\n",
		opts.Cutoff, opts.XC, opts.KPoints[0], opts.KPoints[1], opts.KPoints[2], P.nprocs)
	P.trace.Flush()
	return P, nil
}

//Options returns a copy of the configuration the engine was created
//with.
func (P *PW) Options() Options {
	return P.opts
}

//Attach binds the engine to M and M to the engine. An engine serves
//exactly one molecule; attaching a second one is an error. Re-attaching
//the same molecule just refreshes the pair list.
func (P *PW) Attach(M *mol.Molecule) error {
	if P.closed {
		return Error{ErrFinalized, "PW", []string{"Attach"}, true}
	}
	if M == nil {
		return Error{ErrNotAttached + ": nil molecule", "PW", []string{"Attach"}, true}
	}
	if P.mol != nil && P.mol != M {
		return Error{ErrAttached, "PW", []string{"Attach"}, true}
	}
	molecular := P.opts.KPoints == [3]int{1, 1, 1}
	if !molecular && M.Cell == [3]float64{} {
		return Error{ErrBadOption + ": k-point sampling beyond (1,1,1) requires a periodic cell", "PW", []string{"Attach"}, true}
	}
	for i := 0; i < M.Len(); i++ {
		if mol.Covrad(M.Atom(i).Symbol) == 0 {
			return Error{fmt.Sprintf("%s: %q", ErrUnknownAtom, M.Atom(i).Symbol), "PW", []string{"Attach"}, true}
		}
	}
	if err := M.SetCalc(P); err != nil {
		return Error{err.Error(), "PW", []string{"mol.SetCalc", "Attach"}, true}
	}
	P.mol = M
	P.pairs = bondPairs(M)
	P.restored = false
	P.haveE = false
	P.eigs = nil
	fmt.Fprintf(P.trace, "attached structure with %d atoms, %d pairs\n", M.Len(), len(P.pairs))
	P.trace.Flush()
	return nil
}

//bondPairs classifies every atom pair as bonded or not from the
//covalent-radii sums of the current geometry. The classification is kept
//for the life of the attachment: optimization moves atoms around their
//bonds, it does not rebond.
func bondPairs(M *mol.Molecule) []pair {
	var ps []pair
	n := M.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r0 := mol.Covrad(M.Atom(i).Symbol) + mol.Covrad(M.Atom(j).Symbol)
			r := dist(M.Coords, i, j)
			ps = append(ps, pair{i: i, j: j, bonded: r < bondFactor*r0, r0: r0})
		}
	}
	return ps
}

func dist(c *mat.Dense, i, j int) float64 {
	dx := c.At(i, 0) - c.At(j, 0)
	dy := c.At(i, 1) - c.At(j, 1)
	dz := c.At(i, 2) - c.At(j, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

//pairTerm evaluates the potential term for one pair at distance r,
//returning the energy and dE/dr.
func pairTerm(p pair, r float64) (float64, float64) {
	if p.bonded {
		u := math.Exp(-morseWidth * (r - p.r0))
		e := morseDepth*(1-u)*(1-u) - morseDepth //zero of energy at dissociation
		dedr := 2 * morseWidth * morseDepth * u * (1 - u)
		return e, dedr
	}
	e := repStrength * math.Exp(-r/repRange)
	return e, -e / repRange
}

//Energy returns the total energy, in eV, for the current geometry of the
//attached molecule. The SCF-style convergence trace goes to the
//diagnostic stream, not to the caller.
func (P *PW) Energy() (float64, error) {
	if P.closed {
		return 0, Error{ErrFinalized, "PW", []string{"Energy"}, false}
	}
	if P.restored && P.haveE {
		fmt.Fprintf(P.trace, "serving checkpointed energy %.6f eV\n", P.lastE)
		P.trace.Flush()
		return P.lastE, nil
	}
	if P.mol == nil {
		return 0, Error{ErrNotAttached, "PW", []string{"Energy"}, false}
	}
	e := 0.0
	for _, p := range P.pairs {
		et, _ := pairTerm(p, dist(P.mol.Coords, p.i, p.j))
		e += et
	}
	//the reference potential is analytic, so the self-consistency loop
	//reduces to the residual of the (fixed) density mix; it is traced the
	//way an external engine would trace it.
	res := 1.0
	for it := 1; it <= P.opts.MaxSCF; it++ {
		res *= 0.1
		fmt.Fprintf(P.trace, "SCF %3d  E=%14.6f eV  res=%9.2e\n", it, e, res)
		if res < P.opts.SCFTol {
			fmt.Fprintf(P.trace, "SCF converged after %d iterations\n", it)
			break
		}
	}
	P.trace.Flush()
	P.lastE = e
	P.haveE = true
	return e, nil
}

//Forces returns the forces, in eV/A, on each atom as an N x 3 matrix.
//The pair loop is fanned out over the worker count given by the
//"nprocs" parallelization hint.
func (P *PW) Forces() (*mat.Dense, error) {
	if P.closed {
		return nil, Error{ErrFinalized, "PW", []string{"Forces"}, false}
	}
	if P.mol == nil {
		return nil, Error{ErrNotAttached, "PW", []string{"Forces"}, false}
	}
	n := P.mol.Len()
	c := P.mol.Coords
	nw := P.nprocs
	if nw > len(P.pairs) {
		nw = len(P.pairs)
	}
	if nw < 1 {
		nw = 1
	}
	acc := make([][]float64, nw)
	var wg sync.WaitGroup
	chunk := (len(P.pairs) + nw - 1) / nw
	for w := 0; w < nw; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(P.pairs) {
			hi = len(P.pairs)
		}
		acc[w] = make([]float64, n*3)
		wg.Add(1)
		go func(ps []pair, f []float64) {
			defer wg.Done()
			for _, p := range ps {
				r := dist(c, p.i, p.j)
				_, dedr := pairTerm(p, r)
				for k := 0; k < 3; k++ {
					d := (c.At(p.i, k) - c.At(p.j, k)) / r
					f[p.i*3+k] -= dedr * d
					f[p.j*3+k] += dedr * d
				}
			}
		}(P.pairs[lo:hi], acc[w])
	}
	wg.Wait()
	total := make([]float64, n*3)
	for _, f := range acc {
		for i, v := range f {
			total[i] += v
		}
	}
	return mat.NewDense(n, 3, total), nil
}

//Close releases the resources held by the engine: the diagnostic stream
//handle and the cached electronic state. It must be the last call; a
//second Close, or any query after it, is an error.
func (P *PW) Close() error {
	if P.closed {
		return Error{ErrFinalized, "PW", []string{"Close"}, true}
	}
	fmt.Fprintf(P.trace, "engine resources released\n")
	P.trace.Flush()
	if P.tracef != nil {
		if err := P.tracef.Close(); err != nil {
			P.closed = true
			return Error{err.Error(), "PW", []string{"os.File.Close", "Close"}, true}
		}
	}
	P.closed = true
	P.eigs = nil
	return nil
}
