/*
 * traj.go, part of gopw.
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

//Package traj implements the append-only trajectory store used during
//geometry optimization: every visited geometry is one frame. Frames are
//fixed-point encoded and zstd-compressed; the format is line-oriented,
//one coordinate triple per line, with a '*' line terminating each frame.
package traj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

//ErrLastFrame reports the normal end of a trajectory. It is the only
//harmless error a Reader returns, so callers can filter it with
//errors.Is.
var ErrLastFrame = errors.New("traj: no more frames")

const defaultPrec = 4 //decimals kept by the fixed-point encoding

//Writer appends frames to a trajectory file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//NewWriter creates the trajectory file name for natoms atoms per frame
//and returns a Writer for it.
func NewWriter(name string, natoms int) (*Writer, error) {
	if natoms <= 0 {
		return nil, fmt.Errorf("traj: need a positive atom count, got %d", natoms)
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	h, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("traj: %w", err)
	}
	W := &Writer{f: f, h: h, natoms: natoms, filename: name, writeable: true, prec: defaultPrec}
	fmt.Fprintf(W.h, "** %d %d\n", W.natoms, W.prec)
	return W, nil
}

//Len returns the number of atoms per frame.
func (W *Writer) Len() int {
	return W.natoms
}

//WNext appends one frame with the given coordinates.
func (W *Writer) WNext(coord *mat.Dense) error {
	if !W.writeable {
		return fmt.Errorf("traj: write to unopened trajectory %s", W.filename)
	}
	if coord == nil {
		return fmt.Errorf("traj: nil coordinates for %s", W.filename)
	}
	r, c := coord.Dims()
	if r != W.natoms || c != 3 {
		return fmt.Errorf("traj: %dx%d coordinates given, %dx3 expected", r, c, W.natoms)
	}
	p := math.Pow(10, float64(W.prec))
	for i := 0; i < r; i++ {
		fmt.Fprintf(W.h, "%d %d %d\n",
			int(math.RoundToEven(coord.At(i, 0)*p)),
			int(math.RoundToEven(coord.At(i, 1)*p)),
			int(math.RoundToEven(coord.At(i, 2)*p)))
	}
	_, err := W.h.Write([]byte("*\n"))
	return err
}

//Close flushes and closes the trajectory. The Writer can not be used
//afterwards. Safe to call on a nil or already-closed Writer.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

//Reader reads frames back from a trajectory file.
type Reader struct {
	f        *os.File
	zr       *zstd.Decoder
	h        *bufio.Scanner
	natoms   int
	prec     int
	filename string
	readable bool
}

//NewReader opens a trajectory written by Writer.
func NewReader(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	zr, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("traj: %w", err)
	}
	R := &Reader{f: f, zr: zr, h: bufio.NewScanner(zr), filename: name}
	if !R.h.Scan() {
		R.Close()
		return nil, fmt.Errorf("traj: %s has no header", name)
	}
	fields := strings.Fields(R.h.Text())
	if len(fields) != 3 || fields[0] != "**" {
		R.Close()
		return nil, fmt.Errorf("traj: malformed header in %s", name)
	}
	if R.natoms, err = strconv.Atoi(fields[1]); err != nil {
		R.Close()
		return nil, fmt.Errorf("traj: malformed header in %s", name)
	}
	if R.prec, err = strconv.Atoi(fields[2]); err != nil {
		R.Close()
		return nil, fmt.Errorf("traj: malformed header in %s", name)
	}
	R.readable = true
	return R, nil
}

//Len returns the number of atoms per frame.
func (R *Reader) Len() int {
	return R.natoms
}

//Next reads the next frame into a newly allocated matrix. It returns
//ErrLastFrame (wrapped) when the trajectory is exhausted.
func (R *Reader) Next() (*mat.Dense, error) {
	if !R.readable {
		return nil, fmt.Errorf("traj: read from unopened trajectory %s", R.filename)
	}
	p := math.Pow(10, float64(R.prec))
	data := make([]float64, R.natoms*3)
	for i := 0; i < R.natoms; i++ {
		if !R.h.Scan() {
			if i == 0 {
				return nil, fmt.Errorf("%w: %s", ErrLastFrame, R.filename)
			}
			return nil, fmt.Errorf("traj: truncated frame in %s", R.filename)
		}
		fields := strings.Fields(R.h.Text())
		if len(fields) != 3 {
			return nil, fmt.Errorf("traj: malformed line %q in %s", R.h.Text(), R.filename)
		}
		for j, fl := range fields {
			v, err := strconv.Atoi(fl)
			if err != nil {
				return nil, fmt.Errorf("traj: malformed line %q in %s", R.h.Text(), R.filename)
			}
			data[i*3+j] = float64(v) / p
		}
	}
	if !R.h.Scan() || !strings.HasPrefix(R.h.Text(), "*") {
		return nil, fmt.Errorf("traj: missing frame terminator in %s", R.filename)
	}
	return mat.NewDense(R.natoms, 3, data), nil
}

//Close closes the trajectory. The Reader can not be used afterwards.
func (R *Reader) Close() {
	if R == nil {
		return
	}
	if R.zr != nil {
		R.zr.Close()
	}
	if R.f != nil {
		R.f.Close()
	}
	R.readable = false
}
