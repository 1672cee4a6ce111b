/*
 * doc.go, part of gopw.
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

//Package qc configures and drives electronic-structure calculations. A
//calculator is configured once, attached to exactly one molecule, and
//then queried for energies, forces and derived quantities; its full
//internal state can be checkpointed to disk and restored without
//recomputation. The package ships an in-process reference engine (PW);
//drivers for external programs can implement the same interfaces.
package qc
