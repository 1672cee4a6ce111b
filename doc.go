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

//Package mol provides atom and molecule structures for small-molecule
//electronic-structure calculations, a registry of reference geometries,
//and reading/writing of structural file formats (XYZ, JSON). The molecule
//object can carry a configured calculator from the qc subpackage, which
//is then shared by every part of a calculation that needs energies or
//forces for the current geometry.
package mol
