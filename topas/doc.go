/*
 * doc.go, part of celltab.
 *
 * Copyright 2026 The celltab authors
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
 */

//Package topas extracts refined crystallographic parameters from the
//text output of the TOPAS refinement program.
//
//Each field is looked for with an ordered list of patterns, strictest
//first, and the first one that matches wins. Lengths and angles that were
//not found directly are completed with the constraints of the crystal
//system (obtained from the space group through a spacegroup.Catalog) or,
//when the file gives the cell through a lattice macro such as
//Cubic(@ 5.43), derived from it. The result is a Record where every field
//has a value or the NotFound marker:
//
//	x := topas.NewExtractor(spacegroup.Default())
//	rec, err := x.Assemble("sample.out", text)
//	row := rec.Rounded().Values()
package topas
