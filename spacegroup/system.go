/*
 * system.go, part of celltab.
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

package spacegroup

import (
	"fmt"
	"strings"
)

//System is one of the crystal systems a space group can belong to.
//The zero value is not a valid system.
type System int

const (
	Triclinic System = iota + 1
	Monoclinic
	Orthorhombic
	Tetragonal
	Hexagonal
	Cubic
	Rhombohedral
	Trigonal
)

//Systems lists every valid System, in the order of the constants.
var Systems = []System{Triclinic, Monoclinic, Orthorhombic, Tetragonal, Hexagonal, Cubic, Rhombohedral, Trigonal}

var systemNames = [...]string{
	Triclinic:    "triclinic",
	Monoclinic:   "monoclinic",
	Orthorhombic: "orthorhombic",
	Tetragonal:   "tetragonal",
	Hexagonal:    "hexagonal",
	Cubic:        "cubic",
	Rhombohedral: "rhombohedral",
	Trigonal:     "trigonal",
}

//String returns the lower-case name of the system, which is also
//the form used in Records.
func (s System) String() string {
	if !s.Valid() {
		return fmt.Sprintf("System(%d)", int(s))
	}
	return systemNames[s]
}

//Valid returns true if s is one of the defined systems.
func (s System) Valid() bool {
	return s >= Triclinic && s <= Trigonal
}

//ParseSystem returns the System with the given name. The comparison
//ignores case and surrounding spaces.
func ParseSystem(name string) (System, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Systems {
		if systemNames[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("spacegroup: unknown crystal system %q", name)
}

//MarshalText implements encoding.TextMarshaler.
func (s System) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("spacegroup: invalid crystal system %d", int(s))
	}
	return []byte(s.String()), nil
}

//UnmarshalText implements encoding.TextUnmarshaler.
func (s *System) UnmarshalText(b []byte) error {
	v, err := ParseSystem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
