/*
 * errors.go, part of celltab.
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

package topas

import "fmt"

//Kind classifies the problems found while extracting a record.
type Kind int

const (
	FieldNotFound Kind = iota + 1
	CatalogLookupFailure
	UnimplementedNotation
	LimitPinnedValue
	MalformedInput
	VolumeMismatch
)

var kindNames = [...]string{
	FieldNotFound:         "field not found",
	CatalogLookupFailure:  "catalog lookup failure",
	UnimplementedNotation: "unimplemented notation",
	LimitPinnedValue:      "limit-pinned value",
	MalformedInput:        "malformed input",
	VolumeMismatch:        "volume mismatch",
}

func (k Kind) String() string {
	if k < FieldNotFound || k > VolumeMismatch {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

//Error is the error type of this package. Non-critical errors are
//attached to records as diagnostics, critical ones are returned and mean
//that the file is not a well-formed refinement output.
type Error struct {
	message  string
	filename string //the input file that has problems
	field    Field
	kind     Kind
	deco     []string
	critical bool
}

func newError(kind Kind, filename string, field Field, format string, args ...any) Error {
	return Error{message: fmt.Sprintf(format, args...), filename: filename, field: field, kind: kind}
}

func (err Error) Error() string {
	return fmt.Sprintf("topas output %s, %s: %s", err.filename, err.field, err.message)
}

//Decorate adds the name of a caller (and, optionally, some information
//in the form "Function: info") to the error, and returns the trail. An
//empty string only returns the trail.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Field() Field { return err.field }

func (err Error) Kind() Kind { return err.kind }

func (err Error) Message() string { return err.message }

//Critical is true when the whole file has to be considered malformed.
func (err Error) Critical() bool { return err.critical }

//errDecorate decorates err with the caller's name if it is one of
//our errors, and returns it.
func errDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
