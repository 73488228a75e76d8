/*
 * catalog.go, part of celltab.
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
	"sort"
	"strings"
	"unicode"
)

//Row is one line of a reference table. Aliases holds one or more
//symbols separated by semicolons, all of which name the same group.
type Row struct {
	Aliases string `yaml:"aliases"`
	System  string `yaml:"system"`
	Display string `yaml:"display,omitempty"`
}

//Entry is what the catalog knows about a space group.
type Entry struct {
	Symbol  string //the first alias of the row, as written in the table
	System  System
	Display string //markup fragment used by the rendering stage
}

//Catalog maps space-group symbols to their entries. It is never
//modified after New returns, so it can be shared freely.
type Catalog struct {
	entries map[string]Entry
}

//New builds a catalog from the given rows. Rows without a display form
//get one from Markup. An alias that appears twice with different
//crystal systems is an error.
func New(rows []Row) (*Catalog, error) {
	C := &Catalog{entries: make(map[string]Entry, len(rows)*2)}
	for i, r := range rows {
		sys, err := ParseSystem(r.System)
		if err != nil {
			return nil, fmt.Errorf("spacegroup: row %d (%q): %w", i, r.Aliases, err)
		}
		aliases := splitAliases(r.Aliases)
		if len(aliases) == 0 {
			return nil, fmt.Errorf("spacegroup: row %d has no symbol", i)
		}
		e := Entry{Symbol: aliases[0], System: sys, Display: strings.TrimSpace(r.Display)}
		if e.Display == "" {
			e.Display = Markup(e.Symbol)
		}
		for _, a := range aliases {
			key := strings.ToLower(a)
			if prev, ok := C.entries[key]; ok && prev.System != sys {
				return nil, fmt.Errorf("spacegroup: alias %q given as both %s and %s", a, prev.System, sys)
			}
			C.entries[key] = e
		}
	}
	return C, nil
}

func splitAliases(s string) []string {
	var ret []string
	for _, a := range strings.Split(s, ";") {
		a = strings.TrimSpace(a)
		if a != "" {
			ret = append(ret, a)
		}
	}
	return ret
}

//LookupError is returned by Lookup when a symbol is not in the catalog.
type LookupError struct {
	Symbol string
}

func (err *LookupError) Error() string {
	return fmt.Sprintf("spacegroup: %q not in catalog", err.Symbol)
}

//Lookup returns the entry for symbol. The match is exact except for
//case and surrounding spaces.
func (C *Catalog) Lookup(symbol string) (Entry, error) {
	e, ok := C.entries[strings.ToLower(strings.TrimSpace(symbol))]
	if !ok {
		return Entry{}, &LookupError{Symbol: symbol}
	}
	return e, nil
}

//Len returns the number of aliases in the catalog.
func (C *Catalog) Len() int {
	return len(C.entries)
}

//Symbols returns all the (lower-cased) aliases, sorted.
func (C *Catalog) Symbols() []string {
	ret := make([]string, 0, len(C.entries))
	for k := range C.entries {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Markup returns a basic HTML rendering of a Hermann-Mauguin symbol:
//letters in italics and rotoinversion axes overlined. Screw axes are
//left as plain digits, use a reference table for full markup.
func Markup(symbol string) string {
	var b strings.Builder
	r := []rune(strings.TrimSpace(symbol))
	for i := 0; i < len(r); i++ {
		c := r[i]
		switch {
		case c == '-' && i+1 < len(r) && unicode.IsDigit(r[i+1]):
			fmt.Fprintf(&b, `<span style="text-decoration: overline">%c</span>`, r[i+1])
			i++
		case unicode.IsLetter(c):
			fmt.Fprintf(&b, "<i>%c</i>", c)
		case unicode.IsSpace(c):
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
