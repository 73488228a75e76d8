/*
 * load.go, part of celltab.
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
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"
)

//go:embed spacegroups.yaml
var defaultTable []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	rows, err := ReadYAML(bytes.NewReader(defaultTable))
	if err != nil {
		panic("spacegroup: built-in table: " + err.Error())
	}
	C, err := New(rows)
	if err != nil {
		panic("spacegroup: built-in table: " + err.Error())
	}
	return C
})

//Default returns the catalog built from the table shipped with the package.
//It covers the seven crystal systems, with the P3 groups as trigonal.
func Default() *Catalog {
	return defaultCatalog()
}

//ReadYAML reads a reference table given as a YAML sequence of rows.
func ReadYAML(r io.Reader) ([]Row, error) {
	var rows []Row
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("spacegroup: decode yaml table: %w", err)
	}
	return rows, nil
}

//ReadHTML reads a reference table from an HTML document. Every table row
//with at least two cells is used: the first cell holds the aliases, the
//second the display markup (the contents of its first <p>, if any) and an
//optional third cell the crystal system. When the third cell is missing or
//not a crystal system, the system is taken from fallback, and rows that
//cannot be resolved that way are skipped. fallback can be nil.
func ReadHTML(r io.Reader, fallback *Catalog) ([]Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("spacegroup: parse html table: %w", err)
	}
	var rows []Row
	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			row, ok, err := htmlRow(n, fallback)
			if err != nil {
				return err
			}
			if ok {
				rows = append(rows, row)
			}
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(doc); err != nil {
		return nil, err
	}
	return rows, nil
}

func htmlRow(tr *html.Node, fallback *Catalog) (Row, bool, error) {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Td {
			cells = append(cells, c)
		}
	}
	if len(cells) < 2 {
		return Row{}, false, nil
	}
	row := Row{Aliases: strings.Join(strings.Fields(nodeText(cells[0])), " ")}
	if row.Aliases == "" {
		return Row{}, false, nil
	}
	disp := cells[1]
	if p := firstElement(disp, atom.P); p != nil {
		disp = p
	}
	inner, err := innerHTML(disp)
	if err != nil {
		return Row{}, false, err
	}
	row.Display = strings.TrimSpace(inner)
	if len(cells) > 2 {
		if s, err := ParseSystem(nodeText(cells[2])); err == nil {
			row.System = s.String()
			return row, true, nil
		}
	}
	if fallback == nil {
		return Row{}, false, nil
	}
	for _, a := range splitAliases(row.Aliases) {
		if e, err := fallback.Lookup(a); err == nil {
			row.System = e.System.String()
			return row, true, nil
		}
	}
	return Row{}, false, nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return strings.TrimSpace(b.String())
}

func firstElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
		if f := firstElement(c, a); f != nil {
			return f
		}
	}
	return nil
}

func innerHTML(n *html.Node) (string, error) {
	var b bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("spacegroup: render cell: %w", err)
		}
	}
	return b.String(), nil
}

//Load builds a catalog from a reference table file. Files ending in .htm
//or .html are read with ReadHTML, using the built-in catalog as fallback.
//Anything else is taken to be YAML.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rows []Row
	switch strings.ToLower(filepath.Ext(path)) {
	case ".htm", ".html":
		rows, err = ReadHTML(f, Default())
	default:
		rows, err = ReadYAML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spacegroup: %s: no usable rows", path)
	}
	return New(rows)
}
