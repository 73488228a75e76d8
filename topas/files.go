/*
 * files.go, part of celltab.
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

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

//ReadFile reads a whole refinement output into memory. Files ending in
//.gz are gunzipped and files ending in .zst or .zstd are zstd-decompressed.
//A byte order mark, if present, selects between UTF-8 and UTF-16;
//otherwise the file is taken as UTF-8.
func ReadFile(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", fileError(name, "can't open file: %v", err)
	}
	defer f.Close()
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case ".zst", ".zstd":
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return d.IOReadCloser(), nil
		}
	default:
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return io.NopCloser(a), nil }
	}
	dec, err := AnyNewReader(bufio.NewReader(f))
	if err != nil {
		return "", fileError(name, "can't decompress: %v", err)
	}
	defer dec.Close()
	text := transform.NewReader(dec, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	b, err := io.ReadAll(text)
	if err != nil {
		return "", fileError(name, "can't read: %v", err)
	}
	return string(b), nil
}

func fileError(name, format string, args ...any) *Error {
	e := newError(MalformedInput, name, FieldFilename, format, args...)
	e.critical = true
	e.Decorate("ReadFile")
	return &e
}
