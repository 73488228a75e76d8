/*
 * output.go, part of celltab.
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


package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rmera/celltab/topas"
)

//writeRecords writes recs to w in the given format. CSV output has a
//header with the field names.
func writeRecords(w io.Writer, format string, recs []topas.Record) error {
	if recs == nil {
		recs = []topas.Record{}
	}
	switch format {
	case formatCSV:
		cw := csv.NewWriter(w)
		header := make([]string, len(topas.Fields))
		for i, f := range topas.Fields {
			header[i] = string(f)
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		for _, r := range recs {
			if err := cw.Write(r.Values()); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(recs); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

//writeOutput writes recs where cfg says: the output file, or the
//command's standard output.
func writeOutput(cmd *cobra.Command, cfg Config, recs []topas.Record) (err error) {
	if cfg.Output == "" {
		return writeRecords(cmd.OutOrStdout(), cfg.Format, recs)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return writeRecords(f, cfg.Format, recs)
}
