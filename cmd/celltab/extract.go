/*
 * extract.go, part of celltab.
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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/celltab/fitplot"
	"github.com/rmera/celltab/recstore"
	"github.com/rmera/celltab/spacegroup"
	"github.com/rmera/celltab/topas"
)

//expandArgs expands the glob patterns in args. Arguments without glob
//characters are kept as they are, so a missing file shows up as an
//error for that file. A pattern matching nothing is an error. Repeated
//paths are only kept once.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			add(arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}

//loadCatalog returns the catalog in path, or the built-in one if path
//is empty.
func loadCatalog(path string) (*spacegroup.Catalog, error) {
	if path == "" {
		return spacegroup.Default(), nil
	}
	cat, err := spacegroup.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

//display returns the records as they are written out: rounded unless raw
//is set. Problems found while rounding are logged.
func display(recs []topas.Record, raw bool, log *zap.Logger) []topas.Record {
	if raw {
		return recs
	}
	ret := make([]topas.Record, len(recs))
	for i, r := range recs {
		ret[i] = r.Rounded()
		for _, d := range ret[i].Diagnostics[len(r.Diagnostics):] {
			log.Warn(d.Message(),
				zap.String("file", d.FileName()),
				zap.String("field", string(d.Field())),
				zap.Stringer("kind", d.Kind()))
		}
	}
	return ret
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := a.config(cmd)
	if err != nil {
		return err
	}
	paths, err := expandArgs(args)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	x := topas.NewExtractor(cat, topas.WithLogger(a.log), topas.WithVolumeTolerance(cfg.VolumeTolerance))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.log.Info("extracting", zap.Int("files", len(paths)), zap.Int("workers", cfg.Workers))
	start := time.Now()
	recs, errs := x.ProcessFiles(ctx, paths, cfg.Workers)
	elapsed := time.Since(start)

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			a.log.Error("file not processed", zap.String("file", paths[i]), zap.Error(err))
		}
	}
	out := display(recs, cfg.Raw, a.log)

	if cfg.DB != "" {
		if err := storeRecords(ctx, cfg.DB, recs); err != nil {
			return err
		}
		a.log.Info("records stored", zap.String("db", cfg.DB), zap.Int("records", len(recs)))
	}
	if cfg.Plot != "" {
		if err := fitplot.Save(recs, "Fit statistics", cfg.Plot); err != nil {
			return err
		}
	}
	if err := writeOutput(cmd, cfg, out); err != nil {
		return err
	}
	if cfg.MetricsFile != "" {
		m := newBatchMetrics()
		m.observe(out, errs, elapsed)
		if err := m.write(cfg.MetricsFile); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("extraction interrupted: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be processed", failed, len(paths))
	}
	return nil
}

func storeRecords(ctx context.Context, path string, recs []topas.Record) (err error) {
	s, err := recstore.Open(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.Close()) }()
	return s.PutAll(ctx, recs)
}

func (a *app) runStored(cmd *cobra.Command, args []string) error {
	cfg, err := a.config(cmd)
	if err != nil {
		return err
	}
	if cfg.DB == "" {
		return fmt.Errorf("no database given, use --db or CELLTAB_DB")
	}
	s, err := recstore.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer s.Close()
	recs, err := s.All(cmd.Context())
	if err != nil {
		return err
	}
	return writeOutput(cmd, cfg, display(recs, cfg.Raw, a.log))
}
