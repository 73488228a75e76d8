/*
 * main.go, part of celltab.
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


//Command celltab extracts the refined cell, space group and fit
//statistics from TOPAS output files and tabulates them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rmera/celltab/topas"
)

//app is the state shared by the commands of one invocation.
type app struct {
	flags   flagValues
	verbose bool
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "celltab",
		Short: "Tabulate refined cell parameters from TOPAS outputs",
		Long: `celltab reads TOPAS refinement outputs (.out, optionally gzip or zstd
compressed) and writes one row per file with the space group, crystal
system, cell lengths and angles, volume, Rwp, Rexp and GOF.

Values are written in crystallographic notation, e.g. 12.3456(7), unless
--raw is given. Cell parameters that the crystal system fixes are filled
in, and "Not found" marks whatever could not be determined.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	f := &a.flags
	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&f.config, "config", "", "YAML configuration file")
	pf.StringVar(&f.catalog, "catalog", "", "Space-group table (YAML or HTML); the built-in one by default")
	pf.StringVarP(&f.format, "format", "f", formatCSV, "Output format: csv, json or yaml")
	pf.StringVarP(&f.output, "output", "o", "", "Output file (default: standard output)")
	pf.BoolVar(&f.raw, "raw", false, "Write values as found, without rounding")
	pf.StringVar(&f.db, "db", "", "SQLite database where records are stored")

	extract := &cobra.Command{
		Use:   "extract [files or globs...]",
		Short: "Extract records from TOPAS outputs",
		Example: `  celltab extract runs/*.out
  celltab extract --format json --db results.db runs/*.out.gz`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runExtract,
	}
	extract.Flags().IntVarP(&f.workers, "workers", "j", 0, "Files processed in parallel (default: number of CPUs)")
	extract.Flags().StringVar(&f.plot, "plot", "", "Draw the fit statistics into this image (png, svg, pdf...)")
	extract.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write batch metrics in Prometheus text format to this file")
	extract.Flags().Float64Var(&f.volumeTolerance, "volume-tolerance", topas.DefaultVolumeTolerance,
		"Relative tolerance of the volume check, 0 disables it")

	stored := &cobra.Command{
		Use:   "stored",
		Short: "Write the records kept in the --db database",
		Args:  cobra.NoArgs,
		RunE:  a.runStored,
	}
	catalog := &cobra.Command{
		Use:   "catalog [symbols...]",
		Short: "Look up space groups, or list the whole table",
		RunE:  a.runCatalog,
	}
	round := &cobra.Command{
		Use:   "round <value> [error]",
		Short: "Write a value and its error in crystallographic notation",
		Example: "  celltab round 12.345600 0.000700\n  celltab round '12.345600`_0.000700'",
		Args:    cobra.RangeArgs(1, 2),
		RunE:    a.runRound,
	}
	root.AddCommand(extract, stored, catalog, round)
	return root
}

//config returns the configuration of the running command.
func (a *app) config(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(a.flags.config)
	if err != nil {
		return cfg, err
	}
	a.flags.apply(&cfg, cmd.Flags().Changed)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	a.log.Debug("configuration", zap.Any("config", cfg))
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
