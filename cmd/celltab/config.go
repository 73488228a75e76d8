/*
 * config.go, part of celltab.
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
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/rmera/celltab/topas"
)

//Output formats.
const (
	formatCSV  = "csv"
	formatJSON = "json"
	formatYAML = "yaml"
)

//Config holds the settings of a run. They come, in increasing order of
//precedence, from the defaults, the YAML file given with --config, the
//environment and the command line.
type Config struct {
	Catalog         string  `yaml:"catalog" env:"CELLTAB_CATALOG"`
	Workers         int     `yaml:"workers" env:"CELLTAB_WORKERS"`
	Format          string  `yaml:"format" env:"CELLTAB_FORMAT"`
	Output          string  `yaml:"output" env:"CELLTAB_OUTPUT"`
	Raw             bool    `yaml:"raw" env:"CELLTAB_RAW"`
	DB              string  `yaml:"db" env:"CELLTAB_DB"`
	Plot            string  `yaml:"plot" env:"CELLTAB_PLOT"`
	MetricsFile     string  `yaml:"metrics_file" env:"CELLTAB_METRICS_FILE"`
	VolumeTolerance float64 `yaml:"volume_tolerance" env:"CELLTAB_VOLUME_TOLERANCE"`
}

//DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		Format:          formatCSV,
		VolumeTolerance: topas.DefaultVolumeTolerance,
	}
}

//loadConfig builds the configuration from the defaults, the file at path
//(if path is not empty) and the environment. Flags are applied later,
//by the command.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

//validate normalizes cfg and checks that its values make sense.
func (c *Config) validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case formatCSV, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want csv, json or yaml)", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

//flagValues are the settings given on the command line.
type flagValues struct {
	config          string
	catalog         string
	workers         int
	format          string
	output          string
	raw             bool
	db              string
	plot            string
	metricsFile     string
	volumeTolerance float64
}

//apply overrides the fields of c whose flag was set. changed tells
//whether a flag was given, as cobra's Flags().Changed does.
func (f flagValues) apply(c *Config, changed func(name string) bool) {
	if changed("catalog") {
		c.Catalog = f.catalog
	}
	if changed("workers") {
		c.Workers = f.workers
	}
	if changed("format") {
		c.Format = f.format
	}
	if changed("output") {
		c.Output = f.output
	}
	if changed("raw") {
		c.Raw = f.raw
	}
	if changed("db") {
		c.DB = f.db
	}
	if changed("plot") {
		c.Plot = f.plot
	}
	if changed("metrics-file") {
		c.MetricsFile = f.metricsFile
	}
	if changed("volume-tolerance") {
		c.VolumeTolerance = f.volumeTolerance
	}
}
