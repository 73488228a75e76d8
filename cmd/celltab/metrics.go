/*
 * metrics.go, part of celltab.
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
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rmera/celltab/topas"
)

//batchMetrics describes one extraction run. They are written once, at
//the end of the run, in the format of node_exporter's textfile collector.
type batchMetrics struct {
	reg         *prometheus.Registry
	files       *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	duration    prometheus.Gauge
	finished    prometheus.Gauge
}

func newBatchMetrics() *batchMetrics {
	m := &batchMetrics{
		reg: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "celltab_files_total",
			Help: "Refinement outputs processed, by outcome.",
		}, []string{"status"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "celltab_diagnostics_total",
			Help: "Problems found in the records, by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "celltab_batch_duration_seconds",
			Help: "Time spent reading and extracting the batch.",
		}),
		finished: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "celltab_batch_last_completion_timestamp_seconds",
			Help: "When the last batch finished.",
		}),
	}
	m.reg.MustRegister(m.files, m.diagnostics, m.duration, m.finished)
	return m
}

//status classifies the outcome of one file.
func status(err error) string {
	var e *topas.Error
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.As(err, &e) && e.Field() == topas.FieldFilename:
		return "unreadable"
	default:
		return "malformed"
	}
}

func (m *batchMetrics) observe(recs []topas.Record, errs []error, elapsed time.Duration) {
	for i, r := range recs {
		m.files.WithLabelValues(status(errs[i])).Inc()
		for _, d := range r.Diagnostics {
			m.diagnostics.WithLabelValues(d.Kind().String()).Inc()
		}
	}
	m.duration.Set(elapsed.Seconds())
	m.finished.SetToCurrentTime()
}

func (m *batchMetrics) write(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
