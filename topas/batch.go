/*
 * batch.go, part of celltab.
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
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//ProcessFiles reads and assembles every file in paths, using up to workers
//goroutines (GOMAXPROCS if workers < 1). The i-th record and error belong
//to paths[i]; the error is nil for files that were processed normally. A
//file that fails never stops the others. If ctx is cancelled, the files
//not yet started get records with every field marked NotFound and the
//context's error.
func (x *Extractor) ProcessFiles(ctx context.Context, paths []string, workers int) ([]Record, []error) {
	recs := make([]Record, len(paths))
	errs := make([]error, len(paths))
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				recs[i], errs[i] = Record{Filename: p}.markMissing(Fields[1:]), err
				return nil
			}
			raw, err := ReadFile(p)
			if err != nil {
				x.log.Error("unreadable refinement output", zap.String("file", p), zap.Error(err))
				recs[i] = Record{Filename: p}.markMissing(Fields[1:])
				errs[i] = err
				return nil
			}
			recs[i], errs[i] = x.Assemble(p, raw)
			return nil
		})
	}
	_ = g.Wait()
	return recs, errs
}
