/*
 * lookup.go, part of celltab.
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
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rmera/celltab/uncert"
)

//runCatalog lists the space-group table, or the entries for the
//symbols given.
func (a *app) runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := a.config(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = cat.Symbols()
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	var errs []error
	for _, s := range args {
		e, err := cat.Lookup(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s, e.System, e.Display)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

//runRound writes a value in crystallographic notation. The error can be
//given as a second argument or in the TOPAS form, after "`_".
func (a *app) runRound(cmd *cobra.Command, args []string) error {
	t := uncert.ParseToken(args[0])
	if len(args) == 2 {
		t = uncert.Token{Mean: args[0], Err: args[1]}
	}
	switch {
	case t.Limit:
		return uncert.ErrLimitPinned
	case t.Err == "":
		return fmt.Errorf("no error given for %s", t.Mean)
	}
	s, err := uncert.Bracket(t.Mean, t.Err)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}
