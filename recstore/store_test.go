package recstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/rmera/celltab/topas"
)

const fit = "r_exp  3.000 r_wp  6.000 gof  2.000\n"

func openStore(Te *testing.T) *Store {
	Te.Helper()
	s, err := Open(filepath.Join(Te.TempDir(), "records.db"))
	if err != nil {
		Te.Fatal(err)
	}
	Te.Cleanup(func() { _ = s.Close() })
	return s
}

func assemble(Te *testing.T, name, raw string) topas.Record {
	Te.Helper()
	r, err := topas.NewExtractor(nil).Assemble(name, raw)
	if err != nil {
		Te.Fatal(err)
	}
	return r
}

func TestPutGetAll(Te *testing.T) {
	ctx := context.Background()
	s := openStore(Te)
	cubic := assemble(Te, "b.out", fit+"space_group Pm-3m\na @ 4.0`_0.1\ncell_volume 64.0`_0.1\n")
	odd := assemble(Te, "a.out", fit+"space_group ZZ99\n")
	if err := s.PutAll(ctx, []topas.Record{cubic, odd}); err != nil {
		Te.Fatal(err)
	}
	ignore := cmpopts.IgnoreFields(topas.Record{}, "Diagnostics")
	got, err := s.Get(ctx, "b.out")
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff(cubic, got, ignore); d != "" {
		Te.Errorf("record mismatch (-want +got):\n%s", d)
	}
	all, err := s.All(ctx)
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([]topas.Record{odd, cubic}, all, ignore); d != "" {
		Te.Errorf("records mismatch (-want +got):\n%s", d)
	}
	diags, err := s.Diagnostics(ctx, "a.out")
	if err != nil {
		Te.Fatal(err)
	}
	if len(diags) != len(odd.Diagnostics) || len(diags) == 0 {
		Te.Fatalf("%d diagnostics stored, %d found", len(diags), len(odd.Diagnostics))
	}
	if diags[0].Kind != odd.Diagnostics[0].Kind().String() || diags[0].Field != odd.Diagnostics[0].Field() {
		Te.Errorf("unexpected diagnostic %+v", diags[0])
	}
}

func TestPutReplaces(Te *testing.T) {
	ctx := context.Background()
	s := openStore(Te)
	if err := s.Put(ctx, assemble(Te, "x.out", fit+"space_group ZZ99\n")); err != nil {
		Te.Fatal(err)
	}
	fixed := assemble(Te, "x.out", fit+"space_group Pm-3m\na @ 4.0`_0.1\ncell_volume 64.0`_0.1\n")
	if err := s.Put(ctx, fixed); err != nil {
		Te.Fatal(err)
	}
	all, err := s.All(ctx)
	if err != nil {
		Te.Fatal(err)
	}
	if len(all) != 1 || all[0].CrystalSystem != "cubic" {
		Te.Errorf("unexpected records %+v", all)
	}
	diags, err := s.Diagnostics(ctx, "x.out")
	if err != nil {
		Te.Fatal(err)
	}
	if len(diags) != len(fixed.Diagnostics) {
		Te.Errorf("old diagnostics kept: %+v", diags)
	}
}

func TestStoreErrors(Te *testing.T) {
	ctx := context.Background()
	s := openStore(Te)
	if _, err := s.Get(ctx, "nothing.out"); !errors.Is(err, ErrNotFound) {
		Te.Errorf("get of a missing record: %v", err)
	}
	if err := s.Put(ctx, topas.Record{}); err == nil {
		Te.Error("record without a file name stored")
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.Put(cancelled, topas.Record{Filename: "y.out"}); !errors.Is(err, context.Canceled) {
		Te.Errorf("put with a cancelled context: %v", err)
	}
	if _, err := Open(" "); err == nil {
		Te.Error("empty path accepted")
	}
}
