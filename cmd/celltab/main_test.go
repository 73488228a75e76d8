package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/rmera/celltab/spacegroup"
	"github.com/rmera/celltab/topas"
	"github.com/rmera/celltab/uncert"
)

const testdata = "../../topas/testdata/"

func run(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtract(Te *testing.T) {
	dir := Te.TempDir()
	db := filepath.Join(dir, "records.db")
	plot := filepath.Join(dir, "fit.png")
	metrics := filepath.Join(dir, "celltab.prom")
	out, err := run(Te, "extract", "--format", "json", "--db", db, "--plot", plot,
		"--metrics-file", metrics, "-j", "2", testdata+"*.out")
	if err != nil {
		Te.Fatal(err)
	}
	var recs []map[string]string
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		Te.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(recs) != 3 {
		Te.Fatalf("%d records, want 3", len(recs))
	}
	if recs[1]["filename"] != testdata+"lifepo4.out" || recs[1]["a"] != "5.12346(12)" || recs[1]["chi"] != "2.15" {
		Te.Errorf("unexpected record %v", recs[1])
	}
	if recs[2]["crystal_system"] != topas.NotFound {
		Te.Errorf("unknown space group gave %v", recs[2])
	}
	if fi, err := os.Stat(plot); err != nil || fi.Size() == 0 {
		Te.Errorf("plot not written: %v", err)
	}
	prom, err := os.ReadFile(metrics)
	if err != nil {
		Te.Fatal(err)
	}
	for _, want := range []string{
		`celltab_files_total{status="ok"} 3`,
		`celltab_diagnostics_total{kind="catalog lookup failure"} 1`,
		"celltab_batch_duration_seconds",
	} {
		if !strings.Contains(string(prom), want) {
			Te.Errorf("metrics lack %q:\n%s", want, prom)
		}
	}

	out, err = run(Te, "stored", "--db", db, "--raw", "--format", "yaml")
	if err != nil {
		Te.Fatal(err)
	}
	var stored []topas.Record
	if err := yaml.Unmarshal([]byte(out), &stored); err != nil {
		Te.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if len(stored) != 3 || stored[1].A != "5.123456`_0.000123" {
		Te.Errorf("unexpected stored records %+v", stored)
	}
}

func TestExtractFailures(Te *testing.T) {
	output := filepath.Join(Te.TempDir(), "out.csv")
	_, err := run(Te, "extract", "-o", output, testdata+"lifepo4.out", testdata+"missing.out")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files") {
		Te.Errorf("unexpected error %v", err)
	}
	f, err := os.Open(output)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	if len(rows) != 3 || rows[0][0] != "filename" || rows[2][3] != topas.NotFound {
		Te.Errorf("unexpected csv %v", rows)
	}
	if _, err := run(Te, "extract", testdata+"*.nothing"); err == nil {
		Te.Error("pattern without matches accepted")
	}
	if _, err := run(Te, "extract", "--format", "xml", testdata+"lifepo4.out"); err == nil {
		Te.Error("unknown format accepted")
	}
	if _, err := run(Te, "stored"); err == nil {
		Te.Error("stored without a database")
	}
}

func TestRoundCommand(Te *testing.T) {
	for _, args := range [][]string{
		{"round", "12.345600", "0.000700"},
		{"round", "12.345600`_0.000700"},
	} {
		out, err := run(Te, args...)
		if err != nil {
			Te.Fatal(err)
		}
		if out != "12.3456(7)\n" {
			Te.Errorf("%v: %q", args, out)
		}
	}
	if _, err := run(Te, "round", "5.0`_LIMIT_MAX"); !errors.Is(err, uncert.ErrLimitPinned) {
		Te.Errorf("limit-pinned value: %v", err)
	}
	if _, err := run(Te, "round", "5.0"); err == nil {
		Te.Error("value without error accepted")
	}
}

func TestCatalogCommand(Te *testing.T) {
	out, err := run(Te, "catalog", "P21/c", "ZZ99")
	var le *spacegroup.LookupError
	if !errors.As(err, &le) || le.Symbol != "ZZ99" {
		Te.Errorf("unexpected error %v", err)
	}
	if !strings.Contains(out, "monoclinic") {
		Te.Errorf("unexpected output %q", out)
	}
	out, err = run(Te, "catalog")
	if err != nil {
		Te.Fatal(err)
	}
	if n := strings.Count(out, "\n"); n != spacegroup.Default().Len() {
		Te.Errorf("%d lines for %d symbols", n, spacegroup.Default().Len())
	}
}

func TestExpandArgs(Te *testing.T) {
	got, err := expandArgs([]string{testdata + "l*.out", "plain.out", testdata + "lifepo4.out"})
	if err != nil {
		Te.Fatal(err)
	}
	if len(got) != 2 || got[0] != testdata+"lifepo4.out" || got[1] != "plain.out" {
		Te.Errorf("unexpected paths %v", got)
	}
}

func TestWriteRecords(Te *testing.T) {
	var b bytes.Buffer
	if err := writeRecords(&b, formatJSON, nil); err != nil {
		Te.Fatal(err)
	}
	if strings.TrimSpace(b.String()) != "[]" {
		Te.Errorf("empty batch written as %q", b.String())
	}
	if err := writeRecords(&b, "xml", nil); err == nil {
		Te.Error("unknown format accepted")
	}
}
