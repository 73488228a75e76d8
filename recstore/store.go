/*
 * store.go, part of celltab.
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


//Package recstore keeps extracted records in a SQLite database, so
//batches can be accumulated and queried across runs.
package recstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rmera/celltab/topas"
)

//go:embed schema.sql
var schema string

//ErrNotFound is returned when no record is stored for a file.
var ErrNotFound = errors.New("recstore: record not found")

//Store persists records in SQLite.
type Store struct {
	db *sql.DB
}

//Diagnostic is the stored form of a problem found while extracting a
//record.
type Diagnostic struct {
	Field   topas.Field
	Kind    string
	Message string
}

var (
	columns      = fieldColumns()
	placeholders = strings.TrimSuffix(strings.Repeat("?, ", len(topas.Fields)), ", ")
)

func fieldColumns() string {
	names := make([]string, len(topas.Fields))
	for i, f := range topas.Fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

//Open opens (creating it if needed) the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

//Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

//Put stores r, replacing the record and diagnostics previously stored for
//the same file.
func (s *Store) Put(ctx context.Context, r topas.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Filename) == "" {
		return fmt.Errorf("record filename is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	args := make([]any, 0, len(topas.Fields)+1)
	for _, v := range r.Values() {
		args = append(args, v)
	}
	args = append(args, time.Now().UTC().UnixMilli())
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO records (`+columns+`, stored_at) VALUES (`+placeholders+`, ?)`, args...)
	if err != nil {
		return fmt.Errorf("put record %s: %w", r.Filename, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM diagnostics WHERE filename = ?`, r.Filename); err != nil {
		return fmt.Errorf("clear diagnostics of %s: %w", r.Filename, err)
	}
	for i, d := range r.Diagnostics {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO diagnostics (filename, seq, field, kind, message) VALUES (?, ?, ?, ?, ?)`,
			r.Filename, i, string(d.Field()), d.Kind().String(), d.Message())
		if err != nil {
			return fmt.Errorf("put diagnostic of %s: %w", r.Filename, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put: %w", err)
	}
	return nil
}

//PutAll stores every record in recs, stopping at the first error.
func (s *Store) PutAll(ctx context.Context, recs []topas.Record) error {
	for _, r := range recs {
		if err := s.Put(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (topas.Record, error) {
	vals := make([]string, len(topas.Fields))
	dest := make([]any, len(vals))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := row.Scan(dest...); err != nil {
		return topas.Record{}, err
	}
	var r topas.Record
	for i, f := range topas.Fields {
		r = r.With(f, vals[i])
	}
	return r, nil
}

//Get returns the record stored for filename, without diagnostics.
func (s *Store) Get(ctx context.Context, filename string) (topas.Record, error) {
	if err := ctx.Err(); err != nil {
		return topas.Record{}, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM records WHERE filename = ?`, filename)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return topas.Record{}, ErrNotFound
	}
	if err != nil {
		return topas.Record{}, fmt.Errorf("get record %s: %w", filename, err)
	}
	return r, nil
}

//All returns every stored record, ordered by file name.
func (s *Store) All(ctx context.Context) ([]topas.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+columns+` FROM records ORDER BY filename`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	var ret []topas.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		ret = append(ret, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return ret, nil
}

//Diagnostics returns the diagnostics stored along with the record of
//filename, in the order they were found.
func (s *Store) Diagnostics(ctx context.Context, filename string) ([]Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT field, kind, message FROM diagnostics WHERE filename = ? ORDER BY seq`, filename)
	if err != nil {
		return nil, fmt.Errorf("list diagnostics: %w", err)
	}
	defer rows.Close()
	var ret []Diagnostic
	for rows.Next() {
		var d Diagnostic
		var field string
		if err := rows.Scan(&field, &d.Kind, &d.Message); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		d.Field = topas.Field(field)
		ret = append(ret, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostics: %w", err)
	}
	return ret, nil
}
