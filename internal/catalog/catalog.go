// Package catalog tracks which spec versions have been published before,
// so a build can report versions it is seeing for the first time.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/beezly/specdocs/internal/discovery"
)

const timeFormat = time.RFC3339

// Catalog wraps a sql.DB connection to the SQLite version catalog.
type Catalog struct {
	conn *sql.DB
}

// KnownVersion is one previously recorded spec version.
type KnownVersion struct {
	Family    string
	Version   string
	Filename  string
	FirstSeen string
}

// Run is one recorded build invocation.
type Run struct {
	ID        int64
	StartedAt string
	Families  int
	Specs     int
	NewSpecs  int
}

// Open creates a new catalog connection and runs all pending migrations.
func Open(path string) (*Catalog, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	goose.SetBaseFS(migrationFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Catalog{conn: conn}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.conn.Close()
}

// RecordVersions upserts every spec in the collection for the given family
// and returns the versions that were not already known, in collection
// order (newest first).
func (c *Catalog) RecordVersions(family string, specs discovery.Collection, now time.Time) ([]string, error) {
	var fresh []string
	for _, spec := range specs {
		res, err := c.conn.Exec(
			`INSERT INTO spec_versions (family, version, filename, first_seen)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(family, version) DO NOTHING`,
			family, spec.Version.String(), spec.Name, now.UTC().Format(timeFormat),
		)
		if err != nil {
			return nil, fmt.Errorf("record version %s/%s: %w", family, spec.Version, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("record version %s/%s: %w", family, spec.Version, err)
		}
		if n > 0 {
			fresh = append(fresh, spec.Version.String())
		}
	}
	return fresh, nil
}

// KnownVersions returns every recorded version for a family, most recently
// seen first.
func (c *Catalog) KnownVersions(family string) ([]KnownVersion, error) {
	rows, err := c.conn.Query(
		`SELECT family, version, filename, first_seen FROM spec_versions
		 WHERE family = ? ORDER BY first_seen DESC, version DESC`, family,
	)
	if err != nil {
		return nil, fmt.Errorf("known versions for %s: %w", family, err)
	}
	defer rows.Close() //nolint:errcheck

	var known []KnownVersion
	for rows.Next() {
		var k KnownVersion
		if err := rows.Scan(&k.Family, &k.Version, &k.Filename, &k.FirstSeen); err != nil {
			return nil, fmt.Errorf("scan known version: %w", err)
		}
		known = append(known, k)
	}
	return known, rows.Err()
}

// FirstSeen returns when a family/version pair was first recorded, or
// false if it has never been seen.
func (c *Catalog) FirstSeen(family, version string) (string, bool, error) {
	var seen string
	err := c.conn.QueryRow(
		`SELECT first_seen FROM spec_versions WHERE family = ? AND version = ?`, family, version,
	).Scan(&seen)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("first seen %s/%s: %w", family, version, err)
	}
	return seen, true, nil
}

// RecordRun stores one build invocation.
func (c *Catalog) RecordRun(startedAt time.Time, families, specs, newSpecs int) error {
	_, err := c.conn.Exec(
		`INSERT INTO runs (started_at, families, specs, new_specs) VALUES (?, ?, ?, ?)`,
		startedAt.UTC().Format(timeFormat), families, specs, newSpecs,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (c *Catalog) ListRuns(limit int) ([]Run, error) {
	rows, err := c.conn.Query(
		`SELECT id, started_at, families, specs, new_specs FROM runs
		 ORDER BY started_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Families, &r.Specs, &r.NewSpecs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
