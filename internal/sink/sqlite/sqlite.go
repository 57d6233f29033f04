// Package sqlite is a PDW sink backed by modernc.org/sqlite, using
// pragma-tuned connection setup and a single prepared insert statement.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/google/uuid"

	"github.com/pv/radarsim/internal/pdw"
	"github.com/pv/radarsim/internal/simerr"
)

// Pragmas configures the sqlite connection's durability/performance
// tradeoffs.
type Pragmas struct {
	CacheMB    int
	WAL        bool
	SyncOff    bool
	TempMemory bool
}

// Sink writes PDWs into a pdw_records table, tagging every row with a
// run_id so repeated runs against the same database file remain
// distinguishable.
type Sink struct {
	db    *sql.DB
	stmt  *sql.Stmt
	runID string
}

// Open creates (or reuses) the database at path, applies pragmas, and
// prepares the table and insert statement.
func Open(ctx context.Context, path string, pragmas Pragmas) (*Sink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &simerr.IOError{Op: "sqlite: open", Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &simerr.IOError{Op: "sqlite: ping", Err: err}
	}
	applyPragmas(ctx, db, pragmas)

	const schema = `CREATE TABLE IF NOT EXISTS pdw_records (
		run_id TEXT NOT NULL,
		time_emitted REAL NOT NULL,
		sensor_id TEXT NOT NULL,
		radar_id TEXT NOT NULL,
		toa REAL NOT NULL,
		amplitude REAL NOT NULL,
		frequency REAL NOT NULL,
		pulse_width REAL NOT NULL,
		aoa REAL NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, &simerr.IOError{Op: "sqlite: create table", Err: err}
	}

	stmt, err := db.PrepareContext(ctx, `INSERT INTO pdw_records
		(run_id, time_emitted, sensor_id, radar_id, toa, amplitude, frequency, pulse_width, aoa)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, &simerr.IOError{Op: "sqlite: prepare insert", Err: err}
	}

	return &Sink{db: db, stmt: stmt, runID: uuid.NewString()}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB, p Pragmas) {
	var pragmas []string
	if p.WAL {
		pragmas = append(pragmas, `PRAGMA journal_mode=WAL`)
	}
	if p.SyncOff {
		pragmas = append(pragmas, `PRAGMA synchronous=OFF`)
	}
	if p.TempMemory {
		pragmas = append(pragmas, `PRAGMA temp_store=MEMORY`)
	}
	if p.CacheMB > 0 {
		pragmas = append(pragmas, fmt.Sprintf(`PRAGMA cache_size=%d`, -p.CacheMB*1024))
	}
	for _, stmt := range pragmas {
		db.ExecContext(ctx, stmt)
	}
}

// Write inserts one PDW row tagged with this run's run_id.
func (s *Sink) Write(p pdw.PDW) error {
	_, err := s.stmt.Exec(s.runID, p.TimeEmitted, p.SensorID, p.RadarID, p.TOA, p.Amplitude, p.Frequency, p.PulseWidth, p.AOA)
	if err != nil {
		return &simerr.IOError{Op: "sqlite: insert", Err: err}
	}
	return nil
}

// Close releases the prepared statement and the database handle.
func (s *Sink) Close() error {
	if s.stmt != nil {
		s.stmt.Close()
	}
	if err := s.db.Close(); err != nil {
		return &simerr.IOError{Op: "sqlite: close", Err: err}
	}
	return nil
}
