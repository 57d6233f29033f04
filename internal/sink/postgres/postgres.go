// Package postgres is a PDW sink backed by pgx/pgxpool, batching rows
// into a pgx.CopyFrom insert.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pv/radarsim/internal/pdw"
	"github.com/pv/radarsim/internal/simerr"
)

const defaultBatchSize = 1000

// Sink batches PDWs in memory and flushes them to Postgres via
// pgx.CopyFrom, either when BatchSize is reached or on Close.
type Sink struct {
	pool      *pgxpool.Pool
	runID     string
	batch     []pdw.PDW
	BatchSize int
}

// Open connects to connString, ensures the pdw_records table exists,
// and returns a ready Sink.
func Open(ctx context.Context, connString string) (*Sink, error) {
	if connString == "" {
		return nil, &simerr.ConfigurationError{Field: "sink", Err: fmt.Errorf("postgres: connection string is empty")}
	}
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, &simerr.IOError{Op: "postgres: connect", Err: err}
	}
	const schema = `CREATE TABLE IF NOT EXISTS pdw_records (
		run_id TEXT NOT NULL,
		time_emitted DOUBLE PRECISION NOT NULL,
		sensor_id TEXT NOT NULL,
		radar_id TEXT NOT NULL,
		toa DOUBLE PRECISION NOT NULL,
		amplitude DOUBLE PRECISION NOT NULL,
		frequency DOUBLE PRECISION NOT NULL,
		pulse_width DOUBLE PRECISION NOT NULL,
		aoa DOUBLE PRECISION NOT NULL
	)`
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, &simerr.IOError{Op: "postgres: create table", Err: err}
	}
	return &Sink{pool: pool, runID: uuid.NewString(), BatchSize: defaultBatchSize}, nil
}

// Write buffers p, flushing the batch to Postgres once BatchSize is
// reached.
func (s *Sink) Write(p pdw.PDW) error {
	s.batch = append(s.batch, p)
	if len(s.batch) >= s.BatchSize {
		return s.flush(context.Background())
	}
	return nil
}

func (s *Sink) flush(ctx context.Context) error {
	if len(s.batch) == 0 {
		return nil
	}
	rows := s.batch
	source := pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		r := rows[i]
		return []any{s.runID, r.TimeEmitted, r.SensorID, r.RadarID, r.TOA, r.Amplitude, r.Frequency, r.PulseWidth, r.AOA}, nil
	})
	_, err := s.pool.CopyFrom(ctx, pgx.Identifier{"pdw_records"},
		[]string{"run_id", "time_emitted", "sensor_id", "radar_id", "toa", "amplitude", "frequency", "pulse_width", "aoa"},
		source)
	s.batch = s.batch[:0]
	if err != nil {
		return &simerr.IOError{Op: "postgres: copy from", Err: err}
	}
	return nil
}

// Close flushes any remaining buffered rows and releases the pool.
func (s *Sink) Close() error {
	err := s.flush(context.Background())
	s.pool.Close()
	return err
}
