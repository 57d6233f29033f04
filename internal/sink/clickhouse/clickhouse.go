// Package clickhouse is a PDW sink backed by clickhouse-go/v2. It
// writes rows via PrepareBatch/Append/Send, one single-row batch per
// PDW, and carries name_hid
// hash columns alongside the display name for fast columnar joins
// against downstream deinterleaving pipelines.
package clickhouse

import (
	"context"
	"fmt"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/aviddiviner/go-murmur"
	"github.com/go-faster/city"
	"github.com/google/uuid"

	"github.com/pv/radarsim/internal/pdw"
	"github.com/pv/radarsim/internal/simerr"
)

// Sink prepares, fills and sends one single-row batch per Write.
type Sink struct {
	conn  ch.Conn
	table string
	runID string
}

// Open parses dsn, connects, and ensures the target table exists.
func Open(ctx context.Context, dsn, table string) (*Sink, error) {
	if table == "" {
		table = "pdw_records"
	}
	opts, err := ch.ParseDSN(dsn)
	if err != nil {
		return nil, &simerr.ConfigurationError{Field: "sink", Err: fmt.Errorf("clickhouse: parse dsn: %w", err)}
	}
	conn, err := ch.Open(opts)
	if err != nil {
		return nil, &simerr.IOError{Op: "clickhouse: open", Err: err}
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, &simerr.IOError{Op: "clickhouse: ping", Err: err}
	}

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		run_id String,
		time_emitted Float64,
		sensor_id String,
		sensor_name_hid Int64,
		sensor_uniset_hid UInt32,
		radar_id String,
		radar_name_hid Int64,
		radar_uniset_hid UInt32,
		toa Float64,
		amplitude Float64,
		frequency Float64,
		pulse_width Float64,
		aoa Float64
	) ENGINE = MergeTree ORDER BY (run_id, time_emitted)`, table)
	if err := conn.Exec(ctx, schema); err != nil {
		conn.Close()
		return nil, &simerr.IOError{Op: "clickhouse: create table", Err: err}
	}

	return &Sink{conn: conn, table: table, runID: uuid.NewString()}, nil
}

// Write prepares and appends a single-row batch. Callers that write
// many PDWs per run should expect this to be the throughput floor;
// it mirrors the teacher's batch-prepare idiom rather than
// introducing a new buffering scheme not present anywhere in the pack.
func (s *Sink) Write(p pdw.PDW) error {
	batch, err := s.conn.PrepareBatch(context.Background(), fmt.Sprintf("INSERT INTO %s", s.table))
	if err != nil {
		return &simerr.IOError{Op: "clickhouse: prepare batch", Err: err}
	}
	err = batch.Append(
		s.runID,
		p.TimeEmitted,
		p.SensorID, int64(city.Hash64([]byte(p.SensorID))), murmur.MurmurHash2([]byte(p.SensorID), 0),
		p.RadarID, int64(city.Hash64([]byte(p.RadarID))), murmur.MurmurHash2([]byte(p.RadarID), 0),
		p.TOA, p.Amplitude, p.Frequency, p.PulseWidth, p.AOA,
	)
	if err != nil {
		return &simerr.IOError{Op: "clickhouse: append row", Err: err}
	}
	if err := batch.Send(); err != nil {
		return &simerr.IOError{Op: "clickhouse: send batch", Err: err}
	}
	return nil
}

// Close releases the connection.
func (s *Sink) Close() error {
	if err := s.conn.Close(); err != nil {
		return &simerr.IOError{Op: "clickhouse: close", Err: err}
	}
	return nil
}
