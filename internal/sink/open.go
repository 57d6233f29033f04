package sink

import (
	"context"
	"fmt"

	"github.com/pv/radarsim/internal/sink/clickhouse"
	"github.com/pv/radarsim/internal/sink/csv"
	"github.com/pv/radarsim/internal/sink/influxdb"
	"github.com/pv/radarsim/internal/sink/postgres"
	"github.com/pv/radarsim/internal/sink/sqlite"
)

// Open dispatches on kind ("csv", "sqlite", "postgres", "clickhouse",
// "influxdb") and returns a ready Sink writing to target (a file path
// or DSN, depending on kind).
func Open(ctx context.Context, kind, target string) (Sink, error) {
	switch kind {
	case "", "csv":
		return csv.Open(target)
	case "sqlite":
		return sqlite.Open(ctx, target, sqlite.Pragmas{WAL: true, SyncOff: true})
	case "postgres":
		return postgres.Open(ctx, target)
	case "clickhouse":
		return clickhouse.Open(ctx, target, "")
	case "influxdb":
		return influxdb.Open(target)
	default:
		return nil, fmt.Errorf("sink: unknown kind %q", kind)
	}
}
