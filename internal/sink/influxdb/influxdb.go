// Package influxdb is a PDW sink backed by influxdb1-client. One point
// per PDW, measurement "pdw", tagged by sensor/radar name.
package influxdb

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	client "github.com/influxdata/influxdb1-client/v2"

	"github.com/pv/radarsim/internal/pdw"
	"github.com/pv/radarsim/internal/simerr"
)

// Sink writes one InfluxDB point per PDW.
type Sink struct {
	c        client.Client
	database string
	runID    string
}

// Open connects to dsn (influxdb://[user:pass@]host[:port]/database).
func Open(dsn string) (*Sink, error) {
	addr, database, username, password, err := parseDSN(dsn)
	if err != nil {
		return nil, &simerr.ConfigurationError{Field: "sink", Err: err}
	}
	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:     addr,
		Username: username,
		Password: password,
		Timeout:  30 * time.Second,
	})
	if err != nil {
		return nil, &simerr.IOError{Op: "influxdb: create client", Err: err}
	}
	if _, _, err := c.Ping(10 * time.Second); err != nil {
		c.Close()
		return nil, &simerr.IOError{Op: "influxdb: ping", Err: err}
	}
	return &Sink{c: c, database: database, runID: uuid.NewString()}, nil
}

// Write writes one point for p.
func (s *Sink) Write(p pdw.PDW) error {
	bp, err := client.NewBatchPoints(client.BatchPointsConfig{Database: s.database})
	if err != nil {
		return &simerr.IOError{Op: "influxdb: new batch", Err: err}
	}
	tags := map[string]string{
		"sensor_id": p.SensorID,
		"radar_id":  p.RadarID,
		"run_id":    s.runID,
	}
	fields := map[string]interface{}{
		"time_emitted": p.TimeEmitted,
		"toa":          p.TOA,
		"amplitude":    p.Amplitude,
		"frequency":    p.Frequency,
		"pulse_width":  p.PulseWidth,
		"aoa":          p.AOA,
	}
	pt, err := client.NewPoint("pdw", tags, fields, time.Unix(0, int64(p.TimeEmitted*1e9)))
	if err != nil {
		return &simerr.IOError{Op: "influxdb: new point", Err: err}
	}
	bp.AddPoint(pt)
	if err := s.c.Write(bp); err != nil {
		return &simerr.IOError{Op: "influxdb: write", Err: err}
	}
	return nil
}

// Close closes the underlying HTTP client.
func (s *Sink) Close() error {
	if err := s.c.Close(); err != nil {
		return &simerr.IOError{Op: "influxdb: close", Err: err}
	}
	return nil
}

func parseDSN(dsn string) (addr, database, username, password string, err error) {
	normalized := dsn
	if strings.HasPrefix(strings.ToLower(dsn), "influx://") {
		normalized = "influxdb://" + dsn[len("influx://"):]
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return "", "", "", "", fmt.Errorf("invalid URL: %w", err)
	}
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "8086"
	}
	addr = fmt.Sprintf("http://%s:%s", host, port)
	database = strings.TrimPrefix(u.Path, "/")
	if database == "" {
		return "", "", "", "", fmt.Errorf("database not specified in DSN")
	}
	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
	}
	return addr, database, username, password, nil
}
