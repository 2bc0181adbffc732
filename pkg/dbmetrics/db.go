package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/pkg/metrics"
	"github.com/m04kA/SMC-SlotCalendar/pkg/txmanager"
)

// DB wraps *sql.DB and records query latency and pool statistics.
type DB struct {
	*sql.DB
	metrics *metrics.Metrics
}

// Wrap returns db instrumented with m. A nil m disables recording.
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{DB: db, metrics: m}
}

// WrapWithDefault wraps db and starts pool statistics collection every 15 seconds until stop is closed.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stop <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.CollectPoolStats(15*time.Second, stop)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.DB.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.DB.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// Instrument records the latency of statements run through inner with d's metrics.
// Pass it to txmanager.WithExecutorWrapper so queries inside transactions are observed too.
func (d *DB) Instrument(inner txmanager.DBExecutor) txmanager.DBExecutor {
	return &executor{inner: inner, db: d}
}

type executor struct {
	inner txmanager.DBExecutor
	db    *DB
}

func (e *executor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := e.inner.ExecContext(ctx, query, args...)
	e.db.observe(query, start, err)
	return res, err
}

func (e *executor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := e.inner.QueryContext(ctx, query, args...)
	e.db.observe(query, start, err)
	return rows, err
}

func (e *executor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := e.inner.QueryRowContext(ctx, query, args...)
	e.db.observe(query, start, row.Err())
	return row
}

// CollectPoolStats publishes sql.DBStats until stop is closed.
func (d *DB) CollectPoolStats(interval time.Duration, stop <-chan struct{}) {
	if d.metrics == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.publishStats(d.DB.Stats())
		select {
		case <-ticker.C:
		case <-stop:
			return
		}
	}
}

func (d *DB) publishStats(stats sql.DBStats) {
	d.metrics.DBOpenConnections.Set(float64(stats.OpenConnections))
	d.metrics.DBInUseConnections.Set(float64(stats.InUse))
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	d.metrics.DBQueryDuration.WithLabelValues(Operation(query), status).Observe(time.Since(start).Seconds())
}

// Operation returns the leading SQL keyword of query in lower case ("select", "insert", ...).
func Operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
