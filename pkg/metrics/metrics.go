// Package metrics exposes Prometheus instrumentation for the HTTP API and the
// database.
package metrics

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_db_query_duration_seconds",
			Help:    "Duration of SQLite queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_db_query_errors_total",
			Help: "Total number of failed SQLite queries",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records one finished request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDBQuery records one finished query. No rows is not counted as an
// error.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && !isNoRows(err) {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// Middleware records every request under its route pattern, so /author/1 and
// /author/2 share a series.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			APIActiveRequests.Inc()
			defer APIActiveRequests.Dec()

			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			RecordAPIRequest(c.Request().Method, route, statusFor(c, err), time.Since(start))
			return err
		}
	}
}

// statusFor returns the status the error handler will write for err, since the
// response hasn't been written yet when a handler returns an error.
func statusFor(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var codeErr *errcodes.Error
	if errors.As(err, &codeErr) {
		return codeErr.HTTPCode
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Handler serves the default registry.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// QueryHook is a bun query hook feeding the database metrics.
type QueryHook struct{}

var _ bun.QueryHook = QueryHook{}

func (QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (QueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	RecordDBQuery(event.Operation(), time.Since(event.StartTime), event.Err)
}
