package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/cristianoliveira/viewstack/internal/logging"
	"github.com/cristianoliveira/viewstack/internal/version"
)

// newRegistry returns a registry with the Go runtime collectors.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// metricsServer serves /metrics for a registry.
type metricsServer struct {
	srv *http.Server
	ln  net.Listener
}

func serveMetrics(addr string, reg *prometheus.Registry, logger logging.Logger) (*metricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics: listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("Serving metrics", "addr", ln.Addr().String())
	return &metricsServer{srv: srv, ln: ln}, nil
}

// Addr returns the address the server listens on.
func (m *metricsServer) Addr() string {
	return m.ln.Addr().String()
}

// Close stops the server.
func (m *metricsServer) Close(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}

// traceFile exports spans as JSON lines to a file.
type traceFile struct {
	provider *sdktrace.TracerProvider
	f        *os.File
}

func openTraceFile(path string) (*traceFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("trace: create exporter: %w", err)
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", "viewstack"),
		attribute.String("service.version", version.String()),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	return &traceFile{provider: provider, f: f}, nil
}

// Close flushes pending spans and closes the file.
func (t *traceFile) Close(ctx context.Context) error {
	return errors.Join(t.provider.Shutdown(ctx), t.f.Close())
}
