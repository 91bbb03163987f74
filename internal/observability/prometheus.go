package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// textfileExporter bridges OTel instruments into a private Prometheus
// registry that is dumped to a file on shutdown.
type textfileExporter struct {
	registry *prometheus.Registry
	reader   sdkmetric.Reader
	path     string
}

// newTextfileExporter creates an OTel reader backed by a fresh Prometheus
// registry. Each call uses its own registry to avoid collector conflicts.
func newTextfileExporter(path string) (*textfileExporter, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &textfileExporter{registry: registry, reader: exporter, path: path}, nil
}

// write gathers the registry and writes it in the text exposition format.
func (te *textfileExporter) write() error {
	err := prometheus.WriteToTextfile(te.path, te.registry)
	if err != nil {
		return fmt.Errorf("write metrics file %s: %w", te.path, err)
	}

	return nil
}
