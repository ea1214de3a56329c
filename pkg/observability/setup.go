package observability

import (
	"fmt"
	"net"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/event-service/pkg/config"
	"github.com/raywall/event-service/pkg/metrics"
)

const defaultStatsdPort = "8125"

// NoopProvider é usado quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client statsd.ClientInterface
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close envia o buffer pendente e libera o socket
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// SetupMetrics inicializa o provedor conforme a configuração.
func SetupMetrics(cfg config.MetricsConf) (metrics.Provider, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	client, err := statsd.New(statsdAddr(cfg.Datadog.Addr),
		statsd.WithNamespace(cfg.Datadog.Namespace),
		statsd.WithTags([]string{"service:event-service"}),
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	return &DatadogProvider{client: client}, nil
}

// statsdAddr completa o host do agente com a porta padrão do DogStatsD
func statsdAddr(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, defaultStatsdPort)
}
