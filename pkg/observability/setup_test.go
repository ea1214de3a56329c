package observability

import (
	"testing"

	"github.com/raywall/event-service/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{})
		require.NoError(t, err)
		assert.IsType(t, &NoopProvider{}, provider)
		assert.NoError(t, provider.Count("x", 1, nil))
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{
			Datadog: config.DatadogConf{Enabled: true, Addr: "127.0.0.1", Namespace: "test."},
		})
		require.NoError(t, err)

		dd, ok := provider.(*DatadogProvider)
		require.True(t, ok, "esperado DatadogProvider, recebido %T", provider)
		assert.NoError(t, dd.Close())
	})
}

func TestStatsdAddr(t *testing.T) {
	assert.Equal(t, "localhost:8125", statsdAddr("localhost"))
	assert.Equal(t, "10.0.0.1:9125", statsdAddr("10.0.0.1:9125"))
}
