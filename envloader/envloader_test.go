package envloader

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableConf struct {
	Name           string `env:"EVT_TABLE_NAME"`
	HashKey        string `env:"EVT_HASH_KEY" envDefault:"id"`
	ConsistentRead bool   `env:"EVT_CONSISTENT_READ"`
	PageSize       int32  `env:"EVT_PAGE_SIZE" envDefault:"0"`
}

type appConf struct {
	Port    int           `env:"EVT_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"EVT_TIMEOUT" envDefault:"30s"`
	Ratio   float64       `env:"EVT_RATIO" envDefault:"0.5"`
	Table   tableConf
	Logging *struct {
		Level string `env:"EVT_LOG_LEVEL" envDefault:"info"`
	}
	ignored string `env:"EVT_IGNORED"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg appConf
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.InDelta(t, 0.5, cfg.Ratio, 0.0001)
	assert.Equal(t, "", cfg.Table.Name)
	assert.Equal(t, "id", cfg.Table.HashKey)
	assert.False(t, cfg.Table.ConsistentRead)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.ignored)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("EVT_PORT", "9090")
	t.Setenv("EVT_TIMEOUT", "1m30s")
	t.Setenv("EVT_TABLE_NAME", "events")
	t.Setenv("EVT_CONSISTENT_READ", "TRUE")
	t.Setenv("EVT_PAGE_SIZE", "25")
	t.Setenv("EVT_LOG_LEVEL", "debug")

	var cfg appConf
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "events", cfg.Table.Name)
	assert.True(t, cfg.Table.ConsistentRead)
	assert.Equal(t, int32(25), cfg.Table.PageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestOverlay_KeepsExistingValues(t *testing.T) {
	t.Setenv("EVT_TABLE_NAME", "from-env")

	cfg := appConf{Port: 3000}
	cfg.Table.HashKey = "pk"

	require.NoError(t, Overlay(&cfg))

	assert.Equal(t, "from-env", cfg.Table.Name)
	assert.Equal(t, 3000, cfg.Port, "overlay must not apply envDefault")
	assert.Equal(t, "pk", cfg.Table.HashKey)
	assert.Zero(t, cfg.Timeout)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("EVT_PORT", "abc")

	var cfg appConf
	err := Load(&cfg)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "Port", fieldErr.FieldName)
	assert.Equal(t, "EVT_PORT", fieldErr.EnvVar)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("EVT_TIMEOUT", "soon")

	var cfg appConf
	err := Load(&cfg)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "Timeout", fieldErr.FieldName)
}

func TestLoad_Overflow(t *testing.T) {
	t.Setenv("EVT_PAGE_SIZE", "99999999999")

	var cfg appConf
	err := Load(&cfg)

	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestLoad_UnsupportedType(t *testing.T) {
	type conf struct {
		Hosts []string `env:"EVT_HOSTS" envDefault:"a,b"`
	}

	var cfg conf
	err := Load(&cfg)

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "[]string")
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		in   any
		msg  string
	}{
		{name: "nil", in: nil, msg: "got nil"},
		{name: "struct by value", in: appConf{}, msg: "got struct"},
		{name: "pointer to string", in: new(string), msg: "got pointer to string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Load(tt.in)

			var invalid *InvalidConfigError
			require.ErrorAs(t, err, &invalid)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad(appConf{}) })
	assert.NotPanics(t, func() { MustLoad(&appConf{}) })
}
