package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/event-service/dyndb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockS3Loader struct {
	GetObjectFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func (m *MockS3Loader) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.GetObjectFunc(ctx, params, optFns...)
}


const sampleYAML = `
runtime: local
port: 9000
request_timeout: 5s
table:
  name: events-from-file
  page_size: 50
aws:
  region: sa-east-1
logging:
  enabled: true
  level: debug
  format: console
`

// resetEnv garante que o ambiente da máquina não interfira nos testes
func resetEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SERVICE_RUNTIME", "PORT", "REQUEST_TIMEOUT", "DYNAMO_TABLE_NAME", "DYNAMODB_HASH_KEY",
		"DYNAMODB_CONSISTENT_READ", "DYNAMODB_PAGE_SIZE", "AWS_REGION", "DYNAMODB_ENDPOINT",
		"LOG_ENABLED", "LOG_LEVEL", "LOG_FORMAT", "DD_ENABLED", "DD_AGENT_HOST", "DD_NAMESPACE",
		"CONFIG_RELOAD_QUEUE_URL",
	} {
		t.Setenv(name, "")
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EnvOnly(t *testing.T) {
	resetEnv(t)
	t.Setenv("DYNAMO_TABLE_NAME", "events")

	cfg, err := NewLoaderWithClients(nil, nil, nil).Load(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Runtime)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "events", cfg.Table.Name)
	assert.Equal(t, "id", cfg.Table.HashKey)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Datadog.Enabled)
}

func TestLoad_FileWithEnvPrecedence(t *testing.T) {
	resetEnv(t)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := NewLoaderWithClients(nil, nil, nil).Load(context.Background(), "file://"+writeTemp(t, sampleYAML))

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "events-from-file", cfg.Table.Name)
	assert.Equal(t, "id", cfg.Table.HashKey, "default kept when the file omits the field")
	assert.Equal(t, int32(50), cfg.Table.PageSize)
	assert.Equal(t, "sa-east-1", cfg.AWS.Region)
	assert.Equal(t, "warn", cfg.Logging.Level, "env must win over the file")
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_Placeholders(t *testing.T) {
	resetEnv(t)
	t.Setenv("EVT_STAGE", "dev")

	path := writeTemp(t, "table:\n  name: events-${env.EVT_STAGE}\n")
	cfg, err := NewLoaderWithClients(nil, nil, nil).Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "events-dev", cfg.Table.Name)
}

func TestLoad_FromS3(t *testing.T) {
	resetEnv(t)

	mockS3 := &MockS3Loader{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			assert.Equal(t, "config-bucket", aws.ToString(params.Bucket))
			assert.Equal(t, "events/config.yaml", aws.ToString(params.Key))
			return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(sampleYAML))}, nil
		},
	}

	cfg, err := NewLoaderWithClients(mockS3, nil, nil).Load(context.Background(), "s3://config-bucket/events/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, "events-from-file", cfg.Table.Name)
}

func TestLoad_FromDynamoDB(t *testing.T) {
	resetEnv(t)

	mockDynamo := &dyndb.MockDynamoClient{
		GetItemFn: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			assert.Equal(t, "configs", aws.ToString(params.TableName))
			assert.Equal(t, &types.AttributeValueMemberS{Value: "event-service"}, params.Key["service"])
			return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
				"service": &types.AttributeValueMemberS{Value: "event-service"},
				"yaml":    &types.AttributeValueMemberS{Value: sampleYAML},
			}}, nil
		},
	}

	cfg, err := NewLoaderWithClients(nil, mockDynamo, nil).Load(context.Background(), "dynamodb://configs/event-service?col=yaml&pk=service")

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
}

func TestLoad_Errors(t *testing.T) {
	resetEnv(t)

	mockS3 := &MockS3Loader{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return nil, errors.New("AccessDenied")
		},
	}
	mockDynamo := &dyndb.MockDynamoClient{
		GetItemFn: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		},
	}
	loader := NewLoaderWithClients(mockS3, mockDynamo, nil)
	ctx := context.Background()

	_, err := loader.Load(ctx, "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr, "table name is required")
	assert.Contains(t, vErr.Error(), "AppConfig.Table.Name")

	_, err = loader.Load(ctx, "s3://bucket/key.yaml")
	assert.ErrorContains(t, err, "AccessDenied")

	_, err = loader.Load(ctx, "dynamodb://configs/missing")
	assert.ErrorContains(t, err, "item não encontrado")
	assert.ErrorIs(t, err, dyndb.ErrNotFound)

	_, err = loader.Load(ctx, "dynamodb:///missing")
	assert.ErrorContains(t, err, "sem tabela")

	_, err = loader.Load(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = loader.Load(ctx, writeTemp(t, "table: [unclosed"))
	assert.ErrorContains(t, err, "YAML malformado")
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	resetEnv(t)
	t.Setenv("DYNAMO_TABLE_NAME", "events")
	t.Setenv("REQUEST_TIMEOUT", "forever")

	_, err := NewLoaderWithClients(nil, nil, nil).Load(context.Background(), "")

	assert.ErrorContains(t, err, "REQUEST_TIMEOUT")
}
