package config

import "time"

// AppConfig é a configuração completa do serviço. Cada campo pode vir do
// arquivo YAML ou de variáveis de ambiente; o ambiente tem precedência.
type AppConfig struct {
	Runtime        string        `yaml:"runtime" env:"SERVICE_RUNTIME" envDefault:"local" validate:"required,oneof=local lambda"`
	Port           int           `yaml:"port" env:"PORT" envDefault:"8080" validate:"required_if=Runtime local,gte=0,lte=65535"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	Table          TableConf     `yaml:"table"`
	AWS            AWSConf       `yaml:"aws"`
	Logging        LoggingConf   `yaml:"logging"`
	Metrics        MetricsConf   `yaml:"metrics"`
	Reload         ReloadConf    `yaml:"reload"`
}

type TableConf struct {
	Name           string `yaml:"name" env:"DYNAMO_TABLE_NAME" validate:"required"`
	HashKey        string `yaml:"hash_key" env:"DYNAMODB_HASH_KEY" envDefault:"id" validate:"required"`
	ConsistentRead bool   `yaml:"consistent_read" env:"DYNAMODB_CONSISTENT_READ"`
	// PageSize é o Limit de cada página do scan; 0 usa o padrão do DynamoDB
	PageSize int32 `yaml:"page_size" env:"DYNAMODB_PAGE_SIZE" validate:"gte=0"`
}

type AWSConf struct {
	Region string `yaml:"region" env:"AWS_REGION"`
	// Endpoint aponta para um DynamoDB local. "memory" usa a tabela em memória.
	Endpoint string `yaml:"endpoint" env:"DYNAMODB_ENDPOINT" validate:"omitempty,url|eq=memory"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"LOG_ENABLED" envDefault:"true"`
	Level   string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"event_service."`
}

// ReloadConf habilita o hot reload de logging via fila SQS.
type ReloadConf struct {
	QueueURL string `yaml:"queue_url" env:"CONFIG_RELOAD_QUEUE_URL" validate:"omitempty,url"`
}
