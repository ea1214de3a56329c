package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/event-service/dyndb"
	"github.com/raywall/event-service/envloader"
	"github.com/raywall/event-service/pkg/config/injector"
	"gopkg.in/yaml.v3"
)

// SourceEnv é a variável com a origem do arquivo de configuração.
// Aceita caminho local (ou file://), s3://bucket/key e
// dynamodb://tabela/chave?col=config&pk=id.
const SourceEnv = "CONFIG_FILE_PATH"

// --- Interfaces para Mocking ---

type S3Downloader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}


// Loader monta o AppConfig: defaults e env, arquivo opcional, env de novo
// por cima do arquivo, placeholders e validação.
type Loader struct {
	s3        S3Downloader
	dynamo    dyndb.DynamoDBClient
	injector  *injector.Injector
	validator *ConfigValidator
}

// NewLoader cria o Loader com clientes reais a partir da config da AWS
func NewLoader(awsCfg aws.Config) *Loader {
	return &Loader{
		s3:        s3.NewFromConfig(awsCfg),
		dynamo:    dynamodb.NewFromConfig(awsCfg),
		injector:  injector.NewFromConfig(awsCfg),
		validator: NewValidator(),
	}
}

// NewLoaderWithClients permite injetar clientes (testes e ambientes locais)
func NewLoaderWithClients(s3Client S3Downloader, dynamo dyndb.DynamoDBClient, inj *injector.Injector) *Loader {
	if inj == nil {
		inj = injector.New(nil, nil)
	}
	return &Loader{s3: s3Client, dynamo: dynamo, injector: inj, validator: NewValidator()}
}

// Load carrega a configuração. source vazio usa apenas o ambiente.
func (l *Loader) Load(ctx context.Context, source string) (*AppConfig, error) {
	var cfg AppConfig
	if err := envloader.Load(&cfg); err != nil {
		return nil, fmt.Errorf("falha lendo variáveis de ambiente: %w", err)
	}

	if source != "" {
		raw, err := l.read(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("falha leitura config (%s): %w", source, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("YAML malformado: %w", err)
		}
		if err := envloader.Overlay(&cfg); err != nil {
			return nil, fmt.Errorf("falha lendo variáveis de ambiente: %w", err)
		}
	}

	if err := l.injector.Inject(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("falha na injeção de variáveis: %w", err)
	}

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validação da configuração falhou: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "s3://"):
		return l.readS3(ctx, source)
	case strings.HasPrefix(source, "dynamodb://"):
		return l.readDynamo(ctx, source)
	default:
		return os.ReadFile(strings.TrimPrefix(source, "file://"))
	}
}

func (l *Loader) readS3(ctx context.Context, uri string) ([]byte, error) {
	if l.s3 == nil {
		return nil, fmt.Errorf("cliente S3 não configurado")
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL S3 inválida: %w", err)
	}

	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.Host),
		Key:    aws.String(strings.TrimPrefix(u.Path, "/")),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// readDynamo lê o YAML salvo em um atributo string de um item
func (l *Loader) readDynamo(ctx context.Context, uri string) ([]byte, error) {
	if l.dynamo == nil {
		return nil, fmt.Errorf("cliente DynamoDB não configurado")
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL DynamoDB inválida: %w", err)
	}

	col := u.Query().Get("col")
	if col == "" {
		col = "config"
	}
	pk := u.Query().Get("pk")
	if pk == "" {
		pk = "id"
	}

	if u.Host == "" {
		return nil, fmt.Errorf("URL DynamoDB sem tabela: %s", uri)
	}
	store, err := dyndb.New(l.dynamo, dyndb.TableConfig[map[string]any]{TableName: u.Host, HashKey: pk})
	if err != nil {
		return nil, err
	}
	item, err := store.Get(ctx, strings.TrimPrefix(u.Path, "/"))
	if errors.Is(err, dyndb.ErrNotFound) {
		return nil, fmt.Errorf("item não encontrado no DynamoDB: %w", err)
	}
	if err != nil {
		return nil, err
	}

	content, ok := (*item)[col].(string)
	if !ok || content == "" {
		return nil, fmt.Errorf("coluna '%s' inválida ou vazia no DynamoDB", col)
	}
	return []byte(content), nil
}
