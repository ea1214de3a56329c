// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/raywall/event-service/dyndb"
	"github.com/raywall/event-service/pkg/config"
	"github.com/raywall/event-service/pkg/events"
	"github.com/raywall/event-service/pkg/handlers"
	"github.com/raywall/event-service/pkg/logger"
	"github.com/raywall/event-service/pkg/metrics"
	"github.com/raywall/event-service/pkg/observability"
	"github.com/raywall/event-service/pkg/transport"
	"github.com/rs/zerolog/log"
)

// memoryEndpoint troca o DynamoDB pela tabela em memória
const memoryEndpoint = "memory"

var (
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Getenv(config.SourceEnv)); err != nil {
		log.Fatal().Err(err).Msg("falha na inicialização")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, source string) error {
	awsCfg, err := config.NewAWSConfig(ctx, os.Getenv("AWS_REGION"))
	if err != nil {
		return fmt.Errorf("aws config: %w", err)
	}

	loader := config.NewLoader(awsCfg)
	cfg, err := loader.Load(ctx, source)
	if err != nil {
		return err
	}
	if cfg.AWS.Region != "" {
		awsCfg.Region = cfg.AWS.Region
	}

	logger.Configure(cfg.Logging)

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return err
	}
	if c, ok := provider.(io.Closer); ok {
		defer c.Close()
	}

	store, err := dyndb.New(newDynamoClient(awsCfg, cfg), dyndb.TableConfig[events.Event]{
		TableName:      cfg.Table.Name,
		HashKey:        cfg.Table.HashKey,
		ConsistentRead: cfg.Table.ConsistentRead,
	})
	if err != nil {
		return fmt.Errorf("falha ao criar store: %w", err)
	}
	svc := events.NewService(store, events.WithPageSize(cfg.Table.PageSize))

	router := handlers.NewRouter(svc, observability.MetricsMiddleware(metrics.NewRecorder(provider, nil)))
	handler := transport.ObservabilityMiddleware(transport.TimeoutMiddleware(cfg.RequestTimeout)(router))

	log.Info().
		Str("runtime", cfg.Runtime).
		Str("table", cfg.Table.Name).
		Msg("event-service inicializado")

	switch cfg.Runtime {
	case "lambda":
		lambdaStarter(transport.NewLambdaHandler(handler).Handle)
		return nil
	default:
		if cfg.Reload.QueueURL != "" {
			reloader := transport.NewSQSReloader(sqs.NewFromConfig(awsCfg), cfg.Reload.QueueURL, levelReloader(loader, source))
			go reloader.Start(ctx)
		}
		return serverStarter(ctx, cfg.Port, handler)
	}
}

func newDynamoClient(awsCfg aws.Config, cfg *config.AppConfig) dyndb.DynamoDBClient {
	switch cfg.AWS.Endpoint {
	case "":
		return dynamodb.NewFromConfig(awsCfg)
	case memoryEndpoint:
		log.Warn().Msg("usando tabela em memória; os dados não são persistidos")
		return dyndb.NewMemoryClient(cfg.Table.HashKey)
	default:
		return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
		})
	}
}

// levelReloader relê a configuração e aplica só o nível de log, que pode
// ser trocado com o servidor rodando.
func levelReloader(loader *config.Loader, source string) transport.Reloader {
	return transport.ReloaderFunc(func(ctx context.Context) error {
		next, err := loader.Load(ctx, source)
		if err != nil {
			return err
		}
		logger.SetLevel(next.Logging.Level)
		log.Info().Str("level", next.Logging.Level).Msg("nível de log atualizado")
		return nil
	})
}
