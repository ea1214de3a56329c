package transport

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SQSClient define a interface necessária para o reloader (permite Mocking)
type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Reloader é chamado a cada mensagem recebida na fila
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloaderFunc adapta uma função para Reloader
type ReloaderFunc func(ctx context.Context) error

func (f ReloaderFunc) Reload(ctx context.Context) error { return f(ctx) }

// SQSReloader escuta uma fila SQS e dispara o Reloader a cada mensagem.
type SQSReloader struct {
	client     SQSClient
	queueURL   string
	reloader   Reloader
	logger     zerolog.Logger
	retryDelay time.Duration
	waitTime   int32
}

func NewSQSReloader(client SQSClient, queueURL string, reloader Reloader) *SQSReloader {
	return &SQSReloader{
		client:     client,
		queueURL:   queueURL,
		reloader:   reloader,
		logger:     log.With().Str("component", "sqs_reloader").Logger(),
		retryDelay: 5 * time.Second,
		waitTime:   20,
	}
}

// Start bloqueia até ctx ser cancelado
func (s *SQSReloader) Start(ctx context.Context) {
	if s.queueURL == "" {
		s.logger.Warn().Msg("URL da fila SQS não configurada. Hot reload desativado.")
		return
	}

	s.logger.Info().Str("queue", s.queueURL).Msg("monitorando fila SQS para hot reload")

	for {
		if ctx.Err() != nil {
			s.logger.Info().Msg("parando monitoramento SQS")
			return
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueURL),
			MaxNumberOfMessages: 1,
			WaitTimeSeconds:     s.waitTime,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Error().Err(err).Dur("retry_in", s.retryDelay).Msg("erro no SQS")
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.retryDelay):
			}
			continue
		}

		for _, msg := range out.Messages {
			if err := s.reloader.Reload(ctx); err != nil {
				s.logger.Error().Err(err).Msg("falha no reload")
			} else {
				s.logger.Info().Msg("hot reload aplicado")
			}

			_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(s.queueURL),
				ReceiptHandle: msg.ReceiptHandle,
			})
			if err != nil {
				s.logger.Warn().Err(err).Msg("falha ao remover mensagem da fila")
			}
		}
	}
}
