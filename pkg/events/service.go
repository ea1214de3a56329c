package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/event-service/dyndb"
	"github.com/rs/zerolog"
)

// Option configura o Service
type Option func(*Service)

// WithPageSize define o Limit de cada página do scan. Zero deixa o DynamoDB decidir.
func WithPageSize(n int32) Option {
	return func(s *Service) {
		if n > 0 {
			s.repo.pageSize = n
		}
	}
}

// Service expõe as operações sobre eventos. É imutável depois de criado.
type Service struct {
	repo *repository
}

func NewService(store dyndb.Store[Event], opts ...Option) *Service {
	s := &Service{repo: &repository{store: store}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List percorre todas as páginas do scan e acumula os eventos na ordem do
// armazenamento. Devolve ErrNoItems quando a primeira página vem vazia e sem
// LastEvaluatedKey.
func (s *Service) List(ctx context.Context, params QueryParams) ([]Event, error) {
	logger := zerolog.Ctx(ctx)

	var (
		all    []Event
		cursor map[string]types.AttributeValue
		pages  int
	)
	for {
		items, next, err := s.repo.page(ctx, params.Title, cursor)
		if err != nil {
			return nil, storeErr("list events", err)
		}
		pages++
		if pages == 1 && len(items) == 0 && len(next) == 0 {
			return nil, ErrNoItems
		}
		all = append(all, items...)
		if len(next) == 0 {
			break
		}
		cursor = next
	}

	logger.Debug().Int("pages", pages).Int("count", len(all)).Msg("events listed")
	return all, nil
}

func (s *Service) Create(ctx context.Context, e Event) (string, error) {
	found, err := s.repo.exists(ctx, e.ID)
	if err != nil {
		return "", storeErr("check event", err)
	}
	if found {
		return "", ErrConflict
	}
	if err := s.repo.put(ctx, e); err != nil {
		return "", storeErr("put event", err)
	}

	zerolog.Ctx(ctx).Info().Str("event_id", e.ID).Msg("event created")
	return "event added.", nil
}

// Get devolve o primeiro item da consulta pela chave
func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	items, err := s.repo.find(ctx, id)
	if err != nil {
		return Event{}, storeErr("get event", err)
	}
	if len(items) == 0 {
		return Event{}, notFound("Event does not exist for id:%s!", id)
	}
	return items[0], nil
}

func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	found, err := s.repo.exists(ctx, id)
	if err != nil {
		return "", storeErr("check event", err)
	}
	if !found {
		return "", notFound("Event does not exist for id: %s!", id)
	}
	if err := s.repo.delete(ctx, id); err != nil {
		return "", storeErr("delete event", err)
	}

	zerolog.Ctx(ctx).Info().Str("event_id", id).Msg("event deleted")
	return fmt.Sprintf("event for id: %s deleted.", id), nil
}

// UpdateTitle altera só o atributo title; o id não é tocado.
func (s *Service) UpdateTitle(ctx context.Context, id, title string) (string, error) {
	found, err := s.repo.exists(ctx, id)
	if err != nil {
		return "", storeErr("check event", err)
	}
	if !found {
		return "", notFound("Event does not exist for id: %s!", id)
	}
	if err := s.repo.setTitle(ctx, id, title); err != nil {
		return "", storeErr("update event", err)
	}

	zerolog.Ctx(ctx).Info().Str("event_id", id).Msg("event title updated")
	return fmt.Sprintf("Event title for id: %s changed to %s", id, title), nil
}
