package dyndb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/event-service/envloader"
)

type dynamoStore[T any] struct {
	client DynamoDBClient
	cfg    TableConfig[T]
}

// New cria um store reutilizável. Se o nome da tabela não for informado,
// a configuração é lida das variáveis de ambiente (DYNAMO_TABLE_NAME, ...).
//
// O store não guarda estado mutável e pode ser compartilhado entre goroutines.
func New[T any](client DynamoDBClient, cfg TableConfig[T]) (Store[T], error) {
	if cfg.TableName == "" {
		if err := envloader.Load(&cfg); err != nil {
			return nil, fmt.Errorf("dynamostore: table config: %w", err)
		}
	}
	if cfg.TableName == "" {
		return nil, ErrNoTable
	}
	if cfg.HashKey == "" {
		cfg.HashKey = "id"
	}

	return &dynamoStore[T]{
		client: client,
		cfg:    cfg,
	}, nil
}

// Get item por chave primária
func (s *dynamoStore[T]) Get(ctx context.Context, hashKey any) (*T, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.cfg.TableName),
		Key:            s.key(hashKey),
		ConsistentRead: aws.Bool(s.cfg.ConsistentRead),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("dynamostore: unmarshal failed: %w", err)
	}
	return &item, nil
}

// Put item (upsert incondicional)
func (s *dynamoStore[T]) Put(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dynamostore: marshal failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.cfg.TableName),
		Item:      av,
	})
	if err != nil {
		return err
	}
	return nil
}

// Delete item
func (s *dynamoStore[T]) Delete(ctx context.Context, hashKey any) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.cfg.TableName),
		Key:       s.key(hashKey),
	})
	if err != nil {
		return err
	}
	return nil
}

// Update atualização parcial via UpdateItem (SET attr = :value)
func (s *dynamoStore[T]) Update(ctx context.Context, hashKey any, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("dynamostore: update without fields")
	}

	// ordena para gerar sempre a mesma expressão
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var update expression.UpdateBuilder
	for i, name := range names {
		if i == 0 {
			update = expression.Set(expression.Name(name), expression.Value(fields[name]))
			continue
		}
		update = update.Set(expression.Name(name), expression.Value(fields[name]))
	}

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("dynamostore: build update failed: %w", err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.cfg.TableName),
		Key:                       s.key(hashKey),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return err
	}
	return nil
}

// key monta a chave primária; sortKey só entra se a tabela tiver SK
func (s *dynamoStore[T]) key(hashKey any) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{s.cfg.HashKey: attr(hashKey)}
}

// attr converte qualquer valor para types.AttributeValue
func attr(v any) types.AttributeValue {
	if v == nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	return av
}
