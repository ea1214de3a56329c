package dyndb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// === MÉTODOS FLUENTES ===

func (qb *QueryBuilder[T]) KeyEqual(key string, value any) *QueryBuilder[T] {
	cond := expression.KeyEqual(expression.Key(key), expression.Value(value))
	if qb.keyCond == nil {
		qb.keyCond = &cond
	} else {
		tmp := qb.keyCond.And(cond)
		qb.keyCond = &tmp
	}
	return qb
}

// FilterEqual aplica um filtro de igualdade exata no lado do DynamoDB
func (qb *QueryBuilder[T]) FilterEqual(field string, value any) *QueryBuilder[T] {
	cond := expression.Equal(expression.Name(field), expression.Value(value))
	if qb.filterCond == nil {
		qb.filterCond = &cond
	} else {
		tmp := qb.filterCond.And(cond)
		qb.filterCond = &tmp
	}
	return qb
}

// Limit define o máximo de itens avaliados por página (não por resultado filtrado)
func (qb *QueryBuilder[T]) Limit(n int32) *QueryBuilder[T] {
	if n > 0 {
		qb.limit = &n
	}
	return qb
}

// StartKey retoma a leitura a partir do LastEvaluatedKey devolvido pelo Exec
// anterior. Chave vazia significa primeira página.
func (qb *QueryBuilder[T]) StartKey(key map[string]types.AttributeValue) *QueryBuilder[T] {
	if len(key) > 0 {
		qb.lastKey = key
	}
	return qb
}

// Query inicia uma Query
func (s *dynamoStore[T]) Query() *QueryBuilder[T] {
	return &QueryBuilder[T]{store: s}
}

// Scan inicia um Scan
func (s *dynamoStore[T]) Scan() *QueryBuilder[T] {
	return &QueryBuilder[T]{store: s, isScan: true}
}

// Exec executa uma página da consulta e devolve os itens e o LastEvaluatedKey
// (vazio quando não há mais páginas). A chave volta sem conversão para ser
// passada ao StartKey da próxima chamada.
func (qb *QueryBuilder[T]) Exec(ctx context.Context) ([]T, map[string]types.AttributeValue, error) {
	expr, err := qb.build()
	if err != nil {
		return nil, nil, err
	}

	if qb.isScan || qb.keyCond == nil {
		out, err := qb.store.client.Scan(ctx, qb.scanInput(expr, ""))
		if err != nil {
			return nil, nil, err
		}
		return unmarshalResults[T](out.Items, out.LastEvaluatedKey)
	}

	out, err := qb.store.client.Query(ctx, qb.queryInput(expr, ""))
	if err != nil {
		return nil, nil, err
	}
	return unmarshalResults[T](out.Items, out.LastEvaluatedKey)
}

// Count executa a consulta com Select=COUNT, percorrendo todas as páginas
func (qb *QueryBuilder[T]) Count(ctx context.Context) (int32, error) {
	expr, err := qb.build()
	if err != nil {
		return 0, err
	}

	var total int32
	startKey := qb.lastKey
	for {
		var (
			count   int32
			lastKey map[string]types.AttributeValue
		)
		if qb.isScan || qb.keyCond == nil {
			in := qb.scanInput(expr, types.SelectCount)
			in.ExclusiveStartKey = startKey
			out, err := qb.store.client.Scan(ctx, in)
			if err != nil {
				return 0, err
			}
			count, lastKey = out.Count, out.LastEvaluatedKey
		} else {
			in := qb.queryInput(expr, types.SelectCount)
			in.ExclusiveStartKey = startKey
			out, err := qb.store.client.Query(ctx, in)
			if err != nil {
				return 0, err
			}
			count, lastKey = out.Count, out.LastEvaluatedKey
		}

		total += count
		if len(lastKey) == 0 {
			return total, nil
		}
		startKey = lastKey
	}
}

func (qb *QueryBuilder[T]) build() (expression.Expression, error) {
	if qb.keyCond == nil && qb.filterCond == nil {
		// Build falha com builder vazio; scan sem filtro não precisa de expressão
		return expression.Expression{}, nil
	}

	builder := expression.NewBuilder()
	if qb.keyCond != nil {
		builder = builder.WithKeyCondition(*qb.keyCond)
	}
	if qb.filterCond != nil {
		builder = builder.WithFilter(*qb.filterCond)
	}
	return builder.Build()
}

func (qb *QueryBuilder[T]) queryInput(expr expression.Expression, sel types.Select) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:                 aws.String(qb.store.cfg.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ExclusiveStartKey:         qb.lastKey,
		ConsistentRead:            aws.Bool(qb.store.cfg.ConsistentRead),
		Select:                    sel,
	}
}

func (qb *QueryBuilder[T]) scanInput(expr expression.Expression, sel types.Select) *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		TableName:                 aws.String(qb.store.cfg.TableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ExclusiveStartKey:         qb.lastKey,
		ConsistentRead:            aws.Bool(qb.store.cfg.ConsistentRead),
		Select:                    sel,
	}
}

func unmarshalResults[T any](
	items []map[string]types.AttributeValue,
	lastKey map[string]types.AttributeValue,
) ([]T, map[string]types.AttributeValue, error) {
	result := make([]T, 0, len(items))
	for _, item := range items {
		var t T
		if err := attributevalue.UnmarshalMap(item, &t); err != nil {
			return nil, nil, fmt.Errorf("dynamostore: unmarshal failed: %w", err)
		}
		result = append(result, t)
	}
	return result, lastKey, nil
}
