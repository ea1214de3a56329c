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
package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrNotFound – erro padrão quando o item não existe
var ErrNotFound = errors.New("dyndb: item not found")

// ErrNoTable é retornado pelo New quando nem cfg nem o ambiente informam a tabela
var ErrNoTable = errors.New("dyndb: table name not configured")

// DynamoDBClient interface para abstrair o cliente DynamoDB.
// *dynamodb.Client satisfaz esta interface.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store — interface principal (genérica)
type Store[T any] interface {
	Get(ctx context.Context, hashKey any) (*T, error)
	Put(ctx context.Context, item T) error
	Delete(ctx context.Context, hashKey any) error

	// Update aplica SET em cada atributo de fields, sem tocar nos demais
	Update(ctx context.Context, hashKey any, fields map[string]any) error

	// Query e Scan retornam QueryBuilder[T]
	Query() *QueryBuilder[T]
	Scan() *QueryBuilder[T]
}

// TableConfig — configuração da tabela
type TableConfig[T any] struct {
	TableName      string `env:"DYNAMO_TABLE_NAME"`
	HashKey        string `env:"DYNAMODB_HASH_KEY" envDefault:"id"`
	ConsistentRead bool   `env:"DYNAMODB_CONSISTENT_READ"`
}

// QueryBuilder — o builder fluente
type QueryBuilder[T any] struct {
	store      *dynamoStore[T]
	keyCond    *expression.KeyConditionBuilder
	filterCond *expression.ConditionBuilder
	limit      *int32
	lastKey    map[string]types.AttributeValue
	isScan     bool
}
