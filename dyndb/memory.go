package dyndb

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Captura as igualdades "#n = :v" geradas pelo pacote expression
var equalityRegex = regexp.MustCompile(`(#\w+)\s*=\s*(:\w+)`)

// MemoryClient é uma tabela DynamoDB em memória com chave simples (apenas
// hash key). Entende as expressões geradas pelo QueryBuilder e pelo Update:
// igualdades em key condition e filter, e SET em update expressions.
//
// Segue a semântica de paginação do DynamoDB: Limit conta itens avaliados
// antes do filtro e LastEvaluatedKey é devolvido sempre que o limite é
// atingido. Útil para testes e para rodar o serviço localmente.
type MemoryClient struct {
	mu      sync.RWMutex
	hashKey string
	order   []string
	items   map[string]map[string]types.AttributeValue
}

// NewMemoryClient cria uma tabela vazia cuja partition key é hashKey
func NewMemoryClient(hashKey string) *MemoryClient {
	return &MemoryClient{
		hashKey: hashKey,
		items:   make(map[string]map[string]types.AttributeValue),
	}
}

// Len retorna a quantidade de itens armazenados
func (m *MemoryClient) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

func (m *MemoryClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	k, err := m.keyOf(params.Key)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[k]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: maps.Clone(item)}, nil
}

func (m *MemoryClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	k, err := m.keyOf(params.Item)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[k]; !ok {
		m.order = append(m.order, k)
	}
	m.items[k] = maps.Clone(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (m *MemoryClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	k, err := m.keyOf(params.Key)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[k]; ok {
		delete(m.items, k)
		m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == k })
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (m *MemoryClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	k, err := m.keyOf(params.Key)
	if err != nil {
		return nil, err
	}

	update := aws.ToString(params.UpdateExpression)
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(update)), "SET") {
		return nil, fmt.Errorf("memory table: unsupported update expression %q", update)
	}
	assignments, err := parseEqualities(params.UpdateExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[k]
	if !ok {
		// UpdateItem cria o item quando a chave não existe
		item = maps.Clone(params.Key)
		m.order = append(m.order, k)
	}
	for _, a := range assignments {
		item[a.name] = a.value
	}
	m.items[k] = item
	return &dynamodb.UpdateItemOutput{}, nil
}

func (m *MemoryClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	keyConds, err := parseEqualities(params.KeyConditionExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	if len(keyConds) == 0 {
		return nil, fmt.Errorf("memory table: query requires a key condition")
	}
	filters, err := parseEqualities(params.FilterExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []map[string]types.AttributeValue
	for _, k := range m.order {
		item := m.items[k]
		if matchAll(item, keyConds) && matchAll(item, filters) {
			items = append(items, maps.Clone(item))
		}
	}

	out := &dynamodb.QueryOutput{Count: int32(len(items)), ScannedCount: int32(len(items))}
	if params.Select != types.SelectCount {
		out.Items = items
	}
	return out, nil
}

func (m *MemoryClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	filters, err := parseEqualities(params.FilterExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	start := 0
	if len(params.ExclusiveStartKey) > 0 {
		k, err := m.keyOf(params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		start = len(m.order)
		if i := slices.Index(m.order, k); i >= 0 {
			start = i + 1
		}
	}

	limit := len(m.order)
	if params.Limit != nil && int(*params.Limit) > 0 {
		limit = int(*params.Limit)
	}

	out := &dynamodb.ScanOutput{}
	var items []map[string]types.AttributeValue
	evaluated := 0
	for i := start; i < len(m.order) && evaluated < limit; i++ {
		evaluated++
		item := m.items[m.order[i]]
		if matchAll(item, filters) {
			items = append(items, maps.Clone(item))
		}
		if evaluated == limit && params.Limit != nil {
			out.LastEvaluatedKey = map[string]types.AttributeValue{m.hashKey: item[m.hashKey]}
		}
	}

	out.Count = int32(len(items))
	out.ScannedCount = int32(evaluated)
	if params.Select != types.SelectCount {
		out.Items = items
	}
	return out, nil
}

func (m *MemoryClient) keyOf(item map[string]types.AttributeValue) (string, error) {
	av, ok := item[m.hashKey]
	if !ok {
		return "", fmt.Errorf("memory table: missing key attribute %q", m.hashKey)
	}
	return attrString(av), nil
}

type equality struct {
	name  string
	value types.AttributeValue
}

func parseEqualities(expr *string, names map[string]string, values map[string]types.AttributeValue) ([]equality, error) {
	if expr == nil {
		return nil, nil
	}
	var result []equality
	for _, match := range equalityRegex.FindAllStringSubmatch(*expr, -1) {
		name, ok := names[match[1]]
		if !ok {
			return nil, fmt.Errorf("memory table: unknown attribute name %s", match[1])
		}
		value, ok := values[match[2]]
		if !ok {
			return nil, fmt.Errorf("memory table: unknown attribute value %s", match[2])
		}
		result = append(result, equality{name: name, value: value})
	}
	return result, nil
}

func matchAll(item map[string]types.AttributeValue, conds []equality) bool {
	for _, c := range conds {
		v, ok := item[c.name]
		if !ok || attrString(v) != attrString(c.value) {
			return false
		}
	}
	return true
}

// attrString gera uma representação comparável de um AttributeValue
func attrString(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return "S:" + v.Value
	case *types.AttributeValueMemberN:
		return "N:" + v.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("BOOL:%t", v.Value)
	case *types.AttributeValueMemberNULL:
		return "NULL"
	default:
		return fmt.Sprintf("%s:%v", reflect.TypeOf(av), av)
	}
}
