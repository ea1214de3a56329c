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
//
// Package dyndb fornece uma abstração genérica e fortemente tipada sobre o
// AWS DynamoDB Go SDK (v2).
//
// Visão Geral:
// O pacote `dyndb` oferece a interface `Store[T]`, que simplifica as operações
// de leitura e escrita por chave, eliminando a necessidade de lidar
// diretamente com os tipos de baixo nível do SDK (AttributeValue, etc.).
//
// O `QueryBuilder[T]` permite construir consultas (`Query` e `Scan`) de forma
// fluente, abstraindo as Expression Builders do SDK.
//
// Funcionalidades Principais:
//   - Operações Tipadas: `Get`, `Put`, `Delete` e `Update` (SET parcial).
//   - Builder Fluente: `Scan().FilterEqual(...).StartKey(key).Exec(ctx)`.
//   - Paginação: `Exec` devolve o `LastEvaluatedKey` sem conversão; chave
//     vazia significa que não há mais páginas.
//   - Contagem: `Query().KeyEqual(...).Count(ctx)` usa Select=COUNT.
//   - Testes: `MockDynamoClient` (funções por operação) e `MemoryClient`
//     (tabela em memória com paginação real).
//
// Exemplo:
//
//	type Event struct {
//		ID    string `dynamodbav:"id"`
//		Title string `dynamodbav:"title"`
//	}
//
//	store, err := dyndb.New(client, dyndb.TableConfig[Event]{TableName: "events", HashKey: "id"})
//	if err != nil {
//		return err
//	}
//
//	var all []Event
//	var cursor map[string]types.AttributeValue
//	for {
//		page, next, err := store.Scan().FilterEqual("title", "Go").StartKey(cursor).Exec(ctx)
//		if err != nil {
//			return err
//		}
//		all = append(all, page...)
//		if len(next) == 0 {
//			break
//		}
//		cursor = next
//	}
package dyndb
