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
// Package eventservice é uma API HTTP de CRUD para o recurso Event (id, title)
// sobre uma tabela DynamoDB com partition key "id".
//
// Sub-pacotes:
//
//  1. dyndb: Store[T] genérico e tipado sobre o SDK v2 do DynamoDB, com
//     QueryBuilder, cursor de paginação (LastEvaluatedKey) e uma tabela em memória para testes.
//  2. envloader: carregamento de variáveis de ambiente para structs.
//  3. pkg/events: modelo Event e o Service (list, create, get, delete, update title).
//  4. pkg/handlers: rotas gorilla/mux e mapeamento de respostas.
//  5. pkg/transport: servidor HTTP, adaptador API Gateway para Lambda,
//     middleware de observabilidade e hot reload via SQS.
//  6. pkg/config, pkg/logger, pkg/metrics, pkg/observability: configuração,
//     zerolog e métricas Datadog.
//
// O binário fica em cmd/server. Rodando localmente com a tabela em memória:
//
//	DYNAMO_TABLE_NAME=events DYNAMODB_ENDPOINT=memory go run ./cmd/server
//	curl -XPOST localhost:8080/events -d '{"id":"1","title":"launch"}'
package eventservice
