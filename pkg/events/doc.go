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
// Package events implementa o acesso à tabela de eventos no DynamoDB.
//
// O Service encapsula um dyndb.Store[Event] construído uma única vez no
// bootstrap e compartilhado por todas as requisições. Cada operação recebe o
// context da requisição:
//
//	store, err := dyndb.New(client, dyndb.TableConfig[events.Event]{TableName: "events"})
//	if err != nil {
//	    return err
//	}
//	svc := events.NewService(store, events.WithPageSize(100))
//
//	msg, err := svc.Create(ctx, events.NewEvent("1", "launch"))
//	if errors.Is(err, events.ErrConflict) {
//	    // já existe um evento com esse id
//	}
//
// As verificações de existência em Create, Delete e UpdateTitle são feitas
// com uma consulta antes da escrita, sem escrita condicional.
package events
