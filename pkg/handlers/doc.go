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
// Package handlers expõe o events.Service via HTTP usando gorilla/mux.
//
// Rotas:
//
//	GET    /events?title=T   lista (filtro exato opcional)
//	POST   /events           cria {id, title}
//	GET    /events/{id}      busca
//	DELETE /events/{id}      remove
//	PUT    /events/{id}/title altera o título {title}
//	GET    /health
//
// Sucesso responde 200 {"error": false, ...}. Qualquer falha responde
// 400 {"error": true, "message": "..."}.
package handlers
