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
// Package envloader carrega variáveis de ambiente para campos de uma struct
// usando as tags `env` e `envDefault`.
//
// Tipos suportados: string, int*, uint*, bool, float* e time.Duration
// (formato de time.ParseDuration, ex: "30s"). Structs aninhadas e ponteiros
// para struct são percorridos recursivamente.
//
// Load aplica env e defaults. Overlay aplica somente as variáveis presentes,
// útil para sobrepor o ambiente a uma config lida de arquivo:
//
//	type Config struct {
//	    Table   string        `env:"DYNAMO_TABLE_NAME"`
//	    Port    int           `env:"PORT" envDefault:"8080"`
//	    Timeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg Config
//	if err := envloader.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
package envloader
