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
// Package config define o AppConfig do serviço e o Loader que o monta.
//
// Ordem de carga:
//  1. defaults e variáveis de ambiente (envloader, tags env/envDefault);
//  2. arquivo YAML opcional indicado por CONFIG_FILE_PATH (local, s3:// ou dynamodb://);
//  3. variáveis de ambiente de novo, para prevalecerem sobre o arquivo;
//  4. placeholders ${env.X}, ${ssm./path} e ${secret.id} nos campos string;
//  5. validação com validator/v10.
package config
