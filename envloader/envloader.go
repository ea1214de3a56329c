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
package envloader

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Load preenche uma struct com valores de variáveis de ambiente
// baseado nas tags "env" e "envDefault".
func Load(config any) error {
	return apply(config, true)
}

// Overlay aplica apenas as variáveis de ambiente definidas, ignorando
// "envDefault". Campos sem variável correspondente mantêm o valor atual,
// o que permite sobrepor o env a uma config já carregada de arquivo.
func Overlay(config any) error {
	return apply(config, false)
}

// MustLoad é similar ao Load, mas panic em caso de erro
func MustLoad(config any) {
	if err := Load(config); err != nil {
		panic(err)
	}
}

func apply(config any, withDefaults bool) error {
	val := reflect.ValueOf(config)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: reflect.TypeOf(config)}
	}
	return walk(val.Elem(), withDefaults)
}

func walk(val reflect.Value, withDefaults bool) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		sf := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		switch {
		case field.Kind() == reflect.Struct:
			if err := walk(field, withDefaults); err != nil {
				return err
			}
			continue
		case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			if err := walk(field.Elem(), withDefaults); err != nil {
				return err
			}
			continue
		}

		name := sf.Tag.Get("env")
		if name == "" {
			continue
		}

		raw, ok := os.LookupEnv(name)
		if !ok || raw == "" {
			if !withDefaults {
				continue
			}
			raw = sf.Tag.Get("envDefault")
		}
		if raw == "" {
			continue
		}

		if err := setFieldValue(field, raw); err != nil {
			return &FieldError{
				FieldName: sf.Name,
				EnvVar:    name,
				Value:     raw,
				Err:       err,
			}
		}
	}

	return nil
}

// setFieldValue converte o texto para o tipo do campo.
func setFieldValue(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}
