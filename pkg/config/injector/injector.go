package injector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.API_KEY}, ${ssm./app/table}, ${secret.dd_api_key}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// ErrClientMissing indica um placeholder ssm/secret sem cliente configurado.
var ErrClientMissing = errors.New("injector: aws client not configured")

// Interfaces para abstrair o SDK da AWS (permite mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Injector resolve placeholders em campos string de uma struct.
type Injector struct {
	ssm     SSMClient
	secrets SecretsClient
}

// New cria um Injector. Os clientes podem ser nil quando só ${env.} é usado.
func New(ssmClient SSMClient, secretsClient SecretsClient) *Injector {
	return &Injector{ssm: ssmClient, secrets: secretsClient}
}

// NewFromConfig cria o Injector com os clientes reais da AWS
func NewFromConfig(cfg aws.Config) *Injector {
	return New(ssm.NewFromConfig(cfg), secretsmanager.NewFromConfig(cfg))
}

func (i *Injector) Inject(ctx context.Context, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("injector: target deve ser um ponteiro para struct não nulo")
	}
	return i.walk(ctx, v.Elem())
}

func (i *Injector) walk(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			field := v.Field(k)
			if !field.CanSet() {
				continue
			}
			if err := i.walk(ctx, field); err != nil {
				return fmt.Errorf("%s: %w", v.Type().Field(k).Name, err)
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		out, err := i.interpolate(ctx, v.String())
		if err != nil {
			return err
		}
		v.SetString(out)

	case reflect.Ptr:
		if !v.IsNil() {
			return i.walk(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.walk(ctx, v.Index(j)); err != nil {
				return err
			}
		}

	case reflect.Map:
		if v.IsNil() || v.Type().Key().Kind() != reflect.String || v.Type().Elem().Kind() != reflect.String {
			return nil
		}
		iter := v.MapRange()
		updates := make(map[string]string)
		for iter.Next() {
			out, err := i.interpolate(ctx, iter.Value().String())
			if err != nil {
				return err
			}
			updates[iter.Key().String()] = out
		}
		for k, val := range updates {
			v.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), reflect.ValueOf(val).Convert(v.Type().Elem()))
		}
	}
	return nil
}

// interpolate substitui cada ${tipo.chave} pelo valor resolvido
func (i *Injector) interpolate(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var firstErr error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		sub := pattern.FindStringSubmatch(match)
		val, err := i.fetch(ctx, sub[1], sub[2])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return match
		}
		return val
	})
	return result, firstErr
}

func (i *Injector) fetch(ctx context.Context, source, key string) (string, error) {
	switch source {
	case "env":
		// variável ausente resolve para vazio
		return os.Getenv(key), nil

	case "ssm":
		if i.ssm == nil {
			return "", fmt.Errorf("%w: ssm", ErrClientMissing)
		}
		out, err := i.ssm.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(key),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return "", fmt.Errorf("erro no SSM GetParameter %s: %w", key, err)
		}
		if out.Parameter == nil {
			return "", fmt.Errorf("parâmetro SSM %s sem valor", key)
		}
		return aws.ToString(out.Parameter.Value), nil

	case "secret":
		if i.secrets == nil {
			return "", fmt.Errorf("%w: secretsmanager", ErrClientMissing)
		}
		out, err := i.secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId: aws.String(key),
		})
		if err != nil {
			return "", fmt.Errorf("erro no SecretsManager %s: %w", key, err)
		}
		return aws.ToString(out.SecretString), nil
	}

	return "", fmt.Errorf("injector: fonte desconhecida %q", source)
}
