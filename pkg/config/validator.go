package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError agrupa as falhas estruturais de validação.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("erros de validação estrutural:\n- %s", strings.Join(e.Fields, "\n- "))
}

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate realiza validações estruturais (tags) e semânticas
func (cv *ConfigValidator) Validate(cfg *AppConfig) error {
	if err := cv.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				fields = append(fields, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return &ValidationError{Fields: fields}
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}
	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *AppConfig) error {
	// a tabela em memória não é compartilhada entre invocações do lambda
	if cfg.Runtime == "lambda" && cfg.AWS.Endpoint == "memory" {
		return fmt.Errorf("endpoint 'memory' só é suportado no runtime local")
	}
	if cfg.Runtime == "lambda" && cfg.Reload.QueueURL != "" {
		return fmt.Errorf("hot reload via SQS só é suportado no runtime local")
	}
	return nil
}
