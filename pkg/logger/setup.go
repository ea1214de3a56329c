package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/event-service/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure inicializa o logger global a partir da configuração.
// Também define o logger padrão devolvido por zerolog.Ctx quando o context
// não carrega um logger próprio.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return configure(cfg, os.Stdout)
}

func configure(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	SetLevel(cfg.Level)

	// JSON para produção, Console "bonito" para local se solicitado
	var output io.Writer = out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Str("service", "event-service").
		Logger()

	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
	return logger
}

// SetLevel troca o nível global (default: info). Seguro para uso concorrente.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
