package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ZeroLogger implementa Logger sobre o zerolog
type ZeroLogger struct {
	log zerolog.Logger
}

// Options define nível e formato da saída
type Options struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Saída legível no terminal, para desenvolvimento
	Output io.Writer
}

// NewLogger cria uma nova instância de Logger
func NewLogger(opts Options) *ZeroLogger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	return &ZeroLogger{
		log: zerolog.New(out).Level(level).With().Timestamp().Logger(),
	}
}

// New envolve um zerolog.Logger já configurado
func New(l zerolog.Logger) *ZeroLogger {
	return &ZeroLogger{log: l}
}

// NewNop cria um logger que descarta tudo
func NewNop() *ZeroLogger {
	return &ZeroLogger{log: zerolog.Nop()}
}

// Zerolog expõe o logger subjacente para middlewares
func (l *ZeroLogger) Zerolog() *zerolog.Logger {
	return &l.log
}

// Info registra uma mensagem de informação
func (l *ZeroLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Fields(keysAndValues).Msg(msg)
}

// Error registra uma mensagem de erro
func (l *ZeroLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

// Debug registra uma mensagem de debug
func (l *ZeroLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

// Warn registra uma mensagem de aviso
func (l *ZeroLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}
