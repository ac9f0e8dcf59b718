package ports

import "context"

// Logger define a interface para logging estruturado chave/valor
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}

type loggerKey struct{}

// ContextWithLogger anexa ao contexto um logger já correlacionado à requisição
func ContextWithLogger(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// LoggerFrom retorna o logger da requisição ou fallback quando não houver
func LoggerFrom(ctx context.Context, fallback Logger) Logger {
	if log, ok := ctx.Value(loggerKey{}).(Logger); ok && log != nil {
		return log
	}
	return fallback
}
