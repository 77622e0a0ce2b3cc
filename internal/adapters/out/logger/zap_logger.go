package logger

import (
	"github.com/joseluisinigo/logonhours/internal/config"
	"github.com/joseluisinigo/logonhours/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements out.LoggerPort on zap. Events become the log message,
// LogFields become structured fields, the module name is carried as a field.
type ZapLogger struct {
	base          *zap.Logger
	module        string
	defaultFields out.LogFields
}

func NewZapLogger(env config.Environment) (*ZapLogger, error) {
	var base *zap.Logger
	var err error

	if env == config.EnvLocal {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return &ZapLogger{
		base:          base,
		defaultFields: make(out.LogFields),
	}, nil
}

func (l *ZapLogger) WithFields(fields out.LogFields) out.LoggerPort {
	newLogger := &ZapLogger{
		base:          l.base,
		module:        l.module,
		defaultFields: make(out.LogFields),
	}

	for k, v := range l.defaultFields {
		newLogger.defaultFields[k] = v
	}
	for k, v := range fields {
		newLogger.defaultFields[k] = v
	}

	return newLogger
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{
		base:          l.base,
		module:        module,
		defaultFields: l.defaultFields,
	}
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.log(zapcore.DebugLevel, event, fields)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.log(zapcore.InfoLevel, event, fields)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.log(zapcore.WarnLevel, event, fields)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.log(zapcore.ErrorLevel, event, fields)
}

func (l *ZapLogger) log(level zapcore.Level, event string, fields out.LogFields) {
	module := l.module
	if module == "" {
		module = "unknown"
	}

	zapFields := make([]zap.Field, 0, len(l.defaultFields)+len(fields)+1)
	zapFields = append(zapFields, zap.String("module", module))
	for k, v := range l.defaultFields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	if entry := l.base.Check(level, event); entry != nil {
		entry.Write(zapFields...)
	}
}

// Sync flushes buffered entries, meant for deferral in main.
func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}
