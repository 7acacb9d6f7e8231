package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string
	// File enables a rotated JSON log next to the console output.
	File string
	// Console defaults to stdout.
	Console io.Writer
}

func New(opts Options) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, err
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(console), level),
	}

	if opts.File != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    100, // MB
				MaxBackups: 30,
				MaxAge:     90, // days
			}),
			level,
		))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return log.Sugar(), nil
}

// Nop is used by tests and by commands that do not log.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
