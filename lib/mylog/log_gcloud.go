package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcGrol/shoppingcart/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
	}
}

type structuredLogger struct {
	componentName string
	logger        *zap.Logger
}

func newGcloudLogger(componentName string) Logger {
	return structuredLogger{
		componentName: componentName,
		logger:        zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(gcloudEncoderConfig()), zapcore.Lock(os.Stdout), zapcore.DebugLevel)),
	}
}

// Cloud Logging picks up these field names, a timestamp is added when shipping the logs.
func gcloudEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "severity",
		NameKey:        "component",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	fields := []zap.Field{
		zap.String("component", l.componentName),
		zap.Any("logging.googleapis.com/labels", map[string]string{"aggregate": traceLabel}),
	}
	trace := mycontext.TraceFromContext(ctx)
	if trace != "" {
		fields = append(fields, zap.String("logging.googleapis.com/trace", trace))
	}

	l.logger.Log(zapLevel(severity), l.componentName+":"+fmt.Sprintf(format, a...), fields...)
}
