package mylog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MarcGrol/shoppingcart/lib/mycontext"
)

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, zapLevel(SeverityDebug))
	assert.Equal(t, zapcore.InfoLevel, zapLevel(SeverityInfo))
	assert.Equal(t, zapcore.WarnLevel, zapLevel(SeverityWarn))
	assert.Equal(t, zapcore.ErrorLevel, zapLevel(SeverityError))
	assert.Equal(t, zapcore.InfoLevel, zapLevel(Severity("unknown")))
}

func TestStandardLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := standardLogger{componentName: "cart", logger: zap.New(core)}

	logger.Log(context.TODO(), "123", SeverityWarn, "Removing %d items", 3)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "Removing 3 items", entries[0].Message)
	assert.Equal(t, "123", entries[0].ContextMap()["label"])
}

func TestGcloudLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := structuredLogger{componentName: "cart", logger: zap.New(core)}

	c := context.WithValue(context.TODO(), mycontext.CtxTraceContext{}, "projects/p/traces/abc")
	logger.Log(c, "123", SeverityInfo, "Closing cart %s", "123")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "cart:Closing cart 123", entries[0].Message)
	assert.Equal(t, "projects/p/traces/abc", entries[0].ContextMap()["logging.googleapis.com/trace"])
}
