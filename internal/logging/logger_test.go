package logging

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewFallsBackWhenUninitialized(t *testing.T) {
	l := New(logr.Logger{})
	assert.NotNil(t, l.Logr().GetSink())
}

func TestDebugRespectsLevel(t *testing.T) {
	assert.True(t, NewLogr("debug").V(1).Enabled())
	assert.False(t, NewLogr("info").V(1).Enabled())
}
