package logger

import (
	"bytes"
	"strings"
	"testing"

	"job-connect/internal/config"

	"github.com/sirupsen/logrus"
)

func TestNew_JSONFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	l.Info("hidden")
	l.WithField("component", "test").Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"component":"test"`) {
		t.Fatalf("expected json field in output: %s", out)
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput(config.LogConfig{Level: "chatty"}, &buf)
	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", l.GetLevel())
	}
}
