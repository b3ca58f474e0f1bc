package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	cases := []struct {
		level, format string
		want          zapcore.Level
	}{
		{"info", "console", zapcore.InfoLevel},
		{"DEBUG", "json", zapcore.DebugLevel},
		{"warn", "", zapcore.WarnLevel},
	}
	for _, c := range cases {
		l, err := New(c.level, c.format)
		if err != nil {
			t.Fatalf("New(%q,%q) err=%v", c.level, c.format, err)
		}
		if !l.Core().Enabled(c.want) {
			t.Fatalf("level %s should be enabled", c.want)
		}
		if c.want > zapcore.DebugLevel && l.Core().Enabled(c.want-1) {
			t.Fatalf("level %s should be disabled", c.want-1)
		}
	}
}

func TestNewInvalid(t *testing.T) {
	if _, err := New("loud", "console"); err == nil {
		t.Fatal("expected invalid level error")
	}
	if _, err := New("info", "xml"); err == nil {
		t.Fatal("expected invalid format error")
	}
}
