package logger_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/XavierBriggs/fortuna/services/betedge/internal/config"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel zapcore.Level
	}{
		{name: "Debug json", cfg: config.LogConfig{Level: "debug", Encoding: "json"}, wantLevel: zapcore.DebugLevel},
		{name: "Warn console", cfg: config.LogConfig{Level: "WARN", Encoding: "console"}, wantLevel: zapcore.WarnLevel},
		{name: "Unknown level falls back to info", cfg: config.LogConfig{Level: "chatty"}, wantLevel: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.New(tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !log.Core().Enabled(tt.wantLevel) {
				t.Errorf("level %s should be enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && log.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("level %s should be disabled", tt.wantLevel-1)
			}
		})
	}
}
