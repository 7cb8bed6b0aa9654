package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/rl1809/inventory-tracker/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.LoggerConfig
		development bool
		wantErr     bool
	}{
		{"production json", config.LoggerConfig{Level: "info", Encoding: "json"}, false, false},
		{"production console", config.LoggerConfig{Level: "warn", Encoding: "console"}, false, false},
		{"development ignores level", config.LoggerConfig{Level: "nonsense"}, true, false},
		{"bad level", config.LoggerConfig{Level: "loud"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg, tt.development)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if log != nil {
				log.Info("logger ready")
			}
		})
	}
}

func TestNew_Level(t *testing.T) {
	log, err := New(config.LoggerConfig{Level: "warn", Encoding: "json"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug to be disabled at warn level")
	}
}
