package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kennelbot/kennel/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantLevel zerolog.Level
	}{
		{
			name: "debug level",
			cfg: &config.Config{
				Env:       "development",
				LogLevel:  "debug",
				LogFormat: "json",
			},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name: "info level",
			cfg: &config.Config{
				Env:       "production",
				LogLevel:  "info",
				LogFormat: "json",
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name: "warn level",
			cfg: &config.Config{
				Env:       "staging",
				LogLevel:  "warn",
				LogFormat: "console",
			},
			wantLevel: zerolog.WarnLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.cfg)
			if logger == nil {
				t.Fatal("Expected logger to be created")
			}

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("Expected global level %v, got %v", tt.wantLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"invalid", zerolog.InfoLevel}, // Default
		{"", zerolog.InfoLevel},        // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	tests := []struct {
		name      string
		logFunc   func()
		wantMsg   string
		wantLevel string
	}{
		{
			name:      "debug",
			logFunc:   func() { logger.Debug("debug message") },
			wantMsg:   "debug message",
			wantLevel: "debug",
		},
		{
			name:      "info",
			logFunc:   func() { logger.Info("info message") },
			wantMsg:   "info message",
			wantLevel: "info",
		},
		{
			name:      "warn",
			logFunc:   func() { logger.Warn("warn message") },
			wantMsg:   "warn message",
			wantLevel: "warn",
		},
		{
			name:      "error",
			logFunc:   func() { logger.Error("error message") },
			wantMsg:   "error message",
			wantLevel: "error",
		},
		{
			name:      "infof",
			logFunc:   func() { logger.Infof("bought %d share(s) of %s", 3, "KO") },
			wantMsg:   "bought 3 share(s) of KO",
			wantLevel: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc()

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("Failed to parse log output: %v", err)
			}

			if logEntry["level"] != tt.wantLevel {
				t.Errorf("Expected level %q, got %q", tt.wantLevel, logEntry["level"])
			}

			if logEntry["message"] != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, logEntry["message"])
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	zlog := zerolog.New(&buf)
	logger := &Logger{zlog: zlog}

	logger.WithFields(map[string]interface{}{
		"symbol": "AAPL",
		"qty":    5,
	}).Info("order submitted")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}

	if logEntry["symbol"] != "AAPL" {
		t.Errorf("Expected symbol field AAPL, got %v", logEntry["symbol"])
	}
}
