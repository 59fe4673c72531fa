package logger

import (
	"bytes"
	"testing"
)

func TestDiscardLogger(t *testing.T) {
	log, err := NewDiscardLogger()
	if err != nil {
		t.Fatalf("NewDiscardLogger() error = %v", err)
	}
	log.Debug("debug", "k", 1)
	log.Info("info", "k", 2)
	log.Warn("warn", "k", 3)
	log.Error("error", "k", 4)
	if err := log.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCustomStdLoggerWritesOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig(&buf)
	cfg.AsyncWrite = false

	log, err := NewCustomStdLogger(cfg)
	if err != nil {
		t.Fatalf("NewCustomStdLogger() error = %v", err)
	}
	log.Info("comparison finished", "average", 42.0)
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("comparison finished")) {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}
