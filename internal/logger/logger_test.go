package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("info", "json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Debugw("hidden")
	log.Infow("batch validated", "rows", 3)
	_ = log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "info" || entry["msg"] != "batch validated" || entry["rows"] != float64(3) {
		t.Fatalf("entry=%v", entry)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := NewWithWriter("loud", "json", &bytes.Buffer{}); err == nil {
		t.Fatal("expected level error")
	}
	if _, err := NewWithWriter("info", "xml", &bytes.Buffer{}); err == nil {
		t.Fatal("expected format error")
	}
}
