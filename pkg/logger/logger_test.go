package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitWritesJSON(t *testing.T) {
	resetForTest(t)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	storeLog := Component(log, "store")
	storeLog.Debug().Str("collection", "users").Msg("loaded")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if line["component"] != "store" || line["collection"] != "users" || line["service"] != "chirper" {
		t.Fatalf("unexpected fields: %v", line)
	}
}

func TestInitOnlyOnce(t *testing.T) {
	resetForTest(t)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	secondLog := Init(Options{Output: &second})
	secondLog.Info().Msg("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected the second Init to reuse the first logger")
	}
}

func TestGetPanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func resetForTest(t *testing.T) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	Reset()
	t.Cleanup(func() {
		Reset()
		zerolog.SetGlobalLevel(prev)
	})
}
