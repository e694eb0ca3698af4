package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"warn":  LevelError,
		"info":  LevelInfo,
		"DEBUG": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	// query param ?log=debug
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	// shorthand ?log=1
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("shorthand query override failed: %v", got)
	}
	// header X-Log-Level
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
}

func TestRequestLogger_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { zlog = nil })
	SetRequestLogLevel("info")
	t.Cleanup(func() { SetRequestLogLevel("") })

	w := do(t, NewMux(newMockService()), http.MethodGet, "/topics/GOOG", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	out := buf.String()
	for _, frag := range []string{`"method":"GET"`, `"path":"/topics/GOOG"`, `"status":404`, `"request_id"`, `"message":"http request"`} {
		if !strings.Contains(out, frag) {
			t.Fatalf("expected %s in %s", frag, out)
		}
	}
}

func TestRequestLogger_ErrorLevelSkipsSuccess(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { zlog = nil })
	SetRequestLogLevel("error")
	t.Cleanup(func() { SetRequestLogLevel("") })

	do(t, NewMux(newMockService()), http.MethodGet, "/healthz", "")
	if buf.Len() != 0 {
		t.Fatalf("expected no log for 200 at error level, got %s", buf.String())
	}
}
