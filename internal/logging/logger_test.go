package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestNew_FormatsByEnv(t *testing.T) {
	tests := []struct {
		env       string
		wantJSON  bool
		wantDebug bool
	}{
		{"dev", false, true},
		{"staging", true, true},
		{"prod", true, false},
		{"unknown", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(tt.env, &buf)

			l.Debug("dbg")
			l.Info("hello", slog.String("k", "v"))

			out := buf.String()
			if got := strings.HasPrefix(out, "{"); got != tt.wantJSON {
				t.Errorf("JSON output = %v, want %v: %q", got, tt.wantJSON, out)
			}
			if got := strings.Contains(out, "dbg"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestFromContext_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	Setup("prod", &buf)
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside")
	}))
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), `"request_id":"abc-123"`) {
		t.Errorf("log = %q, want request_id", buf.String())
	}

	buf.Reset()
	FromContext(context.Background()).Info("outside")
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("log = %q, want no request_id", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	w, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile(\"\") error = %v", err)
	}
	w.Write([]byte("dropped"))
	w.Close()

	path := filepath.Join(t.TempDir(), "client.log")
	w, err = OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if _, err := w.Write([]byte("kept\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}
