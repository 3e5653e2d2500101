package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aanand-mishra/student-registration/internal/types"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestListStudents_KeepsBackendOrder(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users" {
			t.Errorf("request = %s %s, want GET /users", r.Method, r.URL.Path)
		}
		if r.Header.Get(RequestIDHeader) == "" {
			t.Error("missing request id header")
		}
		io.WriteString(w, `[{"id":3,"fullName":"C"},{"id":"1","fullName":"A"},{"id":2,"fullName":"B"}]`)
	})

	got, err := c.ListStudents(context.Background())
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}

	want := []types.ID{"3", "1", "2"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, want[i])
		}
	}
}

func TestListStudents_NullBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `null`)
	})

	got, err := c.ListStudents(context.Background())
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListStudents() = %#v, want empty non-nil slice", got)
	}
}

func TestCreateStudent_SendsNoIDAndReturnsEcho(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := body["id"]; ok {
			t.Errorf("body carries an id: %v", body)
		}
		body["id"] = "new-id"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	})

	got, err := c.CreateStudent(context.Background(), types.Student{ID: "stale", FullName: "Jo"})
	if err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}
	if got.ID != "new-id" || got.FullName != "Jo" {
		t.Errorf("CreateStudent() = %+v", got)
	}
}

func TestUpdateStudent_PutsFullRecordByID(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/7" {
			t.Errorf("request = %s %s, want PUT /users/7", r.Method, r.URL.Path)
		}
		var s types.Student
		json.NewDecoder(r.Body).Decode(&s)
		if s.ID != "7" || s.Email != "jo@x.com" {
			t.Errorf("body = %+v", s)
		}
		// json-server style: empty 200 body is acceptable.
	})

	got, err := c.UpdateStudent(context.Background(), "7", types.Student{Email: "jo@x.com"})
	if err != nil {
		t.Fatalf("UpdateStudent() error = %v", err)
	}
	if got.ID != "7" || got.Email != "jo@x.com" {
		t.Errorf("UpdateStudent() = %+v", got)
	}
}

func TestDeleteStudent_EscapesID(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.EscapedPath() != "/users/a%2Fb" {
			t.Errorf("request = %s %s", r.Method, r.URL.EscapedPath())
		}
	})

	if err := c.DeleteStudent(context.Background(), "a/b"); err != nil {
		t.Fatalf("DeleteStudent() error = %v", err)
	}
}

func TestEmptyIDIsRejectedLocally(t *testing.T) {
	c := New("http://127.0.0.1:1")

	if err := c.DeleteStudent(context.Background(), ""); err == nil {
		t.Error("DeleteStudent(\"\") error = nil")
	}
	if _, err := c.UpdateStudent(context.Background(), "", types.Student{}); err == nil {
		t.Error("UpdateStudent(\"\") error = nil")
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"envelope", http.StatusBadRequest, `{"status":"error","error":"email: Valid email required"}`, "email: Valid email required"},
		{"plain text", http.StatusInternalServerError, "db down\n", "db down"},
		{"empty", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			err := c.DeleteStudent(context.Background(), "1")
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *StatusError", err)
			}
			if se.Code != tt.status || se.Message != tt.wantMsg {
				t.Errorf("StatusError = %+v, want code %d message %q", se, tt.status, tt.wantMsg)
			}
			if got := IsNotFound(err); got != (tt.status == http.StatusNotFound) {
				t.Errorf("IsNotFound() = %v", got)
			}
			if !strings.Contains(se.Error(), "DELETE /users/1") {
				t.Errorf("Error() = %q", se.Error())
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := New(srv.URL, WithTimeout(20*time.Millisecond))
	if _, err := c.ListStudents(context.Background()); err == nil {
		t.Error("ListStudents() error = nil, want timeout")
	}
}

func TestMalformedResponse(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	})

	if _, err := c.ListStudents(context.Background()); err == nil {
		t.Error("ListStudents() error = nil, want decode error")
	}
}
