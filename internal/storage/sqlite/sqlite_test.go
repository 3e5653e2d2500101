package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
)

func newStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func student(name string) types.Student {
	return types.Student{
		FullName: name,
		Email:    name + "@x.com",
		Phone:    "12345678",
		DOB:      "2000-01-01",
		Gender:   "other",
		Address:  "1 Rd",
		Course:   "Other",
		Password: "secret",
	}
}

func TestCreateUser_AssignsFreshID(t *testing.T) {
	s := newStore(t)

	in := student("jo")
	in.ID = "client-chosen"
	got, err := s.CreateUser(in)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if got.ID == "" || got.ID == "client-chosen" {
		t.Errorf("ID = %q, want a generated id", got.ID)
	}

	back, err := s.GetUserByID(got.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if back != got {
		t.Errorf("GetUserByID() = %+v, want %+v", back, got)
	}
}

func TestGetUsers_InsertionOrder(t *testing.T) {
	s := newStore(t)

	if got, _ := s.GetUsers(); got == nil || len(got) != 0 {
		t.Errorf("GetUsers() on empty store = %#v, want empty non-nil", got)
	}

	var ids []types.ID
	for _, n := range []string{"zed", "amy", "kim"} {
		st, err := s.CreateUser(student(n))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, st.ID)
	}

	got, err := s.GetUsers()
	if err != nil {
		t.Fatalf("GetUsers() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestUpdateUserByID(t *testing.T) {
	s := newStore(t)
	created, _ := s.CreateUser(student("jo"))

	change := created
	change.FullName = "Joanna"
	change.Course = "Data Science"
	got, err := s.UpdateUserByID(created.ID, change)
	if err != nil {
		t.Fatalf("UpdateUserByID() error = %v", err)
	}
	if got != change {
		t.Errorf("UpdateUserByID() = %+v, want %+v", got, change)
	}

	// Same values again still count as a match.
	if _, err := s.UpdateUserByID(created.ID, change); err != nil {
		t.Errorf("idempotent UpdateUserByID() error = %v", err)
	}
}

func TestNotFound(t *testing.T) {
	s := newStore(t)

	if _, err := s.GetUserByID("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetUserByID() error = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateUserByID("missing", student("x")); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateUserByID() error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteUserByID("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteUserByID() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteUserByID(t *testing.T) {
	s := newStore(t)
	a, _ := s.CreateUser(student("a"))
	b, _ := s.CreateUser(student("b"))

	if err := s.DeleteUserByID(a.ID); err != nil {
		t.Fatalf("DeleteUserByID() error = %v", err)
	}

	got, _ := s.GetUsers()
	if len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("GetUsers() = %v, want only %q", got, b.ID)
	}
}

func TestNew_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	created, _ := s.CreateUser(student("jo"))
	s.Close()

	s, err = New(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	if _, err := s.GetUserByID(created.ID); err != nil {
		t.Errorf("record lost after reopen: %v", err)
	}
}
