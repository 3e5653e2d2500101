// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver, which is all a development stand-in for the backend needs.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// columns is the select list shared by every read. Its order must match
// scanStudent.
const columns = "id, full_name, email, phone, dob, gender, address, course, password"

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path (":memory:" works for tests),
// creates the users table if it does not already exist, and returns a
// ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// An in-memory database lives as long as its connection; pin the
	// pool to one so every query sees the same data.
	db.SetMaxOpenConns(1)

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup. The implicit rowid keeps insertion order for listing; the
	// public id is an opaque uuid string.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id        TEXT NOT NULL UNIQUE,
			full_name TEXT NOT NULL,
			email     TEXT NOT NULL,
			phone     TEXT NOT NULL,
			dob       TEXT NOT NULL,
			gender    TEXT NOT NULL,
			address   TEXT NOT NULL,
			course    TEXT NOT NULL,
			password  TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateUser inserts a new row under a fresh uuid.
//
// Prepared statements with ? placeholders keep user input as pure data:
// the driver sends the query and the values separately.
func (s *SQLite) CreateUser(st types.Student) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO users (" + columns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateUser: prepare: %w", err)
	}
	defer stmt.Close()

	st.ID = types.ID(uuid.NewString())

	_, err = stmt.Exec(string(st.ID), st.FullName, st.Email, st.Phone, st.DOB,
		st.Gender, st.Address, st.Course, st.Password)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateUser: exec: %w", err)
	}

	return st, nil
}

// GetUserByID fetches exactly one row matched by id.
func (s *SQLite) GetUserByID(id types.ID) (types.Student, error) {
	stmt, err := s.Db.Prepare("SELECT " + columns + " FROM users WHERE id = ? LIMIT 1")
	if err != nil {
		return types.Student{}, fmt.Errorf("GetUserByID: prepare: %w", err)
	}
	defer stmt.Close()

	st, err := scanStudent(stmt.QueryRow(string(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("GetUserByID %s: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetUserByID: scan: %w", err)
	}

	return st, nil
}

// GetUsers returns all rows in insertion order.
func (s *SQLite) GetUsers() ([]types.Student, error) {
	rows, err := s.Db.Query("SELECT " + columns + " FROM users ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("GetUsers: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	// Returning [] instead of null in JSON is better API behaviour.
	users := make([]types.Student, 0)

	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetUsers: scan row: %w", err)
		}
		users = append(users, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetUsers: rows iteration: %w", err)
	}

	return users, nil
}

// UpdateUserByID replaces a row's data and returns the stored record.
func (s *SQLite) UpdateUserByID(id types.ID, st types.Student) (types.Student, error) {
	stmt, err := s.Db.Prepare(`
		UPDATE users
		SET full_name = ?, email = ?, phone = ?, dob = ?, gender = ?,
		    address = ?, course = ?, password = ?
		WHERE id = ?`)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateUserByID: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(st.FullName, st.Email, st.Phone, st.DOB, st.Gender,
		st.Address, st.Course, st.Password, string(id))
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateUserByID: exec: %w", err)
	}
	if err := requireOneRow(res, id); err != nil {
		return types.Student{}, fmt.Errorf("UpdateUserByID: %w", err)
	}

	// Re-fetch the record so we return exactly what is stored in the DB.
	return s.GetUserByID(id)
}

// DeleteUserByID removes a row by id.
func (s *SQLite) DeleteUserByID(id types.ID) error {
	stmt, err := s.Db.Prepare("DELETE FROM users WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteUserByID: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(string(id))
	if err != nil {
		return fmt.Errorf("DeleteUserByID: exec: %w", err)
	}
	if err := requireOneRow(res, id); err != nil {
		return fmt.Errorf("DeleteUserByID: %w", err)
	}

	return nil
}

func requireOneRow(res sql.Result, id types.ID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var st types.Student
	err := row.Scan(
		&st.ID,
		&st.FullName,
		&st.Email,
		&st.Phone,
		&st.DOB,
		&st.Gender,
		&st.Address,
		&st.Course,
		&st.Password,
	)
	return st, err
}

var _ storage.Storage = (*SQLite)(nil)
