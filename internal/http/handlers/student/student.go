// Package student contains the HTTP handlers for the /users collection of
// the development backend.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Each exported function receives its dependencies (storage) once, at
// route registration, and returns the http.HandlerFunc the router calls
// on every request:
//
//	r.Post("/users", student.New(store))
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/student-registration/internal/logging"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/utils/response"
	"github.com/aanand-mishra/student-registration/internal/validation"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /users
// Creates a record from the JSON body and echoes it with its new id.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())
		log.Info("creating a user")

		st, ok := decodeValid(w, r)
		if !ok {
			return
		}

		created, err := store.CreateUser(st)
		if err != nil {
			log.Error("error creating user", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		log.Info("user created", slog.String("id", string(created.ID)))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /users/{id}
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ID(chi.URLParam(r, "id"))
		log := logging.FromContext(r.Context()).With(slog.String("id", string(id)))
		log.Info("getting a user")

		st, err := store.GetUserByID(id)
		if err != nil {
			writeStoreError(w, log, "error getting user", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, st)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /users
// Returns a JSON array of all records in insertion order; [] when empty.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())
		log.Info("getting all users")

		users, err := store.GetUsers()
		if err != nil {
			log.Error("error getting users", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, users)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /users/{id}
// Replaces ALL fields of an existing record. The id in the path wins over
// any id in the body.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	404 Not Found    — no record with that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ID(chi.URLParam(r, "id"))
		log := logging.FromContext(r.Context()).With(slog.String("id", string(id)))
		log.Info("updating a user")

		st, ok := decodeValid(w, r)
		if !ok {
			return
		}

		updated, err := store.UpdateUserByID(id, st)
		if err != nil {
			writeStoreError(w, log, "error updating user", err)
			return
		}

		log.Info("user updated")
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /users/{id}
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ID(chi.URLParam(r, "id"))
		log := logging.FromContext(r.Context()).With(slog.String("id", string(id)))
		log.Info("deleting a user")

		if err := store.DeleteUserByID(id); err != nil {
			writeStoreError(w, log, "error deleting user", err)
			return
		}

		log.Info("user deleted")
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// decodeValid decodes the body into a Student and runs the validation
// engine on it. On failure it has already written the 400 response.
func decodeValid(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var st types.Student

	err := json.NewDecoder(r.Body).Decode(&st)
	if errors.Is(err, io.EOF) {
		// io.EOF means the body was completely empty — nothing to decode.
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return types.Student{}, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return types.Student{}, false
	}

	if errs := validation.Validate(st); len(errs) > 0 {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
		return types.Student{}, false
	}

	return st, true
}

func writeStoreError(w http.ResponseWriter, log *slog.Logger, msg string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(storage.ErrNotFound))
		return
	}
	log.Error(msg, slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
