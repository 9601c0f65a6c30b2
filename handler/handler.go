// Package handler provides the HTTP handlers for the squirrel server.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path"

	"github.com/stevemurr/squirrel-server/store"
)

// Handler holds the server dependencies and registers routes.
type Handler struct {
	store store.Store
	mux   *http.ServeMux
}

// New creates a Handler and wires up all routes.
func New(s store.Store) *Handler {
	h := &Handler{store: s, mux: http.NewServeMux()}
	h.routes()
	return h
}

// ServeHTTP makes Handler an http.Handler.
// Unclean paths (e.g. "/squirrels//1") are not found; the mux would
// redirect them instead.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if path.Clean(r.URL.Path) != r.URL.Path {
		notFound(w, r)
		return
	}
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.mux.HandleFunc("GET /squirrels", h.list)
	h.mux.HandleFunc("GET /squirrels/{id}", h.retrieve)
	h.mux.HandleFunc("POST /squirrels", h.create)
	h.mux.HandleFunc("PUT /squirrels/{id}", h.update)
	h.mux.HandleFunc("DELETE /squirrels/{id}", h.delete)

	// GET patterns also match HEAD.
	h.mux.HandleFunc("HEAD /squirrels", notFound)
	h.mux.HandleFunc("HEAD /squirrels/{id}", notFound)

	// Matches every method and path the routes above don't, so unmatched
	// methods get a 404 rather than the mux's 405.
	h.mux.HandleFunc("/", notFound)
}

// ---------- helpers ----------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusNotFound, "404 Not Found")
}

func badRequest(w http.ResponseWriter, err error) {
	writeText(w, http.StatusBadRequest, "400 Bad Request: "+err.Error())
}

// storageError answers 500 and logs the cause, which is not sent to the
// client.
func storageError(w http.ResponseWriter, r *http.Request, err error) {
	kind := "storage error"
	switch {
	case errors.Is(err, store.ErrStorageRead):
		kind = "storage read error"
	case errors.Is(err, store.ErrStorageWrite):
		kind = "storage write error"
	}
	log.Printf("%s %s: %s: %v", r.Method, r.URL.Path, kind, err)
	writeText(w, http.StatusInternalServerError, "500 Internal Server Error")
}

// ---------- squirrels ----------

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List()
	if err != nil {
		storageError(w, r, err)
		return
	}
	if items == nil {
		items = []store.Squirrel{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) retrieve(w http.ResponseWriter, r *http.Request) {
	sq, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		storageError(w, r, err)
		return
	}
	if sq == nil {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, sq)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	fields, err := readSquirrelFields(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	sq, err := h.store.Create(fields)
	if err != nil {
		storageError(w, r, err)
		return
	}
	w.Header().Set("Location", "/squirrels/"+sq.ID)
	writeJSON(w, http.StatusCreated, sq)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := h.store.Get(id)
	if err != nil {
		storageError(w, r, err)
		return
	}
	if existing == nil {
		notFound(w, r)
		return
	}
	fields, err := readSquirrelFields(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	sq, err := h.store.Update(id, fields)
	if err != nil {
		storageError(w, r, err)
		return
	}
	// deleted between Get and Update
	if sq == nil {
		notFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := h.store.Get(id)
	if err != nil {
		storageError(w, r, err)
		return
	}
	if existing == nil {
		notFound(w, r)
		return
	}
	if _, err := h.store.Delete(id); err != nil {
		storageError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
