package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/auth"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/repository"
	"github.com/tlind/coachdesk/internal/service"
)

// ClientHandler exposes the client roster CRUD endpoints.
type ClientHandler struct {
	clients *service.ClientService
}

func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// coachID pulls the authenticated coach from the request context. Routes
// using it are mounted behind auth.RequireAuth, so a miss is a programming
// error surfaced as 401 rather than a panic.
func coachID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.CoachIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("authentication required"))
	}
	return id, ok
}

// pathID parses the {id} URL segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", "id must be a positive integer")
	}
	return id, nil
}

// listOptions reads pagination from the query string. The repository clamps
// the values; out-of-range input degrades instead of erroring.
func listOptions(r *http.Request) repository.ListOptions {
	var opts repository.ListOptions
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		opts.Offset = v
	}
	return opts
}

// HandleCreate — POST /api/clients
func (h *ClientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}

	var in service.ClientInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	client, err := h.clients.Create(r.Context(), cid, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// HandleList — GET /api/clients
func (h *ClientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}

	clients, err := h.clients.List(r.Context(), cid, listOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if clients == nil {
		clients = []model.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

// HandleGet — GET /api/clients/{id}
func (h *ClientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	client, err := h.clients.Get(r.Context(), cid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// HandleUpdate — PUT /api/clients/{id}
func (h *ClientHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.ClientInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	client, err := h.clients.Update(r.Context(), cid, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// HandleDelete — DELETE /api/clients/{id}
func (h *ClientHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.clients.Delete(r.Context(), cid, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
