package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/service"
)

// PlanHandler exposes the plan pipeline endpoints, all nested under a
// client: generate, send, status and download.
type PlanHandler struct {
	plans *service.PlanService
}

func NewPlanHandler(plans *service.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// planKind parses the {kind} URL segment.
func planKind(r *http.Request) (model.PlanKind, error) {
	kind, err := model.ParsePlanKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", apperror.ValidationFailed("kind", err.Error())
	}
	return kind, nil
}

type generateRequest struct {
	ItemIDs []int64 `json:"itemIds"`
}

// HandleGenerate — POST /api/clients/{id}/plans/{kind}
// Runs the full pipeline and returns the stable artifact URL.
func (h *PlanHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	clientID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	kind, err := planKind(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.plans.Generate(r.Context(), cid, clientID, kind, req.ItemIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleSend — POST /api/clients/{id}/plans/{kind}/send
// Emails the stored artifact to the client.
func (h *PlanHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	clientID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	kind, err := planKind(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.plans.Send(r.Context(), cid, clientID, kind); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// HandleStatus — GET /api/clients/{id}/plans/{kind}
// Returns the derived freshness classification and the stored pointer.
func (h *PlanHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	clientID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	kind, err := planKind(r)
	if err != nil {
		writeError(w, err)
		return
	}

	status, err := h.plans.Status(r.Context(), cid, clientID, kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// HandleDownload — GET /api/clients/{id}/plans/{kind}/download
// Redirects to the stored artifact. The artifact URL is stable across
// regenerations, so the redirect target carries a unique version parameter
// and the response itself forbids caching.
func (h *PlanHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	clientID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	kind, err := planKind(r)
	if err != nil {
		writeError(w, err)
		return
	}

	url, err := h.plans.DownloadURL(r.Context(), cid, clientID, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, url, http.StatusFound)
}
