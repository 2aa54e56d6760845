package handler

import (
	"net/http"

	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/service"
)

// SettingsHandler exposes the branding and subscription settings endpoints.
type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// HandleGetBranding — GET /api/settings/branding
func (h *SettingsHandler) HandleGetBranding(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}

	branding, err := h.settings.GetBranding(r.Context(), cid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, branding)
}

// HandleUpdateBranding — PUT /api/settings/branding
// The full branding record is replaced; there are no partial updates.
func (h *SettingsHandler) HandleUpdateBranding(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}

	var b model.Branding
	if err := decodeJSON(r, &b); err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.settings.UpdateBranding(r.Context(), cid, b)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

type subscriptionRequest struct {
	Status string `json:"status"`
}

// HandleUpdateSubscription — PUT /api/settings/subscription
func (h *SettingsHandler) HandleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}

	var req subscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.settings.UpdateSubscription(r.Context(), cid, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
