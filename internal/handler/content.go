package handler

import (
	"net/http"

	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/service"
)

// ContentHandler exposes the meal and exercise library endpoints.
type ContentHandler struct {
	content *service.ContentService
}

func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// HandleCreateMeal — POST /api/meals
func (h *ContentHandler) HandleCreateMeal(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}

	var in service.MealInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	meal, err := h.content.CreateMeal(r.Context(), cid, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

// HandleListMeals — GET /api/meals
func (h *ContentHandler) HandleListMeals(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}

	meals, err := h.content.ListMeals(r.Context(), cid, listOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

// HandleGetMeal — GET /api/meals/{id}
func (h *ContentHandler) HandleGetMeal(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	meal, err := h.content.GetMeal(r.Context(), cid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

// HandleUpdateMeal — PUT /api/meals/{id}
func (h *ContentHandler) HandleUpdateMeal(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.MealInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	meal, err := h.content.UpdateMeal(r.Context(), cid, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

// HandleDeleteMeal — DELETE /api/meals/{id}
func (h *ContentHandler) HandleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.content.DeleteMeal(r.Context(), cid, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateExercise — POST /api/exercises
func (h *ContentHandler) HandleCreateExercise(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}

	var in service.ExerciseInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	ex, err := h.content.CreateExercise(r.Context(), cid, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ex)
}

// HandleListExercises — GET /api/exercises
func (h *ContentHandler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}

	exercises, err := h.content.ListExercises(r.Context(), cid, listOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if exercises == nil {
		exercises = []model.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

// HandleGetExercise — GET /api/exercises/{id}
func (h *ContentHandler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ex, err := h.content.GetExercise(r.Context(), cid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

// HandleUpdateExercise — PUT /api/exercises/{id}
func (h *ContentHandler) HandleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.ExerciseInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	ex, err := h.content.UpdateExercise(r.Context(), cid, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

// HandleDeleteExercise — DELETE /api/exercises/{id}
func (h *ContentHandler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	cid, ok := coachID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.content.DeleteExercise(r.Context(), cid, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
