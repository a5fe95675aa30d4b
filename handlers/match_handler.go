package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/services"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

type updateStatusInput struct {
	Status models.MatchStatus `json:"status"`
}

// ScheduleMatch обрабатывает POST /matches
func (h *MatchHandler) ScheduleMatch(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.ScheduleMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ScheduleMatch(r.Context(), currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches обрабатывает GET /matches?tournament_id=...&status=...
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var input services.ListMatchesInput

	if tidStr := query.Get("tournament_id"); tidStr != "" {
		tid, err := uuid.Parse(tidStr)
		if err != nil {
			badRequestResponse(w, r, errors.New("invalid tournament_id"))
			return
		}
		input.TournamentID = &tid
	}
	if statusStr := query.Get("status"); statusStr != "" {
		status := models.MatchStatus(statusStr)
		input.Status = &status
	}

	matches, err := h.matchService.ListMatches(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatchByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordScore обрабатывает PUT /matches/{matchID}/score
// @Summary Записать счет матча
// @Description Матч переводится в статус completed, таблица турнира пересчитывается и рассылается подписчикам.
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path string true "ID матча"
// @Param input body services.RecordScoreInput true "Счет"
// @Success 200 {object} map[string]models.Match
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Матч отменен"
// @Security BearerAuth
// @Router /matches/{matchID}/score [put]
func (h *MatchHandler) RecordScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.RecordScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordScore(r.Context(), matchID, currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateStatus обрабатывает PATCH /matches/{matchID}/status
func (h *MatchHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input updateStatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateStatus(r.Context(), matchID, currentUserID, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), matchID, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
