package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

type teamIDsInput struct {
	TeamIDs []uuid.UUID `json:"team_ids"`
}

// ListTeamsHandler обрабатывает GET /tournaments/{tournamentID}/teams
func (h *TournamentHandler) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.membershipService.ListTeams(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AvailableTeamsHandler - команды, еще не назначенные в турнир.
func (h *TournamentHandler) AvailableTeamsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.membershipService.ListAvailableTeams(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AssignTeamsHandler обрабатывает POST /tournaments/{tournamentID}/teams
// @Summary Назначить команды в турнир
// @Description Уже назначенные команды пропускаются, в ответе число добавленных.
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param input body teamIDsInput true "ID команд"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams [post]
func (h *TournamentHandler) AssignTeamsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input teamIDsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	added, err := h.membershipService.AssignTeams(r.Context(), tournamentID, currentUserID, input.TeamIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	teams, err := h.membershipService.ListTeams(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"added": added, "teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReplaceTeamsHandler обрабатывает PUT /tournaments/{tournamentID}/teams
func (h *TournamentHandler) ReplaceTeamsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input teamIDsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.membershipService.ReplaceTeams(r.Context(), tournamentID, currentUserID, input.TeamIDs); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	teams, err := h.membershipService.ListTeams(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) RemoveTeamHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.membershipService.RemoveTeam(r.Context(), tournamentID, currentUserID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
