package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/football-console/repositories"
	"github.com/Dosada05/football-console/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	membershipService services.MembershipService
	standingsService  services.StandingsService
	matchService      services.MatchService
}

func NewTournamentHandler(
	ts services.TournamentService,
	ms services.MembershipService,
	ss services.StandingsService,
	mts services.MatchService,
) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		membershipService: ms,
		standingsService:  ss,
		matchService:      mts,
	}
}

// CreateHandler обрабатывает POST /tournaments
// @Summary Создать турнир
// @Tags tournaments
// @Accept json
// @Produce json
// @Param input body services.CreateTournamentInput true "Данные турнира"
// @Success 201 {object} map[string]models.Tournament
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /tournaments?order=name|newest&mine=true
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := services.ListTournamentsInput{OrderBy: repositories.TournamentOrderNewest}

	switch order := query.Get("order"); order {
	case "", string(repositories.TournamentOrderNewest):
	case string(repositories.TournamentOrderName):
		input.OrderBy = repositories.TournamentOrderName
	default:
		badRequestResponse(w, r, errors.New("order must be 'name' or 'newest'"))
		return
	}

	if mineStr := query.Get("mine"); mineStr != "" {
		mine, err := strconv.ParseBool(mineStr)
		if err != nil {
			badRequestResponse(w, r, errors.New("mine must be a boolean"))
			return
		}
		if mine {
			currentUserID, ok := currentUser(w, r)
			if !ok {
				return
			}
			input.CreatedBy = &currentUserID
		}
	}

	tournaments, err := h.tournamentService.ListTournaments(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// OverviewHandler - все турниры со своими командами.
func (h *TournamentHandler) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.membershipService.ListTournamentsWithTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetTournamentByID(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(r.Context(), tournamentID, currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.tournamentService.DeleteTournament(r.Context(), tournamentID, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StandingsHandler обрабатывает GET /tournaments/{tournamentID}/standings
// @Summary Турнирная таблица
// @Description Таблица считается на лету по завершенным матчам: 3 очка за победу, 1 за ничью. Сортировка по очкам, затем по разнице мячей.
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} map[string][]models.Standing
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Матч ссылается на команду вне турнира"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/standings [get]
func (h *TournamentHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	table, err := h.standingsService.GetStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateFixturesHandler обрабатывает POST /tournaments/{tournamentID}/fixtures
// @Summary Сгенерировать расписание по круговой системе
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param input body services.GenerateFixturesInput true "Настройки расписания"
// @Success 201 {object} map[string][]models.Match
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/fixtures [post]
func (h *TournamentHandler) GenerateFixturesHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.GenerateFixturesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.GenerateFixtures(r.Context(), tournamentID, currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
