package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/Dosada05/football-console/middleware"
	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/Dosada05/football-console/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// withUser имитирует middleware.Authenticate для тестов без подписи токена.
func withUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := jwt.MapClaims{"sub": userID.String(), "role": "authenticated"}
			ctx := middleware.ContextWithClaims(r.Context(), claims, "test-token")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(userID uuid.UUID, register func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	if userID != uuid.Nil {
		r.Use(withUser(userID))
	}
	register(r)
	return r
}

// --- Tournament service ---

type mockTournamentService struct {
	createFn func(ctx context.Context, creatorID uuid.UUID, input services.CreateTournamentInput) (*models.Tournament, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	listFn   func(ctx context.Context, input services.ListTournamentsInput) ([]models.Tournament, error)
	updateFn func(ctx context.Context, id, userID uuid.UUID, input services.UpdateTournamentInput) (*models.Tournament, error)
	deleteFn func(ctx context.Context, id, userID uuid.UUID) error
}

func (m *mockTournamentService) CreateTournament(ctx context.Context, creatorID uuid.UUID, input services.CreateTournamentInput) (*models.Tournament, error) {
	return m.createFn(ctx, creatorID, input)
}

func (m *mockTournamentService) GetTournamentByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, services.ErrTournamentNotFound
}

func (m *mockTournamentService) ListTournaments(ctx context.Context, input services.ListTournamentsInput) ([]models.Tournament, error) {
	return m.listFn(ctx, input)
}

func (m *mockTournamentService) UpdateTournament(ctx context.Context, id uuid.UUID, userID uuid.UUID, input services.UpdateTournamentInput) (*models.Tournament, error) {
	return m.updateFn(ctx, id, userID, input)
}

func (m *mockTournamentService) DeleteTournament(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return m.deleteFn(ctx, id, userID)
}

// --- Membership service ---

type mockMembershipService struct {
	assignFn    func(ctx context.Context, tid, userID uuid.UUID, ids []uuid.UUID) (int, error)
	replaceFn   func(ctx context.Context, tid, userID uuid.UUID, ids []uuid.UUID) error
	listTeamsFn func(ctx context.Context, tid uuid.UUID) ([]models.Team, error)
	availableFn func(ctx context.Context, tid uuid.UUID) ([]models.Team, error)
	removeFn    func(ctx context.Context, tid, userID, teamID uuid.UUID) error
	overviewFn  func(ctx context.Context) ([]models.Tournament, error)
}

func (m *mockMembershipService) AssignTeams(ctx context.Context, tid uuid.UUID, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	return m.assignFn(ctx, tid, userID, ids)
}

func (m *mockMembershipService) ReplaceTeams(ctx context.Context, tid uuid.UUID, userID uuid.UUID, ids []uuid.UUID) error {
	return m.replaceFn(ctx, tid, userID, ids)
}

func (m *mockMembershipService) ListTeams(ctx context.Context, tid uuid.UUID) ([]models.Team, error) {
	if m.listTeamsFn != nil {
		return m.listTeamsFn(ctx, tid)
	}
	return []models.Team{}, nil
}

func (m *mockMembershipService) ListAvailableTeams(ctx context.Context, tid uuid.UUID) ([]models.Team, error) {
	return m.availableFn(ctx, tid)
}

func (m *mockMembershipService) RemoveTeam(ctx context.Context, tid uuid.UUID, userID uuid.UUID, teamID uuid.UUID) error {
	return m.removeFn(ctx, tid, userID, teamID)
}

func (m *mockMembershipService) ListTournamentsWithTeams(ctx context.Context) ([]models.Tournament, error) {
	return m.overviewFn(ctx)
}

// --- Standings service ---

type mockStandingsService struct {
	getFn func(ctx context.Context, tid uuid.UUID) ([]models.Standing, error)
}

func (m *mockStandingsService) GetStandings(ctx context.Context, tid uuid.UUID) ([]models.Standing, error) {
	return m.getFn(ctx, tid)
}

func (m *mockStandingsService) Publish(ctx context.Context, tid uuid.UUID) {}

// --- Match service ---

type mockMatchService struct {
	scheduleFn func(ctx context.Context, userID uuid.UUID, input services.ScheduleMatchInput) (*models.Match, error)
	listFn     func(ctx context.Context, input services.ListMatchesInput) ([]models.Match, error)
	getFn      func(ctx context.Context, id uuid.UUID) (*models.Match, error)
	scoreFn    func(ctx context.Context, id, userID uuid.UUID, input services.RecordScoreInput) (*models.Match, error)
	statusFn   func(ctx context.Context, id, userID uuid.UUID, status models.MatchStatus) (*models.Match, error)
	deleteFn   func(ctx context.Context, id, userID uuid.UUID) error
	fixturesFn func(ctx context.Context, tid, userID uuid.UUID, input services.GenerateFixturesInput) ([]models.Match, error)
}

func (m *mockMatchService) ScheduleMatch(ctx context.Context, userID uuid.UUID, input services.ScheduleMatchInput) (*models.Match, error) {
	return m.scheduleFn(ctx, userID, input)
}

func (m *mockMatchService) ListMatches(ctx context.Context, input services.ListMatchesInput) ([]models.Match, error) {
	return m.listFn(ctx, input)
}

func (m *mockMatchService) GetMatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return m.getFn(ctx, id)
}

func (m *mockMatchService) RecordScore(ctx context.Context, id uuid.UUID, userID uuid.UUID, input services.RecordScoreInput) (*models.Match, error) {
	return m.scoreFn(ctx, id, userID, input)
}

func (m *mockMatchService) UpdateStatus(ctx context.Context, id uuid.UUID, userID uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	return m.statusFn(ctx, id, userID, status)
}

func (m *mockMatchService) DeleteMatch(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return m.deleteFn(ctx, id, userID)
}

func (m *mockMatchService) GenerateFixtures(ctx context.Context, tid uuid.UUID, userID uuid.UUID, input services.GenerateFixturesInput) ([]models.Match, error) {
	return m.fixturesFn(ctx, tid, userID, input)
}

// --- Team service ---

type mockTeamService struct {
	createFn func(ctx context.Context, creatorID uuid.UUID, input services.CreateTeamInput) (*models.Team, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*models.Team, error)
	listFn   func(ctx context.Context, order repositories.TeamOrder) ([]models.Team, error)
	updateFn func(ctx context.Context, id, userID uuid.UUID, input services.UpdateTeamInput) (*models.Team, error)
	uploadFn func(ctx context.Context, id, userID uuid.UUID, contentType string, file io.Reader) (*models.Team, error)
	deleteFn func(ctx context.Context, id, userID uuid.UUID) error
}

func (m *mockTeamService) CreateTeam(ctx context.Context, creatorID uuid.UUID, input services.CreateTeamInput) (*models.Team, error) {
	return m.createFn(ctx, creatorID, input)
}

func (m *mockTeamService) GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return m.getFn(ctx, id)
}

func (m *mockTeamService) ListTeams(ctx context.Context, order repositories.TeamOrder) ([]models.Team, error) {
	return m.listFn(ctx, order)
}

func (m *mockTeamService) UpdateTeam(ctx context.Context, id uuid.UUID, userID uuid.UUID, input services.UpdateTeamInput) (*models.Team, error) {
	return m.updateFn(ctx, id, userID, input)
}

func (m *mockTeamService) UploadLogo(ctx context.Context, id uuid.UUID, userID uuid.UUID, contentType string, file io.Reader) (*models.Team, error) {
	return m.uploadFn(ctx, id, userID, contentType, file)
}

func (m *mockTeamService) DeleteTeam(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return m.deleteFn(ctx, id, userID)
}

// --- Player / dashboard services ---

type mockPlayerService struct {
	createFn func(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error)
	listFn   func(ctx context.Context) ([]models.Player, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlayerService) CreatePlayer(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error) {
	return m.createFn(ctx, input)
}

func (m *mockPlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return m.listFn(ctx)
}

func (m *mockPlayerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockDashboardService struct {
	stats models.DashboardStats
	err   error
}

func (m *mockDashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	return m.stats, m.err
}
