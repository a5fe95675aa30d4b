package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/Dosada05/football-console/storage"
	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock Tournament Repository ---

type mockTournamentRepo struct {
	createFn  func(ctx context.Context, t *models.Tournament) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	listFn    func(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	updateFn  func(ctx context.Context, t *models.Tournament) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	countFn   func(ctx context.Context) (int, error)
}

func (m *mockTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockTournamentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repositories.ErrTournamentNotFound
}

func (m *mockTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, t)
	}
	return nil
}

func (m *mockTournamentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTournamentRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

// --- Mock Team Repository ---

type mockTeamRepo struct {
	createFn        func(ctx context.Context, team *models.Team) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*models.Team, error)
	listFn          func(ctx context.Context, order repositories.TeamOrder) ([]models.Team, error)
	updateFn        func(ctx context.Context, team *models.Team) error
	updateLogoKeyFn func(ctx context.Context, id uuid.UUID, logoKey *string) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockTeamRepo) Create(ctx context.Context, team *models.Team) error {
	if m.createFn != nil {
		return m.createFn(ctx, team)
	}
	team.ID = uuid.New()
	team.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repositories.ErrTeamNotFound
}

func (m *mockTeamRepo) List(ctx context.Context, order repositories.TeamOrder) ([]models.Team, error) {
	if m.listFn != nil {
		return m.listFn(ctx, order)
	}
	return nil, nil
}

func (m *mockTeamRepo) Update(ctx context.Context, team *models.Team) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, team)
	}
	return nil
}

func (m *mockTeamRepo) UpdateLogoKey(ctx context.Context, id uuid.UUID, logoKey *string) error {
	if m.updateLogoKeyFn != nil {
		return m.updateLogoKeyFn(ctx, id, logoKey)
	}
	return nil
}

func (m *mockTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTeamRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

// --- Mock Player Repository ---

type mockPlayerRepo struct {
	createFn func(ctx context.Context, player *models.Player) error
	listFn   func(ctx context.Context) ([]models.Player, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
	countFn  func(ctx context.Context) (int, error)
}

func (m *mockPlayerRepo) Create(ctx context.Context, player *models.Player) error {
	if m.createFn != nil {
		return m.createFn(ctx, player)
	}
	player.ID = uuid.New()
	return nil
}

func (m *mockPlayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return nil, repositories.ErrPlayerNotFound
}

func (m *mockPlayerRepo) List(ctx context.Context) ([]models.Player, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPlayerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPlayerRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

// --- Mock Membership Repository ---

type mockMembershipRepo struct {
	addTeamsFn           func(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (int, error)
	replaceFn            func(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) error
	listByTournamentFn   func(ctx context.Context, tournamentID uuid.UUID) ([]models.Membership, error)
	listAllFn            func(ctx context.Context) ([]models.Membership, error)
	listAvailableTeamsFn func(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error)
	existsFn             func(ctx context.Context, tournamentID, teamID uuid.UUID) (bool, error)
	removeFn             func(ctx context.Context, tournamentID, teamID uuid.UUID) error
}

func (m *mockMembershipRepo) AddTeams(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (int, error) {
	if m.addTeamsFn != nil {
		return m.addTeamsFn(ctx, tournamentID, teamIDs)
	}
	return len(teamIDs), nil
}

func (m *mockMembershipRepo) ReplaceForTournament(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, tournamentID, teamIDs)
	}
	return nil
}

func (m *mockMembershipRepo) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Membership, error) {
	if m.listByTournamentFn != nil {
		return m.listByTournamentFn(ctx, tournamentID)
	}
	return nil, nil
}

func (m *mockMembershipRepo) ListAll(ctx context.Context) ([]models.Membership, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockMembershipRepo) ListAvailableTeams(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error) {
	if m.listAvailableTeamsFn != nil {
		return m.listAvailableTeamsFn(ctx, tournamentID)
	}
	return nil, nil
}

func (m *mockMembershipRepo) Exists(ctx context.Context, tournamentID, teamID uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, tournamentID, teamID)
	}
	return true, nil
}

func (m *mockMembershipRepo) Remove(ctx context.Context, tournamentID, teamID uuid.UUID) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, tournamentID, teamID)
	}
	return nil
}

// --- Mock Match Repository ---

type mockMatchRepo struct {
	createFn        func(ctx context.Context, match *models.Match) error
	createManyFn    func(ctx context.Context, matches []*models.Match) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*models.Match, error)
	listFn          func(ctx context.Context, filter repositories.MatchFilter) ([]models.Match, error)
	updateScoreFn   func(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error
	updateStatusFn  func(ctx context.Context, id uuid.UUID, status models.MatchStatus) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
	countByStatusFn func(ctx context.Context) (map[models.MatchStatus]int, error)
	hasMatchesFn    func(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (bool, error)
}

func (m *mockMatchRepo) Create(ctx context.Context, match *models.Match) error {
	if m.createFn != nil {
		return m.createFn(ctx, match)
	}
	match.ID = uuid.New()
	return nil
}

func (m *mockMatchRepo) CreateMany(ctx context.Context, matches []*models.Match) error {
	if m.createManyFn != nil {
		return m.createManyFn(ctx, matches)
	}
	for _, match := range matches {
		match.ID = uuid.New()
	}
	return nil
}

func (m *mockMatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repositories.ErrMatchNotFound
}

func (m *mockMatchRepo) List(ctx context.Context, filter repositories.MatchFilter) ([]models.Match, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockMatchRepo) UpdateScore(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error {
	if m.updateScoreFn != nil {
		return m.updateScoreFn(ctx, id, homeScore, awayScore)
	}
	return nil
}

func (m *mockMatchRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockMatchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockMatchRepo) CountByStatus(ctx context.Context) (map[models.MatchStatus]int, error) {
	if m.countByStatusFn != nil {
		return m.countByStatusFn(ctx)
	}
	return map[models.MatchStatus]int{}, nil
}

func (m *mockMatchRepo) HasMatchesForTeams(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (bool, error) {
	if m.hasMatchesFn != nil {
		return m.hasMatchesFn(ctx, tournamentID, teamIDs)
	}
	return false, nil
}

// --- Mock Uploader ---

type mockUploader struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	uploadFn func(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error)
	deleteFn func(ctx context.Context, key string) error
}

func (m *mockUploader) Upload(ctx context.Context, key string, contentType string, r io.Reader) (*storage.UploadResult, error) {
	m.mu.Lock()
	m.uploaded = append(m.uploaded, key)
	m.mu.Unlock()
	if m.uploadFn != nil {
		return m.uploadFn(ctx, key, contentType, r)
	}
	return &storage.UploadResult{Key: key, Location: m.GetPublicURL(key)}, nil
}

func (m *mockUploader) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, key)
	m.mu.Unlock()
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

// --- Mock Broadcaster ---

type publishedMessage struct {
	TournamentID uuid.UUID
	Type         string
	Payload      interface{}
}

type mockBroadcaster struct {
	mu       sync.Mutex
	messages []publishedMessage
}

func (m *mockBroadcaster) Publish(tournamentID uuid.UUID, messageType string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, publishedMessage{TournamentID: tournamentID, Type: messageType, Payload: payload})
}

func (m *mockBroadcaster) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.messages))
	for i, msg := range m.messages {
		out[i] = msg.Type
	}
	return out
}

// --- Helpers ---

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func sampleTournament(id, owner uuid.UUID) *models.Tournament {
	return &models.Tournament{
		ID:        id,
		Name:      "Spring League",
		StartDate: models.NewDate(2025, 3, 1),
		EndDate:   models.NewDate(2025, 6, 30),
		CreatedBy: owner,
	}
}

func tournamentRepoWith(t *models.Tournament) *mockTournamentRepo {
	return &mockTournamentRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
			if id != t.ID {
				return nil, repositories.ErrTournamentNotFound
			}
			cp := *t
			return &cp, nil
		},
	}
}
