package models

type DashboardStats struct {
	TournamentsTotal int                 `json:"tournaments_total"`
	TeamsTotal       int                 `json:"teams_total"`
	PlayersTotal     int                 `json:"players_total"`
	MatchesTotal     int                 `json:"matches_total"`
	MatchesByStatus  map[MatchStatus]int `json:"matches_by_status"`
}
