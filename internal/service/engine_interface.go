package service

import (
	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// Engine is an interface that abstracts match classification and league ranking
// This allows for easier testing and mocking
type Engine interface {
	ClassifyMatch(m *models.Match, snap *models.Snapshot, user models.UserContext) *models.Classification
	ClassifySnapshot(snap *models.Snapshot, user models.UserContext) []*models.Classification
	RankSnapshot(snap *models.Snapshot, strategy models.Strategy) []models.LeagueRanking
}
