package service

import (
	"context"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	SetClassification(ctx context.Context, c *models.Classification) error
	GetClassification(ctx context.Context, league, matchID string) (*models.Classification, error)
	SetClassifications(ctx context.Context, list []*models.Classification) error
	GetByLeague(ctx context.Context, league string) ([]*models.Classification, error)
	SetRankings(ctx context.Context, strategy models.Strategy, rankings []models.LeagueRanking) error
	GetRankings(ctx context.Context, strategy models.Strategy) ([]models.LeagueRanking, error)
	Ping(ctx context.Context) error
	Close() error
}
