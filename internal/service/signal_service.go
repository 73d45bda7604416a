package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-signal-service/internal/metrics"
	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// ErrInvalidInput is returned for requests the engine cannot classify
var ErrInvalidInput = errors.New("invalid input")

// SignalService orchestrates match classification with caching
type SignalService struct {
	engine Engine
	cache  Cache
	now    func() time.Time
	logger zerolog.Logger
}

// NewSignalService creates a new signal service
func NewSignalService(
	engine Engine,
	cache Cache,
	logger zerolog.Logger,
) *SignalService {
	return &SignalService{
		engine: engine,
		cache:  cache,
		now:    time.Now,
		logger: logger.With().Str("component", "signal_service").Logger(),
	}
}

// withClock fills in the request time when the caller did not
func (s *SignalService) withClock(user models.UserContext) models.UserContext {
	if user.Now.IsZero() {
		user.Now = s.now()
	}
	return user
}

// ClassifyMatch classifies one match against optional side feeds and caches the result
func (s *SignalService) ClassifyMatch(ctx context.Context, m *models.Match, snap *models.Snapshot, user models.UserContext) (*models.Classification, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: match is required", ErrInvalidInput)
	}

	c := s.engine.ClassifyMatch(m, snap, s.withClock(user))
	metrics.RecordClassification(c)

	if c.MatchID != "" && c.Championship != "" {
		if err := s.cache.SetClassification(ctx, c); err != nil {
			metrics.RecordCacheError("set_classification")
			s.logger.Warn().
				Err(err).
				Str("match_id", c.MatchID).
				Str("league", c.Championship).
				Msg("failed to cache classification")
			// Don't fail the request on cache errors
		}
	}

	s.logger.Info().
		Str("match_id", c.MatchID).
		Str("grade", string(c.Grade)).
		Str("risk", string(c.Risk)).
		Bool("no_bet", c.NoBet).
		Str("profile", string(c.Profile)).
		Msg("classified match")

	return c, nil
}

// ProcessSnapshot classifies every match of a snapshot, ranks it under both strategies
// and caches the results. An empty snapshotID is replaced by a generated one.
func (s *SignalService) ProcessSnapshot(ctx context.Context, snapshotID string, snap *models.Snapshot, user models.UserContext) (*models.SnapshotResult, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: snapshot is required", ErrInvalidInput)
	}
	if snapshotID == "" {
		snapshotID = uuid.New().String()
	}
	user = s.withClock(user)

	classifications := s.engine.ClassifySnapshot(snap, user)

	result := &models.SnapshotResult{
		SnapshotID:  snapshotID,
		Classified:  len(classifications),
		Rankings:    make(map[models.Strategy][]models.LeagueRanking, 2),
		ProcessedAt: user.Now,
	}
	for _, c := range classifications {
		metrics.RecordClassification(c)
		if c.NoBet {
			result.NoBet++
		}
	}

	if err := s.cache.SetClassifications(ctx, classifications); err != nil {
		metrics.RecordCacheError("set_classifications")
		s.logger.Warn().
			Err(err).
			Str("snapshot_id", snapshotID).
			Int("count", len(classifications)).
			Msg("failed to cache snapshot classifications")
	}

	for _, strategy := range []models.Strategy{models.StrategyPlay, models.StrategyRecover} {
		rankings := s.engine.RankSnapshot(snap, strategy)
		result.Rankings[strategy] = rankings
		metrics.RecordRankings(rankings)

		if err := s.cache.SetRankings(ctx, strategy, rankings); err != nil {
			metrics.RecordCacheError("set_rankings")
			s.logger.Warn().
				Err(err).
				Str("snapshot_id", snapshotID).
				Str("strategy", string(strategy)).
				Msg("failed to cache rankings")
		}
	}

	s.logger.Info().
		Str("snapshot_id", snapshotID).
		Int("leagues", len(snap.Leagues)).
		Int("classified", result.Classified).
		Int("no_bet", result.NoBet).
		Msg("processed snapshot")

	return result, nil
}

// GetClassification retrieves a cached classification
func (s *SignalService) GetClassification(ctx context.Context, league, matchID string) (*models.Classification, error) {
	c, err := s.cache.GetClassification(ctx, league, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve classification: %w", err)
	}

	s.logger.Debug().
		Str("league", league).
		Str("match_id", matchID).
		Msg("cache hit for classification")

	return c, nil
}

// GetLeagueClassifications retrieves every cached classification of a league, ordered by match ID
func (s *SignalService) GetLeagueClassifications(ctx context.Context, league string) ([]*models.Classification, error) {
	list, err := s.cache.GetByLeague(ctx, league)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve classifications for league: %w", err)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].MatchID < list[j].MatchID
	})

	s.logger.Debug().
		Str("league", league).
		Int("count", len(list)).
		Msg("retrieved classifications by league")

	return list, nil
}

// GetRankings retrieves the cached league rankings of the latest snapshot
func (s *SignalService) GetRankings(ctx context.Context, strategy models.Strategy) ([]models.LeagueRanking, error) {
	rankings, err := s.cache.GetRankings(ctx, strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s rankings: %w", strategy, err)
	}
	return rankings, nil
}

// Ready checks the cache connection
func (s *SignalService) Ready(ctx context.Context) error {
	return s.cache.Ping(ctx)
}
