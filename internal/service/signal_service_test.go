package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/match-signal-service/internal/mocks"
	"github.com/cypherlabdev/match-signal-service/internal/models"
	"github.com/cypherlabdev/match-signal-service/pkg/signals"
)

var fixedNow = time.Date(2026, time.October, 17, 14, 0, 0, 0, time.UTC)

// testSignalServiceSetup is a helper struct to hold test dependencies
type testSignalServiceSetup struct {
	service    *SignalService
	mockEngine *mocks.MockEngine
	mockCache  *mocks.MockCache
	ctx        context.Context
	ctrl       *gomock.Controller
}

// setupTestSignalService creates a test service with mocked dependencies
func setupTestSignalService(t *testing.T) *testSignalServiceSetup {
	ctrl := gomock.NewController(t)

	mockEngine := mocks.NewMockEngine(ctrl)
	mockCache := mocks.NewMockCache(ctrl)

	svc := NewSignalService(mockEngine, mockCache, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }

	return &testSignalServiceSetup{
		service:    svc,
		mockEngine: mockEngine,
		mockCache:  mockCache,
		ctx:        context.Background(),
		ctrl:       ctrl,
	}
}

func testMatch() *models.Match {
	return &models.Match{
		MatchID:       "match-1",
		Championship:  "serie_a",
		Status:        "SCHEDULED",
		Probabilities: map[string]float64{"home_win": 0.72, "draw": 0.15, "away_win": 0.13},
		Confidence:    0.78,
	}
}

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Leagues: map[string]map[string][]models.Match{
			"serie_a": {"7": {*testMatch()}},
		},
	}
}

// TestClassifyMatch_Success tests classification with caching and the default clock
func TestClassifyMatch_Success(t *testing.T) {
	setup := setupTestSignalService(t)

	m := testMatch()
	user := models.UserContext{Profile: models.ProfileBalanced, Bankroll: 1000}
	expected := &models.Classification{MatchID: "match-1", Championship: "serie_a", Grade: models.GradeB}

	setup.mockEngine.EXPECT().
		ClassifyMatch(m, nil, models.UserContext{Profile: models.ProfileBalanced, Bankroll: 1000, Now: fixedNow}).
		Return(expected)
	setup.mockCache.EXPECT().SetClassification(setup.ctx, expected).Return(nil)

	c, err := setup.service.ClassifyMatch(setup.ctx, m, nil, user)

	require.NoError(t, err)
	assert.Equal(t, expected, c)
}

// TestClassifyMatch_CacheFailure tests that cache errors never fail the request
func TestClassifyMatch_CacheFailure(t *testing.T) {
	setup := setupTestSignalService(t)

	expected := &models.Classification{MatchID: "match-1", Championship: "serie_a"}
	setup.mockEngine.EXPECT().ClassifyMatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(expected)
	setup.mockCache.EXPECT().SetClassification(gomock.Any(), expected).Return(errors.New("redis down"))

	c, err := setup.service.ClassifyMatch(setup.ctx, testMatch(), nil, models.UserContext{})

	require.NoError(t, err)
	assert.Equal(t, expected, c)
}

// TestClassifyMatch_NoLeagueSkipsCache tests that unkeyed classifications are not cached
func TestClassifyMatch_NoLeagueSkipsCache(t *testing.T) {
	setup := setupTestSignalService(t)

	setup.mockEngine.EXPECT().
		ClassifyMatch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.Classification{MatchID: "match-1"})

	c, err := setup.service.ClassifyMatch(setup.ctx, testMatch(), nil, models.UserContext{})

	require.NoError(t, err)
	assert.Equal(t, "match-1", c.MatchID)
}

// TestClassifyMatch_NilMatch tests input validation
func TestClassifyMatch_NilMatch(t *testing.T) {
	setup := setupTestSignalService(t)

	c, err := setup.service.ClassifyMatch(setup.ctx, nil, nil, models.UserContext{})

	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestProcessSnapshot_Success tests classification, both rankings and caching
func TestProcessSnapshot_Success(t *testing.T) {
	setup := setupTestSignalService(t)

	snap := testSnapshot()
	user := models.UserContext{Profile: models.ProfilePrudent, Bankroll: 500, Now: fixedNow.Add(time.Hour)}
	classifications := []*models.Classification{
		{MatchID: "match-1", Championship: "serie_a", Grade: models.GradeB},
		{MatchID: "match-2", Championship: "serie_a", Grade: models.GradeD, NoBet: true},
	}
	play := []models.LeagueRanking{{League: "serie_a", Strategy: models.StrategyPlay, TotalScore: 0.8}}
	rec := []models.LeagueRanking{{League: "serie_a", Strategy: models.StrategyRecover, TotalScore: 1.2}}

	gomock.InOrder(
		setup.mockEngine.EXPECT().ClassifySnapshot(snap, user).Return(classifications),
		setup.mockCache.EXPECT().SetClassifications(setup.ctx, classifications).Return(nil),
		setup.mockEngine.EXPECT().RankSnapshot(snap, models.StrategyPlay).Return(play),
		setup.mockCache.EXPECT().SetRankings(setup.ctx, models.StrategyPlay, play).Return(nil),
		setup.mockEngine.EXPECT().RankSnapshot(snap, models.StrategyRecover).Return(rec),
		setup.mockCache.EXPECT().SetRankings(setup.ctx, models.StrategyRecover, rec).Return(nil),
	)

	result, err := setup.service.ProcessSnapshot(setup.ctx, "snap-42", snap, user)

	require.NoError(t, err)
	assert.Equal(t, "snap-42", result.SnapshotID)
	assert.Equal(t, 2, result.Classified)
	assert.Equal(t, 1, result.NoBet)
	assert.Equal(t, play, result.Rankings[models.StrategyPlay])
	assert.Equal(t, rec, result.Rankings[models.StrategyRecover])
	assert.Equal(t, user.Now, result.ProcessedAt)
}

// TestProcessSnapshot_BalancedFailOpen tests that cached classifications carry the league-level fail-open
func TestProcessSnapshot_BalancedFailOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache(ctrl)
	engine := signals.NewEngine(models.EngineParams{LeagueOrder: []string{"serie_a"}}, zerolog.Nop())
	svc := NewSignalService(engine, mockCache, zerolog.Nop())

	weak := func(id string, conf float64) models.Match {
		return models.Match{
			MatchID:       id,
			Championship:  "serie_a",
			Status:        "SCHEDULED",
			Probabilities: map[string]float64{"home_win": 0.70, "draw": 0.15, "away_win": 0.15},
			Confidence:    conf,
		}
	}
	snap := &models.Snapshot{
		Leagues: map[string]map[string][]models.Match{
			"serie_a": {"7": {weak("x", 0.30), weak("y", 0.20)}},
		},
	}

	var cached []*models.Classification
	mockCache.EXPECT().
		SetClassifications(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, list []*models.Classification) error {
			cached = list
			return nil
		})
	mockCache.EXPECT().SetRankings(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	user := models.UserContext{Profile: models.ProfileBalanced, Bankroll: 100, Now: fixedNow}
	_, err := svc.ProcessSnapshot(context.Background(), "snap-1", snap, user)

	require.NoError(t, err)
	require.Len(t, cached, 2)
	for _, c := range cached {
		assert.True(t, c.AllowedByProfile, c.MatchID)
	}
}

// TestProcessSnapshot_GeneratesID tests snapshot ID generation and cache failure tolerance
func TestProcessSnapshot_GeneratesID(t *testing.T) {
	setup := setupTestSignalService(t)

	snap := testSnapshot()
	setup.mockEngine.EXPECT().ClassifySnapshot(snap, gomock.Any()).Return(nil)
	setup.mockCache.EXPECT().SetClassifications(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	setup.mockEngine.EXPECT().RankSnapshot(snap, gomock.Any()).Return(nil).Times(2)
	setup.mockCache.EXPECT().SetRankings(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(2)

	result, err := setup.service.ProcessSnapshot(setup.ctx, "", snap, models.UserContext{})

	require.NoError(t, err)
	_, parseErr := uuid.Parse(result.SnapshotID)
	assert.NoError(t, parseErr)
	assert.Equal(t, fixedNow, result.ProcessedAt)
	assert.Equal(t, 0, result.Classified)
}

// TestProcessSnapshot_NilSnapshot tests input validation
func TestProcessSnapshot_NilSnapshot(t *testing.T) {
	setup := setupTestSignalService(t)

	result, err := setup.service.ProcessSnapshot(setup.ctx, "snap-1", nil, models.UserContext{})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestGetClassification tests cached lookups and not-found propagation
func TestGetClassification(t *testing.T) {
	setup := setupTestSignalService(t)

	expected := &models.Classification{MatchID: "match-1", Championship: "serie_a"}
	setup.mockCache.EXPECT().GetClassification(setup.ctx, "serie_a", "match-1").Return(expected, nil)
	setup.mockCache.EXPECT().GetClassification(setup.ctx, "serie_a", "missing").Return(nil, models.ErrNotFound)

	c, err := setup.service.GetClassification(setup.ctx, "serie_a", "match-1")
	require.NoError(t, err)
	assert.Equal(t, expected, c)

	c, err = setup.service.GetClassification(setup.ctx, "serie_a", "missing")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// TestGetLeagueClassifications tests ordering by match ID
func TestGetLeagueClassifications(t *testing.T) {
	setup := setupTestSignalService(t)

	setup.mockCache.EXPECT().GetByLeague(setup.ctx, "serie_a").Return([]*models.Classification{
		{MatchID: "m3"}, {MatchID: "m1"}, {MatchID: "m2"},
	}, nil)

	list, err := setup.service.GetLeagueClassifications(setup.ctx, "serie_a")

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "m1", list[0].MatchID)
	assert.Equal(t, "m2", list[1].MatchID)
	assert.Equal(t, "m3", list[2].MatchID)
}

// TestGetLeagueClassifications_Error tests cache error wrapping
func TestGetLeagueClassifications_Error(t *testing.T) {
	setup := setupTestSignalService(t)

	setup.mockCache.EXPECT().GetByLeague(gomock.Any(), "serie_a").Return(nil, errors.New("scan failed"))

	list, err := setup.service.GetLeagueClassifications(setup.ctx, "serie_a")

	assert.Nil(t, list)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scan failed")
}

// TestGetRankings tests cached ranking retrieval
func TestGetRankings(t *testing.T) {
	setup := setupTestSignalService(t)

	expected := []models.LeagueRanking{{League: "serie_a", Strategy: models.StrategyRecover}}
	setup.mockCache.EXPECT().GetRankings(setup.ctx, models.StrategyRecover).Return(expected, nil)
	setup.mockCache.EXPECT().GetRankings(setup.ctx, models.StrategyPlay).Return(nil, models.ErrNotFound)

	rankings, err := setup.service.GetRankings(setup.ctx, models.StrategyRecover)
	require.NoError(t, err)
	assert.Equal(t, expected, rankings)

	_, err = setup.service.GetRankings(setup.ctx, models.StrategyPlay)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// TestReady tests the cache ping passthrough
func TestReady(t *testing.T) {
	setup := setupTestSignalService(t)

	setup.mockCache.EXPECT().Ping(setup.ctx).Return(nil)
	setup.mockCache.EXPECT().Ping(setup.ctx).Return(errors.New("connection refused"))

	assert.NoError(t, setup.service.Ready(setup.ctx))
	assert.Error(t, setup.service.Ready(setup.ctx))
}
