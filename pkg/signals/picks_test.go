package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// TestIsTerminal tests the finished-status taxonomy
func TestIsTerminal(t *testing.T) {
	for _, s := range []string{"FINISHED", "FT", "AET", "PEN", "ft", " pen "} {
		assert.True(t, IsTerminal(s), s)
	}
	for _, s := range []string{"SCHEDULED", "LIVE", "HT", "", "POSTPONED"} {
		assert.False(t, IsTerminal(s), s)
	}
}

// TestPickPlayForLeague_Ordering tests score ordering, gating and the two-pick cap
func TestPickPlayForLeague_Ordering(t *testing.T) {
	finished := newTestMatch("finished", 0.90, 0.95)
	finished.Status = "FT"

	matches := []models.Match{
		newTestMatch("ok-1", 0.60, 0.65),
		withChaos(newTestMatch("chaotic", 0.90, 0.90), 75, false),
		newTestMatch("best", 0.80, 0.85),
		newTestMatch("low-conf", 0.80, 0.55),
		newTestMatch("low-prob", 0.54, 0.90),
		withChaos(newTestMatch("calm", 0.70, 0.75), 10, false),
		finished,
	}

	rows := PickPlayForLeague(matches)

	require.Len(t, rows, 2)
	assert.Equal(t, "best", rows[0].Match.MatchID)
	assert.Equal(t, "calm", rows[1].Match.MatchID)
	for _, r := range rows {
		assert.Equal(t, models.PickPlay, r.Kind)
		assert.NotEmpty(t, r.Reasons)
	}

	// best: 0.55*0.80 + 0.35*0.85 + 0.10*0.5
	assert.InDelta(t, 0.7875, rows[0].Score, 1e-9)
	assert.Equal(t, 50.0, rows[0].ChaosIndex)
}

// TestPickPlayForLeague_Invariants tests that every returned row clears the gates
func TestPickPlayForLeague_Invariants(t *testing.T) {
	var matches []models.Match
	probs := []float64{0.45, 0.55, 0.60, 0.72, 0.85}
	confs := []float64{0.40, 0.60, 0.75, 0.90}
	chaos := []float64{20, 55, 69.9, 70, 90}
	for _, p := range probs {
		for _, c := range confs {
			for _, ch := range chaos {
				matches = append(matches, withChaos(newTestMatch("m", p, c), ch, false))
			}
		}
	}

	rows := PickPlayForLeague(matches)

	assert.LessOrEqual(t, len(rows), 2)
	for _, r := range rows {
		assert.Less(t, r.ChaosIndex, 70.0)
		assert.GreaterOrEqual(t, r.BestProbability, 0.55)
		assert.GreaterOrEqual(t, r.Confidence, 0.60)
	}
}

// TestPickPlayForLeague_AllWeak tests that a flat league yields no PLAY picks
func TestPickPlayForLeague_AllWeak(t *testing.T) {
	var matches []models.Match
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		matches = append(matches, newTestMatch(id, 0.50, 0.50))
	}

	assert.Empty(t, PickPlayForLeague(matches))

	// No chaos object means index 50, below the recover gate
	assert.Empty(t, PickRecoverForLeague(matches))

	// The HIGH slot depends only on the chaos and upset gates
	matches[2] = withChaos(matches[2], 60, false)
	matches[4] = withChaos(matches[4], 80, true)

	rows := PickRecoverForLeague(matches)
	require.Len(t, rows, 1)
	assert.Equal(t, models.PickHigh, rows[0].Kind)
	assert.Equal(t, "e", rows[0].Match.MatchID)
	assert.Contains(t, rows[0].Reasons, "upset watch")
}

// TestPickRecoverForLeague tests the LOW plus HIGH composition
func TestPickRecoverForLeague(t *testing.T) {
	matches := []models.Match{
		newTestMatch("favourite", 0.80, 0.85),
		newTestMatch("second", 0.70, 0.75),
		withChaos(newTestMatch("open", 0.50, 0.55), 65, false),
		withChaos(newTestMatch("upset", 0.75, 0.45), 88, true),
		withChaos(newTestMatch("too-unsure", 0.50, 0.35), 90, true),
	}

	rows := PickRecoverForLeague(matches)

	require.Len(t, rows, 2)
	assert.Equal(t, models.PickLow, rows[0].Kind)
	assert.Equal(t, "favourite", rows[0].Match.MatchID)
	assert.Equal(t, models.PickHigh, rows[1].Kind)

	// open:  0.55*0.50 + 0.35*0.65 + 0.10*0.45 = 0.5475
	// upset: 0.55*0.25 + 0.35*0.88 + 0.10*0.55 = 0.5005
	assert.Equal(t, "open", rows[1].Match.MatchID)
	assert.InDelta(t, 0.5475, rows[1].Score, 1e-9)
}

// TestPickRecoverForLeague_Fallback tests the second PLAY pick relabeled HIGH
func TestPickRecoverForLeague_Fallback(t *testing.T) {
	matches := []models.Match{
		newTestMatch("second", 0.70, 0.75),
		newTestMatch("favourite", 0.80, 0.85),
		newTestMatch("third", 0.62, 0.66),
	}

	rows := PickRecoverForLeague(matches)

	require.Len(t, rows, 2)
	assert.Equal(t, "favourite", rows[0].Match.MatchID)
	assert.Equal(t, models.PickLow, rows[0].Kind)
	assert.Equal(t, "second", rows[1].Match.MatchID)
	assert.Equal(t, models.PickHigh, rows[1].Kind)
	assert.Equal(t, "second play pick", rows[1].Reasons[0])
}

// TestPickRecoverForLeague_SingleFavourite tests that a lone PLAY pick gives only the LOW slot
func TestPickRecoverForLeague_SingleFavourite(t *testing.T) {
	matches := []models.Match{
		newTestMatch("favourite", 0.80, 0.85),
		newTestMatch("weak", 0.50, 0.50),
	}

	rows := PickRecoverForLeague(matches)

	require.Len(t, rows, 1)
	assert.Equal(t, models.PickLow, rows[0].Kind)
}

// TestPickRecoverForLeague_NeverDuplicates tests that LOW and HIGH are distinct matches
func TestPickRecoverForLeague_NeverDuplicates(t *testing.T) {
	// The favourite also clears the recover gate through its upset flag
	matches := []models.Match{
		withChaos(newTestMatch("favourite", 0.80, 0.85), 60, true),
		withChaos(newTestMatch("other", 0.58, 0.62), 56, false),
	}

	rows := PickRecoverForLeague(matches)

	require.Len(t, rows, 2)
	assert.NotEqual(t, rows[0].Match.MatchID, rows[1].Match.MatchID)
}

// TestPickRecoverForLeague_MissingIDs tests that matches without IDs keep distinct slots
func TestPickRecoverForLeague_MissingIDs(t *testing.T) {
	favourite := newTestMatch("", 0.80, 0.85)
	volatile := withChaos(newTestMatch("", 0.50, 0.55), 65, false)

	rows := PickRecoverForLeague([]models.Match{favourite, volatile})

	require.Len(t, rows, 2)
	assert.Equal(t, models.PickLow, rows[0].Kind)
	assert.Equal(t, 0.80, rows[0].BestProbability)
	assert.Equal(t, models.PickHigh, rows[1].Kind)
	assert.Equal(t, 0.50, rows[1].BestProbability)

	// The fallback is not blocked by a shared empty ID either
	rows = PickRecoverForLeague([]models.Match{
		newTestMatch("", 0.80, 0.85),
		newTestMatch("", 0.70, 0.75),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, models.PickHigh, rows[1].Kind)
	assert.Equal(t, "second play pick", rows[1].Reasons[0])
}

// TestPlayableBase_KickoffOrder tests kickoff ordering with unknown kickoffs last
func TestPlayableBase_KickoffOrder(t *testing.T) {
	unknown := newTestMatch("unknown", 0.70, 0.75)
	late := newTestMatch("late", 0.70, 0.75)
	late.KickoffUnix = int64Ptr(testNow.Add(3 * time.Hour).Unix())
	early := newTestMatch("early", 0.70, 0.75)
	early.KickoffUnix = int64Ptr(testNow.Add(1 * time.Hour).Unix())
	finished := newTestMatch("finished", 0.70, 0.75)
	finished.Status = "FT"

	base := PlayableBase([]models.Match{unknown, late, finished, early})

	assert.Equal(t, []string{"early", "late", "unknown"}, matchIDs(base))

	// Equal scores tie-break on kickoff
	rows := PickPlayForLeague([]models.Match{unknown, late, early})
	require.Len(t, rows, 2)
	assert.Equal(t, "early", rows[0].Match.MatchID)
	assert.Equal(t, "late", rows[1].Match.MatchID)
}

// TestRankLeague tests strategy dispatch and total score
func TestRankLeague(t *testing.T) {
	matches := []models.Match{
		newTestMatch("a", 0.80, 0.85),
		newTestMatch("b", 0.70, 0.75),
	}

	play := RankLeague("serie_a", matches, models.StrategyPlay)
	assert.Equal(t, models.StrategyPlay, play.Strategy)
	require.Len(t, play.Rows, 2)
	assert.InDelta(t, play.Rows[0].Score+play.Rows[1].Score, play.TotalScore, 1e-9)

	rec := RankLeague("serie_a", matches, models.StrategyRecover)
	assert.Equal(t, models.StrategyRecover, rec.Strategy)
	require.Len(t, rec.Rows, 2)
	assert.Equal(t, models.PickLow, rec.Rows[0].Kind)

	unknown := RankLeague("serie_a", matches, "whatever")
	assert.Equal(t, models.StrategyPlay, unknown.Strategy)
}

// TestOrderLeagueKeys tests known-first ordering with unknown leagues last
func TestOrderLeagueKeys(t *testing.T) {
	known := []string{"serie_a", "premier_league", "la_liga"}
	leagues := []string{"zeta_league", "la_liga", "alpha_cup", "serie_a"}

	assert.Equal(t,
		[]string{"serie_a", "la_liga", "alpha_cup", "zeta_league"},
		OrderLeagueKeys(leagues, known))
}

// TestSortLeagueRankings tests descending ordering by total score with stable ties
func TestSortLeagueRankings(t *testing.T) {
	rankings := []models.LeagueRanking{
		{League: "a", TotalScore: 0.5},
		{League: "b", TotalScore: 1.4},
		{League: "c", TotalScore: 0.5},
		{League: "d", TotalScore: 0},
	}

	SortLeagueRankings(rankings)

	var order []string
	for _, r := range rankings {
		order = append(order, r.League)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, order)
}
