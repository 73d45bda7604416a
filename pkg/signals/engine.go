package signals

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// Engine classifies matches and ranks leagues. It holds only read-only
// parameters, so one Engine can serve concurrent callers.
type Engine struct {
	params models.EngineParams
	logger zerolog.Logger
}

// NewEngine creates a new signal engine
func NewEngine(params models.EngineParams, logger zerolog.Logger) *Engine {
	if params.ReliabilityMinSamples <= 0 {
		params.ReliabilityMinSamples = DefaultReliabilityMinSamples
	}
	if params.Location == nil {
		params.Location = time.UTC
	}
	return &Engine{
		params: params,
		logger: logger.With().Str("component", "signal_engine").Logger(),
	}
}

// Params returns the engine parameters
func (e *Engine) Params() models.EngineParams {
	return e.params
}

// badgeContext collects the side feeds for one match out of a snapshot
func (e *Engine) badgeContext(m *models.Match, snap *models.Snapshot, now time.Time) BadgeContext {
	bc := BadgeContext{
		Now:        now,
		Location:   e.params.Location,
		MinSamples: e.params.ReliabilityMinSamples,
	}
	if snap == nil {
		return bc
	}
	if c, ok := snap.Calibration[m.Championship]; ok {
		bc.Calibration = &c
	}
	bc.GlobalCalibration = snap.GlobalCalibration
	if t, ok := snap.Trend[m.Championship]; ok {
		bc.Trend = &t
	}
	return bc
}

// ClassifyMatch derives every signal of one match. snap may be nil when no side feeds are available.
func (e *Engine) ClassifyMatch(m *models.Match, snap *models.Snapshot, user models.UserContext) *models.Classification {
	if m == nil {
		m = &models.Match{}
	}
	tenant := e.params.Tenant
	profile := ResolveProfile(user.Profile, tenant)
	best := BestProbability(m)
	conf := Confidence(m)
	score := QualityScore(m)

	c := &models.Classification{
		MatchID:          m.MatchID,
		Championship:     m.Championship,
		Status:           m.Status,
		BestProbability:  best,
		Confidence:       conf,
		ConfidenceLabel:  ConfidenceLabelOf(conf),
		QualityScore:     score,
		Grade:            GradeForScore(score),
		Risk:             RiskLabel(m),
		MatchRisk:        MatchRisk(m),
		Chaos:            ChaosOf(m),
		ChaosSeverity:    models.ChaosNone,
		FragilityLevel:   FragilityLevel(m),
		NoBet:            IsNoBet(m),
		Profile:          profile,
		AllowedByProfile: meetsTenantFloor(m, tenant) && MatchAllowedByProfile(m, profile),
		Stake:            RecommendStake(m, profile, user.Bankroll, tenant),
		Badges:           BadgeList(m, e.badgeContext(m, snap, user.Now)),
		Picks:            Picks(m),
		Distribution:     Distribution(m),
	}
	if c.Chaos != nil {
		c.ChaosSeverity = ChaosSeverityFor(c.Chaos.Index)
	}
	if c.NoBet {
		c.NoBetReason = NoBetReason(m)
	}

	if snap != nil {
		if markets := snap.Markets[m.MatchID]; len(markets) > 0 {
			active := tenant.Filters.ActiveMarkets
			c.Markets = OrderMarkets(markets, active)
			c.BestMarket, _ = BestMarketKey(markets, active)
			c.UnstableMarkets = UnstableMarkets(markets, active)
		}
	}

	e.logger.Debug().
		Str("match_id", c.MatchID).
		Str("grade", string(c.Grade)).
		Str("risk", string(c.Risk)).
		Bool("no_bet", c.NoBet).
		Msg("classified match")

	return c
}

// leagueKeys returns the snapshot leagues in display order
func (e *Engine) leagueKeys(snap *models.Snapshot) []string {
	keys := make([]string, 0, len(snap.Leagues))
	for k := range snap.Leagues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return OrderLeagueKeys(keys, e.params.LeagueOrder)
}

// ClassifySnapshot classifies every match of a snapshot, league by league in display order.
// AllowedByProfile is decided per league, including the BALANCED fail-open.
func (e *Engine) ClassifySnapshot(snap *models.Snapshot, user models.UserContext) []*models.Classification {
	if snap == nil {
		return nil
	}

	profile := ResolveProfile(user.Profile, e.params.Tenant)

	var out []*models.Classification
	for _, league := range e.leagueKeys(snap) {
		matches := snap.LeagueMatches(league)
		allowed := AllowedMask(matches, profile, e.params.Tenant)
		for i := range matches {
			if matches[i].Championship == "" {
				matches[i].Championship = league
			}
			c := e.ClassifyMatch(&matches[i], snap, user)
			// The league is the filter's candidate set, so fail-open applies here
			c.AllowedByProfile = allowed[i]
			out = append(out, c)
		}
	}

	e.logger.Info().
		Int("leagues", len(snap.Leagues)).
		Int("classified", len(out)).
		Msg("snapshot classification complete")

	return out
}

// RankLeague builds the shortlist of one league
func (e *Engine) RankLeague(league string, matches []models.Match, strategy models.Strategy) models.LeagueRanking {
	return RankLeague(league, matches, strategy)
}

// RankSnapshot ranks every league of a snapshot and orders leagues by pick strength.
// Leagues without picks have a zero total and sort last.
func (e *Engine) RankSnapshot(snap *models.Snapshot, strategy models.Strategy) []models.LeagueRanking {
	if snap == nil {
		return nil
	}

	rankings := make([]models.LeagueRanking, 0, len(snap.Leagues))
	for _, league := range e.leagueKeys(snap) {
		rankings = append(rankings, RankLeague(league, snap.LeagueMatches(league), strategy))
	}
	SortLeagueRankings(rankings)

	e.logger.Info().
		Str("strategy", string(strategy)).
		Int("leagues", len(rankings)).
		Msg("snapshot ranking complete")

	return rankings
}

// FilterMatches applies the tenant floor and the resolved profile filter
func (e *Engine) FilterMatches(matches []models.Match, profile models.Profile) []models.Match {
	return FilterByProfile(matches, ResolveProfile(profile, e.params.Tenant), e.params.Tenant)
}
