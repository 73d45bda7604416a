package signals

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// maxPlayPicks caps the PLAY shortlist per league
const maxPlayPicks = 2

var terminalStatuses = map[string]bool{
	"FINISHED": true,
	"FT":       true,
	"AET":      true,
	"PEN":      true,
}

// IsTerminal reports whether the status marks a finished match
func IsTerminal(status string) bool {
	return terminalStatuses[strings.ToUpper(strings.TrimSpace(status))]
}

// IsPlayableBase keeps matches that have not finished yet
func IsPlayableBase(m *models.Match) bool {
	return m != nil && !IsTerminal(m.Status)
}

// PlayableBase returns the non-terminal matches ordered by kickoff. Unknown kickoffs go last.
func PlayableBase(matches []models.Match) []models.Match {
	out := make([]models.Match, 0, len(matches))
	for i := range matches {
		if IsPlayableBase(&matches[i]) {
			out = append(out, matches[i])
		}
	}
	models.SortByKickoff(out)
	return out
}

// PlayScore rewards likely, confident and calm matches
func PlayScore(best, conf, chaosIndex float64) float64 {
	return 0.55*best + 0.35*conf + 0.10*(1-chaosIndex/100)
}

// RecoverRiskScore rewards open, chaotic matches
func RecoverRiskScore(best, conf, chaosIndex float64) float64 {
	return 0.55*(1-best) + 0.35*(chaosIndex/100) + 0.10*(1-conf)
}

func passesPlayGate(best, conf, chaosIndex float64) bool {
	return chaosIndex < 70 && best >= 0.55 && conf >= 0.60
}

func passesRecoverGate(best, conf, chaosIndex float64, upset bool) bool {
	return conf >= 0.40 && (upset || (best >= 0.45 && best <= 0.60)) && chaosIndex >= 55
}

// newRow builds a ranked row from a match without scoring it
func newRow(m models.Match, kind models.PickKind) models.PickRow {
	chaosIndex, upset := chaosIndexOrDefault(&m)
	return models.PickRow{
		Match:           m,
		Kind:            kind,
		BestProbability: BestProbability(&m),
		Confidence:      Confidence(&m),
		ChaosIndex:      chaosIndex,
		Upset:           upset,
	}
}

// playCandidate is a scored PLAY row and its position in the playable base
type playCandidate struct {
	row models.PickRow
	idx int
}

// rankPlay scores the gated PLAY candidates of base, best first, capped at two
func rankPlay(base []models.Match) []playCandidate {
	cands := make([]playCandidate, 0, len(base))
	for i, m := range base {
		row := newRow(m, models.PickPlay)
		if !passesPlayGate(row.BestProbability, row.Confidence, row.ChaosIndex) {
			continue
		}
		row.Score = PlayScore(row.BestProbability, row.Confidence, row.ChaosIndex)
		row.Reasons = []string{
			fmt.Sprintf("probability %.0f%%", row.BestProbability*100),
			fmt.Sprintf("confidence %.0f%%", row.Confidence*100),
			fmt.Sprintf("chaos %.0f", row.ChaosIndex),
		}
		cands = append(cands, playCandidate{row: row, idx: i})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].row.Score > cands[j].row.Score
	})

	if len(cands) > maxPlayPicks {
		cands = cands[:maxPlayPicks]
	}
	return cands
}

// PickPlayForLeague returns up to two low-variance favourites, best first
func PickPlayForLeague(matches []models.Match) []models.PickRow {
	cands := rankPlay(PlayableBase(matches))

	rows := make([]models.PickRow, 0, len(cands))
	for _, c := range cands {
		rows = append(rows, c.row)
	}
	return rows
}

// PickRecoverForLeague returns [LOW?, HIGH?]: the best PLAY pick and one high-variance pick.
// When no volatile candidate qualifies, the second PLAY pick is relabeled HIGH.
// Matches are identified by position, so missing or repeated IDs do not collide.
func PickRecoverForLeague(matches []models.Match) []models.PickRow {
	base := PlayableBase(matches)
	play := rankPlay(base)

	var out []models.PickRow
	lowIdx := -1
	if len(play) > 0 {
		low := play[0].row
		low.Kind = models.PickLow
		lowIdx = play[0].idx
		out = append(out, low)
	}

	var high *models.PickRow
	for i, m := range base {
		if i == lowIdx {
			continue
		}
		row := newRow(m, models.PickHigh)
		if !passesRecoverGate(row.BestProbability, row.Confidence, row.ChaosIndex, row.Upset) {
			continue
		}
		row.Score = RecoverRiskScore(row.BestProbability, row.Confidence, row.ChaosIndex)
		if high == nil || row.Score > high.Score {
			row.Reasons = recoverReasons(row)
			r := row
			high = &r
		}
	}

	if high == nil && len(play) > 1 {
		fallback := play[1].row
		fallback.Kind = models.PickHigh
		fallback.Reasons = append([]string{"second play pick"}, fallback.Reasons...)
		high = &fallback
	}

	if high != nil {
		out = append(out, *high)
	}
	return out
}

func recoverReasons(row models.PickRow) []string {
	var reasons []string
	if row.Upset {
		reasons = append(reasons, "upset watch")
	}
	if row.BestProbability >= 0.45 && row.BestProbability <= 0.60 {
		reasons = append(reasons, "open match")
	}
	reasons = append(reasons, fmt.Sprintf("chaos %.0f", row.ChaosIndex))
	return reasons
}

// RankLeague builds the shortlist of one league for a strategy
func RankLeague(league string, matches []models.Match, strategy models.Strategy) models.LeagueRanking {
	var rows []models.PickRow
	if strategy == models.StrategyRecover {
		rows = PickRecoverForLeague(matches)
	} else {
		strategy = models.StrategyPlay
		rows = PickPlayForLeague(matches)
	}

	total := 0.0
	for _, r := range rows {
		total += r.Score
	}

	return models.LeagueRanking{
		League:     league,
		Strategy:   strategy,
		Rows:       rows,
		TotalScore: total,
	}
}

// OrderLeagueKeys orders leagues by their position in known; unknown leagues go last, alphabetically
func OrderLeagueKeys(leagues []string, known []string) []string {
	pos := make(map[string]int, len(known))
	for i, k := range known {
		if _, ok := pos[k]; !ok {
			pos[k] = i
		}
	}

	out := make([]string, len(leagues))
	copy(out, leagues)
	sort.SliceStable(out, func(i, j int) bool {
		pi, iKnown := pos[out[i]]
		pj, jKnown := pos[out[j]]
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown != jKnown:
			return iKnown
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// SortLeagueRankings orders rankings by total pick score, descending. Ties keep input order.
func SortLeagueRankings(rankings []models.LeagueRanking) {
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TotalScore > rankings[j].TotalScore
	})
}
