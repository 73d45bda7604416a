package signals

import (
	"math"
	"sort"
	"strings"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// Confidence label thresholds (inclusive lower bounds)
const (
	highConfidence   = 0.70
	mediumConfidence = 0.40
)

// defaultChaosIndex is used by the rankers when a match carries no chaos object
const defaultChaosIndex = 50.0

var outcomeLabels = map[string]string{
	"home_win":  "1",
	"draw":      "X",
	"away_win":  "2",
	"home_draw": "1X",
	"home_away": "12",
	"draw_away": "X2",
	"over_1_5":  "Over 1.5",
	"under_1_5": "Under 1.5",
	"over_2_5":  "Over 2.5",
	"under_2_5": "Under 2.5",
	"over_3_5":  "Over 3.5",
	"under_3_5": "Under 3.5",
	"btts_yes":  "Goal",
	"btts_no":   "No Goal",
	"gg":        "Goal",
	"ng":        "No Goal",
}

// clamp01 coerces a value to [0,1]; NaN and infinities become 0
func clamp01(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BestProbability returns the highest clamped outcome probability, 0 when there is none
func BestProbability(m *models.Match) float64 {
	if m == nil {
		return 0
	}
	best := 0.0
	for _, p := range m.Probabilities {
		if !finite(p) {
			continue
		}
		if c := clamp01(p); c > best {
			best = c
		}
	}
	return best
}

// Confidence returns the clamped model confidence
func Confidence(m *models.Match) float64 {
	if m == nil {
		return 0
	}
	return clamp01(m.Confidence)
}

// ConfidenceLabelOf buckets a raw confidence value
func ConfidenceLabelOf(c float64) models.ConfidenceLabel {
	c = clamp01(c)
	switch {
	case c >= highConfidence:
		return models.ConfidenceHigh
	case c >= mediumConfidence:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// ConfidenceLabelFor buckets the match confidence
func ConfidenceLabelFor(m *models.Match) models.ConfidenceLabel {
	return ConfidenceLabelOf(Confidence(m))
}

// ChaosOf normalizes explain.chaos. It returns nil when chaos is absent or its index is not finite.
func ChaosOf(m *models.Match) *models.ChaosSignal {
	if m == nil || m.Explain == nil || m.Explain.Chaos == nil {
		return nil
	}
	raw := m.Explain.Chaos
	if raw.Index == nil || !finite(*raw.Index) {
		return nil
	}

	var flags []string
	if len(raw.Flags) > 0 {
		flags = make([]string, len(raw.Flags))
		copy(flags, raw.Flags)
	}

	return &models.ChaosSignal{
		Index: clamp(*raw.Index, 0, 100),
		Upset: raw.UpsetWatch,
		Flags: flags,
	}
}

// chaosIndexOrDefault is the index used by the rankers
func chaosIndexOrDefault(m *models.Match) (float64, bool) {
	if ch := ChaosOf(m); ch != nil {
		return ch.Index, ch.Upset
	}
	return defaultChaosIndex, false
}

// BaseRisk is MEDIUM when the model ran in safe mode or reported missing inputs
func BaseRisk(m *models.Match) models.RiskLevel {
	if m == nil || m.Explain == nil {
		return models.RiskLow
	}
	if m.Explain.SafeMode || len(m.Explain.MissingFlags) > 0 {
		return models.RiskMedium
	}
	return models.RiskLow
}

// FragilityLevel returns low, medium or high, or "" when unknown
func FragilityLevel(m *models.Match) string {
	if m == nil || m.Explain == nil || m.Explain.Fragility == nil {
		return ""
	}
	switch lvl := strings.ToLower(strings.TrimSpace(m.Explain.Fragility.Level)); lvl {
	case "low", "medium", "high":
		return lvl
	default:
		return ""
	}
}

// OutcomeLabel maps an outcome key to its display label, falling back to the key itself
func OutcomeLabel(key string) string {
	if l, ok := outcomeLabels[strings.ToLower(key)]; ok {
		return l
	}
	return key
}

// Picks returns one pick per outcome with positive probability, most likely first
func Picks(m *models.Match) []models.Pick {
	if m == nil {
		return nil
	}
	picks := make([]models.Pick, 0, len(m.Probabilities))
	for k, p := range m.Probabilities {
		c := clamp01(p)
		if c <= 0 {
			continue
		}
		picks = append(picks, models.Pick{Key: k, Label: OutcomeLabel(k), Probability: c})
	}
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Probability != picks[j].Probability {
			return picks[i].Probability > picks[j].Probability
		}
		return picks[i].Key < picks[j].Key
	})
	return picks
}

// Distribution renormalizes the clamped probabilities by their sum.
// It returns nil when the sum is not positive.
func Distribution(m *models.Match) map[string]float64 {
	if m == nil {
		return nil
	}
	sum := 0.0
	for _, p := range m.Probabilities {
		sum += clamp01(p)
	}
	if sum <= 0 {
		return nil
	}
	out := make(map[string]float64, len(m.Probabilities))
	for k, p := range m.Probabilities {
		out[k] = clamp01(p) / sum
	}
	return out
}
