package models

import (
	"sort"
	"time"
)

// Match is a single prediction record as delivered by the upstream API
type Match struct {
	MatchID       string             `json:"match_id"`
	Championship  string             `json:"championship"`
	HomeTeam      string             `json:"home_team,omitempty"`
	AwayTeam      string             `json:"away_team,omitempty"`
	Status        string             `json:"status"`
	KickoffUnix   *int64             `json:"kickoff_unix,omitempty"` // nil when kickoff is unknown
	Probabilities map[string]float64 `json:"probabilities"`          // outcome key -> probability (0-1)
	Confidence    float64            `json:"confidence"`             // Model confidence (0-1)
	Explain       *Explain           `json:"explain,omitempty"`
	IsLive        *bool              `json:"is_live,omitempty"`
	Minute        *int               `json:"minute,omitempty"`
}

// Explain carries the model's explanation payload
type Explain struct {
	Chaos        *Chaos        `json:"chaos,omitempty"`
	Fragility    *Fragility    `json:"fragility,omitempty"`
	DecisionGate *DecisionGate `json:"decision_gate,omitempty"`
	SafeMode     bool          `json:"safe_mode,omitempty"`
	MissingFlags []string      `json:"missing_flags,omitempty"`
}

// Chaos is the raw chaos sub-object. Index is on a 0-100 scale.
type Chaos struct {
	Index      *float64 `json:"index,omitempty"`
	UpsetWatch bool     `json:"upset_watch"`
	Flags      []string `json:"flags,omitempty"`
}

// Fragility describes how fragile the favourite is
type Fragility struct {
	Level   string   `json:"level"` // low, medium, high
	Score   *float64 `json:"score,omitempty"`
	Margin  *float64 `json:"margin,omitempty"`
	Entropy *float64 `json:"entropy,omitempty"`
}

// DecisionGate is an explicit upstream verdict that overrides the derived NO BET heuristic
type DecisionGate struct {
	Recommendation string `json:"recommendation,omitempty"`
	Decision       string `json:"decision,omitempty"`
	Allow          *bool  `json:"allow,omitempty"`
}

// CalibrationStats is the per-league calibration feed
type CalibrationStats struct {
	ECE      float64 `json:"ece"`
	Accuracy float64 `json:"accuracy"`
	N        int     `json:"n"`
}

// TrendStats compares a 7-day window against a 30-day window
type TrendStats struct {
	DeltaAccuracy float64 `json:"delta_accuracy"`
	DeltaECE      float64 `json:"delta_ece"`
	OK            bool    `json:"ok"`
}

// MarketConfidence is one entry of the multi-market confidence feed.
// Confidence is on a 0-100 scale, unlike Match.Confidence.
type MarketConfidence struct {
	Probability float64 `json:"probability"`
	Confidence  float64 `json:"confidence"`
	Risk        string  `json:"risk"`
}

// Snapshot is one batch of matches plus the side feeds needed to classify them
type Snapshot struct {
	Leagues           map[string]map[string][]Match          `json:"leagues"` // league -> matchday -> matches
	Calibration       map[string]CalibrationStats            `json:"calibration,omitempty"`
	GlobalCalibration *CalibrationStats                      `json:"global_calibration,omitempty"`
	Trend             map[string]TrendStats                  `json:"trend,omitempty"`
	Markets           map[string]map[string]MarketConfidence `json:"markets,omitempty"` // match_id -> market -> confidence
}

// LeagueMatches flattens every matchday of a league, ordered by kickoff then matchday key
func (s *Snapshot) LeagueMatches(league string) []Match {
	if s == nil {
		return nil
	}
	days := s.Leagues[league]
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Match
	for _, k := range keys {
		out = append(out, days[k]...)
	}
	SortByKickoff(out)
	return out
}

// SortByKickoff orders matches by kickoff ascending. Unknown kickoffs sort last; ties keep input order.
func SortByKickoff(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].KickoffUnix, matches[j].KickoffUnix
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

// KafkaSnapshotMessage represents the Kafka message pushed by the prediction API
type KafkaSnapshotMessage struct {
	SnapshotID string    `json:"snapshot_id"`
	Snapshot   Snapshot  `json:"snapshot"`
	Timestamp  time.Time `json:"timestamp"`
}
