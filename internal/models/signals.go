package models

import (
	"strings"
	"time"
)

// ConfidenceLabel buckets Match.Confidence
type ConfidenceLabel string

const (
	ConfidenceLow    ConfidenceLabel = "LOW"
	ConfidenceMedium ConfidenceLabel = "MEDIUM"
	ConfidenceHigh   ConfidenceLabel = "HIGH"
)

// QualityGrade is the A-D grade derived from the quality score
type QualityGrade string

const (
	GradeA QualityGrade = "A"
	GradeB QualityGrade = "B"
	GradeC QualityGrade = "C"
	GradeD QualityGrade = "D"
)

// RiskLevel is shared by the classifier risk label, the profile-filter match risk and market risk
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ParseRiskLevel maps a free-form risk string onto a RiskLevel. Unknown values return "".
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return RiskLow
	case "MEDIUM", "MED":
		return RiskMedium
	case "HIGH":
		return RiskHigh
	default:
		return ""
	}
}

// ChaosSeverity buckets a chaos index
type ChaosSeverity string

const (
	ChaosNone    ChaosSeverity = "none"
	ChaosMedium  ChaosSeverity = "medium"
	ChaosHigh    ChaosSeverity = "high"
	ChaosExtreme ChaosSeverity = "extreme"
)

// Profile is the user's risk profile
type Profile string

const (
	ProfilePrudent    Profile = "PRUDENT"
	ProfileBalanced   Profile = "BALANCED"
	ProfileAggressive Profile = "AGGRESSIVE"
)

// Profiles lists every profile in fallback order
var Profiles = []Profile{ProfilePrudent, ProfileBalanced, ProfileAggressive}

// ParseProfile parses a profile name, returning false for unknown names
func ParseProfile(s string) (Profile, bool) {
	switch Profile(strings.ToUpper(strings.TrimSpace(s))) {
	case ProfilePrudent:
		return ProfilePrudent, true
	case ProfileBalanced:
		return ProfileBalanced, true
	case ProfileAggressive:
		return ProfileAggressive, true
	default:
		return "", false
	}
}

// Strategy selects how picks are ranked within a league
type Strategy string

const (
	StrategyPlay    Strategy = "play"
	StrategyRecover Strategy = "recover"
)

// ParseStrategy parses a strategy name, returning false for unknown names
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyPlay:
		return StrategyPlay, true
	case StrategyRecover:
		return StrategyRecover, true
	default:
		return "", false
	}
}

// PickKind tags a ranked row
type PickKind string

const (
	PickPlay PickKind = "PLAY"
	PickLow  PickKind = "LOW"
	PickHigh PickKind = "HIGH"
)

// BadgeKind is the semantic kind of a badge
type BadgeKind string

const (
	BadgeReliability BadgeKind = "reliability"
	BadgeTrend       BadgeKind = "trend"
	BadgeChaos       BadgeKind = "chaos"
	BadgeUpset       BadgeKind = "upset"
	BadgeDay         BadgeKind = "day"
	BadgeLive        BadgeKind = "live"
	BadgeTop         BadgeKind = "top"
	BadgeConf        BadgeKind = "conf"
	BadgeNoBet       BadgeKind = "no_bet"
	BadgeKickoff     BadgeKind = "kickoff"
)

// Badge is one entry of a match badge list
type Badge struct {
	Kind  BadgeKind `json:"kind"`
	Label string    `json:"label"`
}

// Pick is one outcome with positive probability
type Pick struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// ChaosSignal is the normalized chaos sub-object
type ChaosSignal struct {
	Index float64  `json:"index"` // clamped to 0-100
	Upset bool     `json:"upset"`
	Flags []string `json:"flags,omitempty"`
}

// Stake is an advisory stake recommendation
type Stake struct {
	Percent         float64 `json:"percent"`
	Units           int64   `json:"units"`
	EducationalOnly bool    `json:"educational_only,omitempty"`
}

// PickRow is a ranked, league-scoped pick
type PickRow struct {
	Match           Match    `json:"match"`
	Kind            PickKind `json:"kind"`
	BestProbability float64  `json:"best_probability"`
	Confidence      float64  `json:"confidence"`
	ChaosIndex      float64  `json:"chaos_index"`
	Upset           bool     `json:"upset"`
	Score           float64  `json:"score"`
	Reasons         []string `json:"reasons,omitempty"`
}

// LeagueRanking is the shortlist of one league under one strategy
type LeagueRanking struct {
	League     string    `json:"league"`
	Strategy   Strategy  `json:"strategy"`
	Rows       []PickRow `json:"rows"`
	TotalScore float64   `json:"total_score"`
}

// Classification is every signal the engine derives for one match
type Classification struct {
	MatchID          string             `json:"match_id"`
	Championship     string             `json:"championship"`
	Status           string             `json:"status"`
	BestProbability  float64            `json:"best_probability"`
	Confidence       float64            `json:"confidence"`
	ConfidenceLabel  ConfidenceLabel    `json:"confidence_label"`
	QualityScore     float64            `json:"quality_score"`
	Grade            QualityGrade       `json:"grade"`
	Risk             RiskLevel          `json:"risk"`
	MatchRisk        RiskLevel          `json:"match_risk"`
	Chaos            *ChaosSignal       `json:"chaos,omitempty"`
	ChaosSeverity    ChaosSeverity      `json:"chaos_severity"`
	FragilityLevel   string             `json:"fragility_level,omitempty"`
	NoBet            bool               `json:"no_bet"`
	NoBetReason      string             `json:"no_bet_reason,omitempty"`
	Profile          Profile            `json:"profile"`
	AllowedByProfile bool               `json:"allowed_by_profile"`
	Stake            Stake              `json:"stake"`
	Badges           []Badge            `json:"badges"`
	Picks            []Pick             `json:"picks"`
	Distribution     map[string]float64 `json:"distribution,omitempty"`
	BestMarket       string             `json:"best_market,omitempty"`
	Markets          []string           `json:"markets,omitempty"`
	UnstableMarkets  []string           `json:"unstable_markets,omitempty"`
}

// UserContext carries the caller-side inputs of a classification
type UserContext struct {
	Profile  Profile
	Bankroll float64
	Now      time.Time
}
