package signals

import (
	"strings"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// Quality score weights
const (
	qualityProbWeight = 0.65
	qualityConfWeight = 0.35
)

// NO BET heuristic floors
const (
	noBetMinProbability = 0.5
	noBetMinConfidence  = 0.5
	reasonThreshold     = 0.55
)

// Chaos severity thresholds (inclusive lower bounds)
const (
	chaosExtremeAt = 85.0
	chaosHighAt    = 70.0
	chaosMediumAt  = 55.0
)

// NO BET reasons
const (
	ReasonProbabilityTooLow = "probability too low"
	ReasonConfidenceTooLow  = "confidence too low"
	ReasonWeakSignals       = "signals not strong enough"
)

// QualityScore blends best-outcome probability and confidence
func QualityScore(m *models.Match) float64 {
	return qualityProbWeight*BestProbability(m) + qualityConfWeight*Confidence(m)
}

// GradeForScore buckets a quality score into A-D
func GradeForScore(score float64) models.QualityGrade {
	switch {
	case score >= 0.80:
		return models.GradeA
	case score >= 0.70:
		return models.GradeB
	case score >= 0.60:
		return models.GradeC
	default:
		return models.GradeD
	}
}

// QualityGrade returns the A-D grade of a match
func QualityGrade(m *models.Match) models.QualityGrade {
	return GradeForScore(QualityScore(m))
}

// RiskLabel thresholds best probability and confidence together.
// It is not the inverse of the grade and differs from MatchRisk.
func RiskLabel(m *models.Match) models.RiskLevel {
	best, conf := BestProbability(m), Confidence(m)
	switch {
	case best >= 0.70 && conf >= 0.70:
		return models.RiskLow
	case best >= 0.60 && conf >= 0.60:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// MatchRisk is the risk used by the profile filter
func MatchRisk(m *models.Match) models.RiskLevel {
	if ConfidenceLabelFor(m) == models.ConfidenceLow {
		return models.RiskHigh
	}
	if BaseRisk(m) == models.RiskMedium {
		return models.RiskMedium
	}
	return models.RiskLow
}

// gateVerdict returns the decision gate verdict and whether the gate decided at all
func gateVerdict(m *models.Match) (noBet bool, decided bool) {
	if m == nil || m.Explain == nil || m.Explain.DecisionGate == nil {
		return false, false
	}
	gate := m.Explain.DecisionGate

	for _, verdict := range []string{gate.Recommendation, gate.Decision} {
		if strings.Contains(strings.ToUpper(verdict), "NO") {
			return true, true
		}
	}

	if gate.Allow != nil {
		return !*gate.Allow, true
	}
	return false, false
}

// IsNoBet returns the NO BET verdict. An explicit decision gate always wins over the heuristic.
func IsNoBet(m *models.Match) bool {
	if noBet, decided := gateVerdict(m); decided {
		return noBet
	}
	return QualityGrade(m) == models.GradeD ||
		BestProbability(m) < noBetMinProbability ||
		Confidence(m) < noBetMinConfidence
}

// NoBetReason explains a NO BET verdict. It does not take part in the verdict itself.
func NoBetReason(m *models.Match) string {
	switch {
	case BestProbability(m) < reasonThreshold:
		return ReasonProbabilityTooLow
	case Confidence(m) < reasonThreshold:
		return ReasonConfidenceTooLow
	default:
		return ReasonWeakSignals
	}
}

// ChaosSeverityFor buckets a chaos index
func ChaosSeverityFor(index float64) models.ChaosSeverity {
	switch {
	case index >= chaosExtremeAt:
		return models.ChaosExtreme
	case index >= chaosHighAt:
		return models.ChaosHigh
	case index >= chaosMediumAt:
		return models.ChaosMedium
	default:
		return models.ChaosNone
	}
}

// chaosLabel is the badge text of a severity; none has no badge
func chaosLabel(sev models.ChaosSeverity) string {
	switch sev {
	case models.ChaosExtreme:
		return "CHAOS🔥"
	case models.ChaosHigh:
		return "CHAOS↑"
	case models.ChaosMedium:
		return "CHAOS"
	default:
		return ""
	}
}
