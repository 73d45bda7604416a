package signals

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

var (
	hundred = decimal.NewFromInt(100)

	prudentScale    = decimal.NewFromFloat(0.7)
	prudentMinPct   = decimal.NewFromFloat(0.5)
	prudentMaxPct   = decimal.NewFromFloat(2.0)
	aggressiveScale = decimal.NewFromFloat(1.2)
	aggressiveMin   = decimal.NewFromFloat(0.5)
	aggressiveMax   = decimal.NewFromFloat(6.0)
)

// MatchAllowedByProfile reports whether a profile may show or play the match
func MatchAllowedByProfile(m *models.Match, profile models.Profile) bool {
	label := ConfidenceLabelFor(m)
	risk := MatchRisk(m)

	switch profile {
	case models.ProfilePrudent:
		return label == models.ConfidenceHigh && risk == models.RiskLow
	case models.ProfileAggressive:
		return true
	default:
		return label != models.ConfidenceLow && risk != models.RiskHigh
	}
}

// ResolveProfile returns the requested profile unless the tenant disabled it.
// Disabled profiles fall back to BALANCED, then to the first enabled profile.
func ResolveProfile(requested models.Profile, tenant models.TenantConfig) models.Profile {
	if p, ok := models.ParseProfile(string(requested)); ok && !tenant.ProfileDisabled(p) {
		return p
	}
	if !tenant.ProfileDisabled(models.ProfileBalanced) {
		return models.ProfileBalanced
	}
	for _, p := range models.Profiles {
		if !tenant.ProfileDisabled(p) {
			return p
		}
	}
	return models.ProfileBalanced
}

// meetsTenantFloor applies filters.min_confidence
func meetsTenantFloor(m *models.Match, tenant models.TenantConfig) bool {
	return Confidence(m) >= tenant.Filters.MinConfidence
}

// AllowedMask reports, per match, whether the profile filter keeps it.
// BALANCED fails open: when it would drop every match of a non-empty base set, the base set is kept.
func AllowedMask(matches []models.Match, profile models.Profile, tenant models.TenantConfig) []bool {
	mask := make([]bool, len(matches))
	inBase := make([]bool, len(matches))
	baseCount, keptCount := 0, 0
	for i := range matches {
		if !meetsTenantFloor(&matches[i], tenant) {
			continue
		}
		inBase[i] = true
		baseCount++
		if MatchAllowedByProfile(&matches[i], profile) {
			mask[i] = true
			keptCount++
		}
	}

	if profile == models.ProfileBalanced && keptCount == 0 && baseCount > 0 {
		copy(mask, inBase)
	}
	return mask
}

// FilterByProfile keeps the matches a profile allows, in input order
func FilterByProfile(matches []models.Match, profile models.Profile, tenant models.TenantConfig) []models.Match {
	mask := AllowedMask(matches, profile, tenant)
	kept := make([]models.Match, 0, len(matches))
	for i := range matches {
		if mask[i] {
			kept = append(kept, matches[i])
		}
	}
	return kept
}

// BasePct is the unscaled stake percentage for a confidence label and risk label
func BasePct(label models.ConfidenceLabel, risk models.RiskLevel) float64 {
	switch {
	case label == models.ConfidenceLow:
		return 1.0
	case label == models.ConfidenceHigh && risk == models.RiskLow:
		return 4.5
	case label == models.ConfidenceHigh && risk == models.RiskMedium:
		return 3.0
	case label == models.ConfidenceMedium && risk == models.RiskLow:
		return 2.0
	default:
		return 1.25
	}
}

// StakePct applies the profile scaling to BasePct
func StakePct(label models.ConfidenceLabel, risk models.RiskLevel, profile models.Profile) decimal.Decimal {
	base := decimal.NewFromFloat(BasePct(label, risk))

	switch profile {
	case models.ProfilePrudent:
		return clampDecimal(base.Mul(prudentScale), prudentMinPct, prudentMaxPct)
	case models.ProfileAggressive:
		return clampDecimal(base.Mul(aggressiveScale), aggressiveMin, aggressiveMax)
	default:
		return base
	}
}

// RecommendStake sizes an advisory stake for the match.
// Educational-only tenants always get a zero stake.
func RecommendStake(m *models.Match, profile models.Profile, bankroll float64, tenant models.TenantConfig) models.Stake {
	if tenant.Compliance.EducationalOnly {
		return models.Stake{EducationalOnly: true}
	}

	pct := StakePct(ConfidenceLabelFor(m), RiskLabel(m), profile)

	return models.Stake{
		Percent: pct.InexactFloat64(),
		Units:   StakeUnits(bankroll, pct),
	}
}

// StakeUnits is round(bankroll * pct / 100), floored at 0 for non-finite or non-positive inputs
func StakeUnits(bankroll float64, pct decimal.Decimal) int64 {
	if math.IsNaN(bankroll) || math.IsInf(bankroll, 0) || bankroll <= 0 || !pct.IsPositive() {
		return 0
	}
	units := decimal.NewFromFloat(bankroll).Mul(pct).Div(hundred).Round(0)
	if units.IsNegative() {
		return 0
	}
	return units.IntPart()
}

func clampDecimal(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
