package signals

import (
	"sort"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// unstableMarketConfidence is on the 0-100 market scale
const unstableMarketConfidence = 45.0

func riskRank(r string) int {
	switch models.ParseRiskLevel(r) {
	case models.RiskLow:
		return 3
	case models.RiskMedium:
		return 2
	case models.RiskHigh:
		return 1
	default:
		return 0
	}
}

// IsMarketUnstable reports whether a market is too risky or too uncertain to show as stable
func IsMarketUnstable(mc models.MarketConfidence) bool {
	return models.ParseRiskLevel(mc.Risk) == models.RiskHigh || mc.Confidence < unstableMarketConfidence
}

// OrderMarkets returns the market keys to display. A non-empty active list is both
// an allow-list and the display order; otherwise keys are sorted alphabetically.
func OrderMarkets(markets map[string]models.MarketConfidence, active []string) []string {
	if len(active) == 0 {
		keys := make([]string, 0, len(markets))
		for k := range markets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}

	keys := make([]string, 0, len(active))
	seen := make(map[string]bool, len(active))
	for _, k := range active {
		if _, ok := markets[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	return keys
}

// BestMarketKey picks the market with the highest confidence, ties broken by
// lower risk and then by display order. It returns false when no market qualifies.
func BestMarketKey(markets map[string]models.MarketConfidence, active []string) (string, bool) {
	keys := OrderMarkets(markets, active)
	if len(keys) == 0 {
		return "", false
	}

	best := keys[0]
	for _, k := range keys[1:] {
		cur, top := markets[k], markets[best]
		if cur.Confidence > top.Confidence ||
			(cur.Confidence == top.Confidence && riskRank(cur.Risk) > riskRank(top.Risk)) {
			best = k
		}
	}
	return best, true
}

// UnstableMarkets lists the displayed markets that are unstable, in display order
func UnstableMarkets(markets map[string]models.MarketConfidence, active []string) []string {
	var out []string
	for _, k := range OrderMarkets(markets, active) {
		if IsMarketUnstable(markets[k]) {
			out = append(out, k)
		}
	}
	return out
}
