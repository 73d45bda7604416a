package models

import (
	"time"
)

// TenantConfig holds per-tenant rules the engine must honor
type TenantConfig struct {
	Filters    TenantFilters    `json:"filters" yaml:"filters" mapstructure:"filters"`
	Features   TenantFeatures   `json:"features" yaml:"features" mapstructure:"features"`
	Compliance TenantCompliance `json:"compliance" yaml:"compliance" mapstructure:"compliance"`
}

// TenantFilters restricts which matches and markets are surfaced
type TenantFilters struct {
	MinConfidence float64  `json:"min_confidence" yaml:"min_confidence" mapstructure:"min_confidence"`
	ActiveMarkets []string `json:"active_markets" yaml:"active_markets" mapstructure:"active_markets"` // allow-list and display order
}

// TenantFeatures toggles product features
type TenantFeatures struct {
	DisabledProfiles []Profile `json:"disabled_profiles" yaml:"disabled_profiles" mapstructure:"disabled_profiles"`
}

// TenantCompliance holds regulatory overrides
type TenantCompliance struct {
	EducationalOnly bool `json:"educational_only" yaml:"educational_only" mapstructure:"educational_only"`
}

// ProfileDisabled reports whether the tenant disabled the profile
func (t TenantConfig) ProfileDisabled(p Profile) bool {
	for _, d := range t.Features.DisabledProfiles {
		if d == p {
			return true
		}
	}
	return false
}

// EngineParams holds read-only parameters for the signal engine
type EngineParams struct {
	Tenant                TenantConfig
	LeagueOrder           []string       // known leagues in display order; unknown leagues sort last
	ReliabilityMinSamples int            // league calibration is trusted from this many samples
	Location              *time.Location // used for day badges
}
