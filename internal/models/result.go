package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a cached classification or ranking does not exist
var ErrNotFound = errors.New("not found in cache")

// SnapshotResult summarizes one processed snapshot
type SnapshotResult struct {
	SnapshotID  string                       `json:"snapshot_id"`
	Classified  int                          `json:"classified"`
	NoBet       int                          `json:"no_bet"`
	Rankings    map[Strategy][]LeagueRanking `json:"rankings"`
	ProcessedAt time.Time                    `json:"processed_at"`
}

// ClassifyRequest is the body of a single-match classification request
type ClassifyRequest struct {
	Match    *Match    `json:"match"`
	Snapshot *Snapshot `json:"snapshot,omitempty"` // side feeds only
	Profile  Profile   `json:"profile,omitempty"`
	Bankroll *float64  `json:"bankroll,omitempty"`
}
