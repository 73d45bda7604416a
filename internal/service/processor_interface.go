package service

import (
	"context"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// SnapshotProcessor classifies, ranks and caches a whole snapshot
type SnapshotProcessor interface {
	ProcessSnapshot(ctx context.Context, snapshotID string, snap *models.Snapshot, user models.UserContext) (*models.SnapshotResult, error)
}
