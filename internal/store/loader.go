package store

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
	"github.com/arbazmubasher1/RidersDashboard/internal/normalize"
	"github.com/arbazmubasher1/RidersDashboard/internal/source"
)

// Loader runs one source fetch through the normalizer, producing a fresh
// snapshot. Loading is the only operation here that can fail; a bad cell is
// the normalizer's business and never surfaces.
type Loader struct {
	log *logrus.Logger
}

func NewLoader(log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{log: log}
}

func (l *Loader) Load(ctx context.Context, ref models.SourceRef, rules models.ProfileConfig) (*models.Snapshot, error) {
	src, err := source.ForRef(ref)
	if err != nil {
		return nil, err
	}

	table, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	snap := normalize.Normalize(table, ref.Branch, rules)
	l.log.WithFields(logrus.Fields{
		"source":  ref.Key(),
		"branch":  ref.Branch,
		"records": len(snap.Records),
	}).Info("snapshot loaded")

	return snap, nil
}
