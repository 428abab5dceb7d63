package store

import (
	"context"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// BranchSpec names one branch to include in a cross-branch view.
type BranchSpec struct {
	Ref   models.SourceRef
	Rules models.ProfileConfig
}

// Aggregate loads each branch independently through the cache and unions the
// typed records into one snapshot. Every record keeps its originating branch
// tag, and the merged rule map keys off those tags, so per-branch deductions
// survive the merge permanently.
func Aggregate(ctx context.Context, cache *Cache, specs []BranchSpec) (*models.Snapshot, error) {
	merged := &models.Snapshot{
		Rules: make(map[string]models.ProfileConfig, len(specs)),
	}

	for _, spec := range specs {
		snap, err := cache.Load(ctx, spec.Ref, spec.Rules)
		if err != nil {
			return nil, err
		}

		for _, rec := range snap.Records {
			if rec.Branch == "" {
				rec.Branch = spec.Ref.Branch
			}
			merged.Records = append(merged.Records, rec)
		}
		for branch, rules := range snap.Rules {
			merged.Rules[branch] = rules
		}
		if snap.LoadedAt.After(merged.LoadedAt) {
			merged.LoadedAt = snap.LoadedAt
		}
	}

	return merged, nil
}
