package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

func TestAggregateMergesBranches(t *testing.T) {
	dir := t.TempDir()
	pathDFPL := filepath.Join(dir, "dfpl.csv")
	pathJP := filepath.Join(dir, "jp.csv")
	writeCSV(t, pathDFPL, csvOneOrder)
	writeCSV(t, pathJP, csvTwoOrders)

	dfplRules := models.ProfileConfig{AdjustmentColumn: models.ColParkingFee}
	specs := []BranchSpec{
		{Ref: csvRef(pathDFPL, "dfpl"), Rules: dfplRules},
		{Ref: csvRef(pathJP, "jp"), Rules: models.ProfileConfig{}},
	}

	cache := NewCache(NewLoader(nil), DefaultTTL)
	merged, err := Aggregate(context.Background(), cache, specs)
	require.NoError(t, err)

	require.Len(t, merged.Records, 3)
	byBranch := make(map[string]int)
	for _, rec := range merged.Records {
		byBranch[rec.Branch]++
	}
	assert.Equal(t, map[string]int{"dfpl": 1, "jp": 2}, byBranch)

	// Each branch keeps its own rule bundle after the merge.
	require.Contains(t, merged.Rules, "dfpl")
	require.Contains(t, merged.Rules, "jp")
	assert.Equal(t, dfplRules, merged.Rules["dfpl"])
	assert.Empty(t, merged.Rules["jp"].AdjustmentColumn)

	assert.False(t, merged.LoadedAt.IsZero())
}

func TestAggregateSingleBranchMatchesDirectLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	writeCSV(t, path, csvTwoOrders)

	cache := NewCache(NewLoader(nil), DefaultTTL)
	ref := csvRef(path, "main")

	direct, err := cache.Load(context.Background(), ref, models.ProfileConfig{})
	require.NoError(t, err)

	merged, err := Aggregate(context.Background(), cache, []BranchSpec{{Ref: ref}})
	require.NoError(t, err)

	assert.Equal(t, direct.Records, merged.Records)
	assert.Equal(t, direct.LoadedAt, merged.LoadedAt)
}

func TestAggregateFailsWhenAnyBranchUnavailable(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	writeCSV(t, good, csvOneOrder)

	specs := []BranchSpec{
		{Ref: csvRef(good, "dfpl")},
		{Ref: csvRef(filepath.Join(dir, "missing.csv"), "jp")},
	}

	cache := NewCache(NewLoader(nil), DefaultTTL)
	_, err := Aggregate(context.Background(), cache, specs)
	assert.Error(t, err)
}
