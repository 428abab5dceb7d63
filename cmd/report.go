package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arbazmubasher1/RidersDashboard/internal/export"
	"github.com/arbazmubasher1/RidersDashboard/internal/filters"
	"github.com/arbazmubasher1/RidersDashboard/internal/metrics"
	"github.com/arbazmubasher1/RidersDashboard/internal/models"
	"github.com/arbazmubasher1/RidersDashboard/internal/store"
)

var (
	reportIdentity   string
	reportBranches   []string
	reportStart      string
	reportEnd        string
	reportInvoice    []string
	reportShifts     []string
	reportRiders     []string
	reportAllRiders  bool
	reportNoRiders   bool
	reportReload     bool
	reportDumpOrders bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Load a source snapshot, resolve filters and compute the metrics report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		return runReport(cmd.Context(), cfg)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportIdentity, "identity", "", "caller identity selecting the source profile")
	reportCmd.Flags().StringSliceVar(&reportBranches, "branches", nil, "identities of additional branches for a cross-branch view")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "start date (YYYY-MM-DD, default: earliest record)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "end date (YYYY-MM-DD, default: latest record)")
	reportCmd.Flags().StringSliceVar(&reportInvoice, "invoice-types", nil, "invoice type selection")
	reportCmd.Flags().StringSliceVar(&reportShifts, "shifts", nil, "shift selection")
	reportCmd.Flags().StringSliceVar(&reportRiders, "riders", nil, "rider selection")
	reportCmd.Flags().BoolVar(&reportAllRiders, "all-riders", false, "select every rider")
	reportCmd.Flags().BoolVar(&reportNoRiders, "clear-riders", false, "clear the rider filter (reports on all riders)")
	reportCmd.Flags().BoolVar(&reportReload, "reload", false, "invalidate cached snapshots before loading")
	reportCmd.Flags().BoolVar(&reportDumpOrders, "dump-orders", false, "also export the filtered order rows")

	rootCmd.AddCommand(reportCmd)
}

func runReport(ctx context.Context, cfg *models.Config) error {
	if reportIdentity == "" {
		return fmt.Errorf("--identity is required")
	}
	profile, ok := cfg.ResolveProfile(reportIdentity)
	if !ok {
		return fmt.Errorf("unknown identity: %s", reportIdentity)
	}

	specs := []store.BranchSpec{{Ref: profile.Source, Rules: profile.Rules}}
	for _, identity := range reportBranches {
		p, ok := cfg.ResolveProfile(identity)
		if !ok {
			return fmt.Errorf("unknown branch identity: %s", identity)
		}
		if p.Source.Key() == profile.Source.Key() {
			continue
		}
		specs = append(specs, store.BranchSpec{Ref: p.Source, Rules: p.Rules})
	}

	loader := store.NewLoader(logrus.StandardLogger())
	cache := store.NewCache(loader, cfg.CacheTTL)
	if reportReload {
		cache.InvalidateAll()
	}

	// Warm each branch behind a progress bar; Aggregate then unions the
	// cached snapshots.
	bar := progressbar.Default(int64(len(specs)), "loading branches")
	for _, spec := range specs {
		if _, err := cache.Load(ctx, spec.Ref, spec.Rules); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	snap, err := store.Aggregate(ctx, cache, specs)
	if err != nil {
		return err
	}

	dateRange, err := resolveRange(snap)
	if err != nil {
		return err
	}

	sessions := filters.NewSessionStore()
	sessionID := sessions.NewSession(profile.Source.Key())
	prior := sessions.Get(sessionID, profile.Source.Key())
	prior.Invoice = reportInvoice
	prior.Shifts = reportShifts
	prior.Riders = reportRiders

	state := filters.Resolve(snap, dateRange, prior)
	if reportAllRiders {
		state.SelectAllRiders()
	}
	if reportNoRiders {
		state.ClearAllRiders()
	}
	prior.Remember(state)
	sessions.Put(sessionID, prior)

	filtered := filters.Apply(snap, state)
	consolidated := filters.Consolidated(snap, state)

	logrus.WithFields(logrus.Fields{
		"profile":      profile.Display,
		"branches":     len(specs),
		"from":         dateRange.Start.Format("2006-01-02"),
		"to":           dateRange.End.Format("2006-01-02"),
		"filtered":     len(filtered),
		"consolidated": len(consolidated),
	}).Info("filters resolved")

	report := metrics.Compute(filtered, profile.Rules, snap.Rules)

	dest, err := export.ForConfig(cfg)
	if err != nil {
		return err
	}
	defer dest.Close()

	if err := export.Report(dest, report); err != nil {
		return err
	}
	if reportDumpOrders {
		if err := export.Records(dest, filtered); err != nil {
			return err
		}
	}

	return nil
}

// resolveRange parses the --start/--end flags, defaulting each end to the
// snapshot's own date extent.
func resolveRange(snap *models.Snapshot) (filters.DateRange, error) {
	var earliest, latest time.Time
	for _, rec := range snap.Records {
		if rec.Date == nil {
			continue
		}
		if earliest.IsZero() || rec.Date.Before(earliest) {
			earliest = *rec.Date
		}
		if latest.IsZero() || rec.Date.After(latest) {
			latest = *rec.Date
		}
	}

	r := filters.DateRange{Start: earliest, End: latest}
	if reportStart != "" {
		t, err := time.Parse("2006-01-02", reportStart)
		if err != nil {
			return r, fmt.Errorf("invalid --start: %w", err)
		}
		r.Start = t
	}
	if reportEnd != "" {
		t, err := time.Parse("2006-01-02", reportEnd)
		if err != nil {
			return r, fmt.Errorf("invalid --end: %w", err)
		}
		r.End = t
	}
	return r, nil
}
