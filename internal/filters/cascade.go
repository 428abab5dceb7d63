package filters

import (
	"sort"
	"strings"
	"time"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// DateRange bounds records by calendar date, inclusive on both ends.
// Records with a null date never match.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) contains(t *time.Time) bool {
	if t == nil {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// FilterState is the resolved state of the four cascading dimensions.
// Option sets are recomputed in dependency order date -> invoice type ->
// shift -> rider: each level sees only records that already satisfy every
// higher-precedence filter.
type FilterState struct {
	Range DateRange

	InvoiceOptions  []string
	SelectedInvoice []string

	ShiftOptions   []string
	SelectedShifts []string

	RiderOptions   []string
	SelectedRiders []string

	// RiderCleared records an explicit "clear all" at the rider level.
	// Unlike the other levels, an explicitly emptied rider selection is a
	// legitimate terminal state, interpreted as unconstrained.
	RiderCleared bool
}

// Resolve recomputes option sets from the snapshot and reconciles the prior
// session selections against them. A remembered selection with no overlap in
// the fresh option set falls back to all options, so a filter never collapses
// to zero because of stale state. The rider level is the exception: an
// explicit clear survives.
func Resolve(snap *models.Snapshot, r DateRange, prior SessionFilterState) FilterState {
	state := FilterState{Range: r, RiderCleared: prior.RiderCleared}

	base := dateBounded(snap.Records, r)

	state.InvoiceOptions = distinct(base, func(rec models.OrderRecord) string { return rec.InvoiceType })
	state.SelectedInvoice = resolveSelection(prior.Invoice, state.InvoiceOptions)

	lvl1 := restrict(base, state.SelectedInvoice, func(rec models.OrderRecord) string { return rec.InvoiceType })

	state.ShiftOptions = distinct(lvl1, func(rec models.OrderRecord) string { return rec.Shift })
	state.SelectedShifts = resolveSelection(prior.Shifts, state.ShiftOptions)

	lvl2 := restrict(lvl1, state.SelectedShifts, func(rec models.OrderRecord) string { return rec.Shift })

	state.RiderOptions = distinct(lvl2, func(rec models.OrderRecord) string { return rec.Rider })
	if prior.RiderCleared {
		state.SelectedRiders = []string{}
	} else {
		state.SelectedRiders = resolveSelection(prior.Riders, state.RiderOptions)
	}

	return state
}

// SelectAllRiders applies the explicit bulk action at the rider level.
func (s *FilterState) SelectAllRiders() {
	s.SelectedRiders = append([]string(nil), s.RiderOptions...)
	s.RiderCleared = false
}

// ClearAllRiders empties the rider selection. The cleared set persists and
// behaves as "no rider filter" when applied.
func (s *FilterState) ClearAllRiders() {
	s.SelectedRiders = []string{}
	s.RiderCleared = true
}

// Apply returns the final filtered set: date-bounded records further
// restricted by the resolved invoice, shift and rider selections. An empty
// rider selection means all riders, not none.
func Apply(snap *models.Snapshot, state FilterState) []models.OrderRecord {
	base := dateBounded(snap.Records, state.Range)
	out := restrict(base, state.SelectedInvoice, func(rec models.OrderRecord) string { return rec.InvoiceType })
	out = restrict(out, state.SelectedShifts, func(rec models.OrderRecord) string { return rec.Shift })
	if len(state.SelectedRiders) > 0 {
		out = restrict(out, state.SelectedRiders, func(rec models.OrderRecord) string { return rec.Rider })
	}
	return out
}

// Consolidated returns the secondary date-and-shift view. An empty shift
// selection widens to all shifts here, so the consolidated and primary views
// can legitimately diverge.
func Consolidated(snap *models.Snapshot, state FilterState) []models.OrderRecord {
	base := dateBounded(snap.Records, state.Range)
	if len(state.SelectedShifts) == 0 {
		return base
	}
	return restrict(base, state.SelectedShifts, func(rec models.OrderRecord) string { return rec.Shift })
}

func dateBounded(records []models.OrderRecord, r DateRange) []models.OrderRecord {
	out := make([]models.OrderRecord, 0, len(records))
	for _, rec := range records {
		if r.contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// distinct returns the sorted distinct non-null values of a dimension.
func distinct(records []models.OrderRecord, dim func(models.OrderRecord) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, rec := range records {
		v := dim(rec)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// resolveSelection intersects a remembered selection with the fresh option
// set, falling back to all options when the intersection is empty.
func resolveSelection(prior, options []string) []string {
	if len(prior) == 0 {
		return append([]string(nil), options...)
	}
	allowed := toLowerSet(options)
	var resolved []string
	for _, v := range prior {
		if allowed[strings.ToLower(v)] {
			resolved = append(resolved, v)
		}
	}
	if len(resolved) == 0 {
		return append([]string(nil), options...)
	}
	sort.Strings(resolved)
	return resolved
}

// restrict keeps records whose dimension value is in the selection,
// case-insensitively. An empty selection keeps nothing at the invoice and
// shift levels; callers handle the rider asymmetry.
func restrict(records []models.OrderRecord, selection []string, dim func(models.OrderRecord) string) []models.OrderRecord {
	set := toLowerSet(selection)
	out := make([]models.OrderRecord, 0, len(records))
	for _, rec := range records {
		if set[strings.ToLower(dim(rec))] {
			out = append(out, rec)
		}
	}
	return out
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
