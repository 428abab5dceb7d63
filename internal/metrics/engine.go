package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// Compute derives the full metric set from one filtered record set. It is a
// pure function: no cross-section mutation, identical output for identical
// input. branchRules carries the per-branch business rules of the snapshot
// the records came from; cfg is the session profile's rules.
func Compute(records []models.OrderRecord, cfg models.ProfileConfig, branchRules map[string]models.ProfileConfig) models.MetricsReport {
	return models.MetricsReport{
		Basic:              basicCounts(records),
		TimeAverages:       timeAverages(records, cfg.SubsecondTimeAverages),
		DelayReasons:       countBy(records, func(r models.OrderRecord) string { return r.DelayReason }),
		CustomerComplaints: countBy(records, func(r models.OrderRecord) string { return r.CustomerComplaint }),
		ClosingStatuses:    countBy(records, func(r models.OrderRecord) string { return r.ClosingStatus }),
		HourlyOrders:       hourlyOrders(records),
		TradeAreas:         tradeAreas(records),
		Payouts:            payoutSummary(records),
		Reconciliation:     Reconcile(records, cfg, branchRules),
	}
}

func basicCounts(records []models.OrderRecord) models.BasicCounts {
	counts := models.BasicCounts{TotalOrders: len(records)}
	for _, rec := range records {
		switch strings.ToLower(rec.OrderStatus) {
		case models.StatusInProgress:
			counts.InProgress++
		case models.StatusCompleted:
			counts.Completed++
		case models.StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

func timeAverages(records []models.OrderRecord, subsecond bool) models.TimeAverages {
	return models.TimeAverages{
		Kitchen:     averageElapsed(records, func(r models.OrderRecord) *time.Duration { return r.KitchenTime }, subsecond),
		Pickup:      averageElapsed(records, func(r models.OrderRecord) *time.Duration { return r.PickupTime }, subsecond),
		Delivery:    averageElapsed(records, func(r models.OrderRecord) *time.Duration { return r.DeliveryTime }, subsecond),
		RiderReturn: averageElapsed(records, func(r models.OrderRecord) *time.Duration { return r.RiderReturnTime }, subsecond),
		Cycle:       averageElapsed(records, func(r models.OrderRecord) *time.Duration { return r.CycleTime }, subsecond),
		Promised:    averageElapsed(records, func(r models.OrderRecord) *time.Duration { return r.PromisedTime }, subsecond),
	}
}

// countBy rolls up distinct non-null values of a categorical dimension,
// sorted by value for determinism.
func countBy(records []models.OrderRecord, dim func(models.OrderRecord) string) []models.CategoryCount {
	counts := make(map[string]int)
	for _, rec := range records {
		if v := dim(rec); v != "" {
			counts[v]++
		}
	}

	out := make([]models.CategoryCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, models.CategoryCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func hourlyOrders(records []models.OrderRecord) []models.HourCount {
	counts := make(map[int]int)
	for _, rec := range records {
		if rec.Hour != nil {
			counts[*rec.Hour]++
		}
	}

	out := make([]models.HourCount, 0, len(counts))
	for h, n := range counts {
		out = append(out, models.HourCount{Hour: h, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

func tradeAreas(records []models.OrderRecord) []models.TradeAreaSummary {
	type agg struct {
		count  int
		amount int64
	}
	byArea := make(map[string]*agg)
	for _, rec := range records {
		if rec.TradeArea == "" {
			continue
		}
		a, ok := byArea[rec.TradeArea]
		if !ok {
			a = &agg{}
			byArea[rec.TradeArea] = a
		}
		a.count++
		a.amount += rec.TotalAmount
	}

	out := make([]models.TradeAreaSummary, 0, len(byArea))
	for area, a := range byArea {
		out = append(out, models.TradeAreaSummary{TradeArea: area, Count: a.count, Amount: a.amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TradeArea < out[j].TradeArea })
	return out
}

// payoutSummary buckets the 80/160 compensation readings. The total sums
// every payout value; readings outside the two named buckets still count in
// the total.
func payoutSummary(records []models.OrderRecord) models.PayoutSummary {
	summary := models.PayoutSummary{}
	type agg struct {
		count  int
		payout int64
	}
	byInvoice := make(map[string]*agg)

	for _, rec := range records {
		switch rec.PayoutFlag {
		case 80:
			summary.Count80++
		case 160:
			summary.Count160++
		}
		summary.Total += rec.PayoutFlag

		a, ok := byInvoice[rec.InvoiceType]
		if !ok {
			a = &agg{}
			byInvoice[rec.InvoiceType] = a
		}
		a.count++
		a.payout += rec.PayoutFlag
	}

	summary.ByInvoiceType = make([]models.InvoicePayout, 0, len(byInvoice))
	for invoiceType, a := range byInvoice {
		summary.ByInvoiceType = append(summary.ByInvoiceType, models.InvoicePayout{
			InvoiceType: invoiceType,
			Count:       a.count,
			Payout:      a.payout,
		})
	}
	sort.Slice(summary.ByInvoiceType, func(i, j int) bool {
		a, b := summary.ByInvoiceType[i], summary.ByInvoiceType[j]
		if a.Payout != b.Payout {
			return a.Payout > b.Payout
		}
		return a.InvoiceType < b.InvoiceType
	})

	return summary
}
