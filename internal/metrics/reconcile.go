package metrics

import (
	"sort"
	"strings"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// Invoice classification is substring-based on the lowercase invoice type, so
// future subtypes like "COD - Online" land in the right bucket. A label
// containing both "cod" and "card" would count in both buckets; that mirrors
// the sheet's matching logic and is accepted behavior.
func isCOD(invoiceType string) bool {
	return strings.Contains(strings.ToLower(invoiceType), "cod")
}

func isCard(invoiceType string) bool {
	return strings.Contains(strings.ToLower(invoiceType), "card")
}

func isComplaint(invoiceType string) bool {
	return strings.Contains(strings.ToLower(invoiceType), "complaint order")
}

func isStaffTab(invoiceType string) bool {
	return strings.Contains(strings.ToLower(invoiceType), "staff tab")
}

func isPRTab(invoiceType string) bool {
	return strings.Contains(strings.ToLower(invoiceType), "pr tab")
}

func isCancelled(rec models.OrderRecord) bool {
	return strings.EqualFold(rec.OrderStatus, models.StatusCancelled)
}

// Reconcile computes the layered financial summary over the filtered set.
// The evaluation order is fixed; every amount accumulates in int64 so the
// final net ties out exactly.
func Reconcile(records []models.OrderRecord, cfg models.ProfileConfig, branchRules map[string]models.ProfileConfig) models.Reconciliation {
	var rec models.Reconciliation

	// 1. Partition by invoice class. Valid = none of the three tabs.
	var valid []models.OrderRecord
	for _, r := range records {
		switch {
		case isComplaint(r.InvoiceType):
			rec.ComplaintCount++
			rec.ComplaintAmount += r.TotalAmount
		case isStaffTab(r.InvoiceType):
			rec.StaffTabCount++
			rec.StaffTabAmount += r.TotalAmount
		case isPRTab(r.InvoiceType):
			rec.PRTabCount++
			rec.PRTabAmount += r.TotalAmount
		default:
			valid = append(valid, r)
		}
	}

	// 2-3. Cancellations run over the full filtered set, independent of the
	// partition above, split by payment class.
	cancelledByType := make(map[string]*models.InvoiceAmount)
	for _, r := range records {
		if !isCancelled(r) {
			continue
		}
		if isCOD(r.InvoiceType) {
			rec.CancelledCODAmount += r.TotalAmount
		}
		if isCard(r.InvoiceType) {
			rec.CancelledCardAmount += r.TotalAmount
		}

		entry, ok := cancelledByType[r.InvoiceType]
		if !ok {
			entry = &models.InvoiceAmount{InvoiceType: r.InvoiceType}
			cancelledByType[r.InvoiceType] = entry
		}
		entry.Count++
		entry.Amount += r.TotalAmount
	}

	// 4-5. Payment-class totals over valid invoices.
	for _, r := range valid {
		if isCOD(r.InvoiceType) {
			rec.CODTotal += r.TotalAmount
		}
		if isCard(r.InvoiceType) {
			rec.CardTotal += r.TotalAmount
		}
	}
	if cfg.NetCODOfCancellationsAtStep4 {
		rec.CODTotal -= rec.CancelledCODAmount
	}

	// 6. Per-branch adjustment deduction. The rule follows each record's
	// originating branch, not the session profile, so merged snapshots keep
	// their source-specific deductions.
	for _, r := range records {
		if rules, ok := branchRules[r.Branch]; ok && rules.AdjustmentColumn != "" {
			rec.ParkingFeeTotal += r.ParkingFee
		}
	}
	rec.CODTotal -= rec.ParkingFeeTotal

	// Rider payouts and cash submissions over the full filtered set.
	for _, r := range records {
		rec.PayoutTotal += r.PayoutFlag
		rec.RiderCashSubmitted += r.RiderCashSubmitted
	}

	// 7. Gross scope depends on the profile revision.
	if cfg.IncludeComplaintStaffPRInGross {
		for _, r := range records {
			rec.GrossTotal += r.TotalAmount
		}
	} else {
		for _, r := range valid {
			rec.GrossTotal += r.TotalAmount
		}
	}

	// 8. Headline net collection.
	rec.FinalNetCollection = rec.GrossTotal -
		rec.CancelledCODAmount -
		rec.CancelledCardAmount -
		rec.ComplaintAmount -
		rec.StaffTabAmount -
		rec.PRTabAmount -
		rec.RiderCashSubmitted -
		rec.PayoutTotal -
		rec.CardTotal -
		rec.ParkingFeeTotal

	// 9. Independent card cross-check.
	rec.CardVerification = rec.CardTotal

	rec.CancelledByInvoiceType = make([]models.InvoiceAmount, 0, len(cancelledByType))
	for _, entry := range cancelledByType {
		rec.CancelledByInvoiceType = append(rec.CancelledByInvoiceType, *entry)
	}
	sort.Slice(rec.CancelledByInvoiceType, func(i, j int) bool {
		return rec.CancelledByInvoiceType[i].InvoiceType < rec.CancelledByInvoiceType[j].InvoiceType
	})

	return rec
}
