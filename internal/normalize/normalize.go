package normalize

import (
	"strings"
	"time"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
	"github.com/arbazmubasher1/RidersDashboard/internal/source"
)

// Normalize converts one raw table into a typed snapshot for a branch.
//
// Guarantees: rows that are entirely blank or contain a broken-reference
// marker are dropped; entirely blank columns are treated as absent; every
// expected column exists on every record even when missing from the header;
// numeric and duration fields never survive as raw text. A bad cell never
// fails the load; only an unreadable source does, and that is the source
// layer's concern.
func Normalize(table source.Table, branch string, rules models.ProfileConfig) *models.Snapshot {
	cols := liveColumns(table)

	records := make([]models.OrderRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		if rowBlank(row) || rowCorrupted(row) {
			continue
		}

		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		rec := models.OrderRecord{
			Date:              parseDate(cell(models.ColDate)),
			Rider:             cell(models.ColRider),
			InvoiceType:       cell(models.ColInvoiceType),
			Shift:             cell(models.ColShift),
			OrderStatus:       cell(models.ColOrderStatus),
			ClosingStatus:     cell(models.ColClosingStatus),
			TradeArea:         cell(models.ColTradeArea),
			DelayReason:       cell(models.ColDelayReason),
			CustomerComplaint: cell(models.ColCustomerComplaint),

			TotalAmount:        parseMoney(cell(models.ColTotalAmount)),
			PayoutFlag:         parseMoney(cell(models.ColPayoutFlag)),
			RiderCashSubmitted: parseMoney(cell(models.ColRiderCash)),

			KitchenTime:     parseElapsed(cell(models.ColKitchenTime)),
			PickupTime:      parseElapsed(cell(models.ColPickupTime)),
			DeliveryTime:    parseElapsed(cell(models.ColDeliveryTime)),
			RiderReturnTime: parseElapsed(cell(models.ColRiderReturnTime)),
			CycleTime:       parseElapsed(cell(models.ColCycleTime)),
			PromisedTime:    parseElapsed(cell(models.ColPromisedTime)),

			Branch: branch,
		}
		rec.InvoiceTime, rec.Hour = parseClock12(cell(models.ColInvoiceTime))

		// The adjustment column only exists for profiles that carry the
		// deduction rule; everyone else stays at zero.
		if rules.AdjustmentColumn != "" {
			rec.ParkingFee = parseMoney(cell(rules.AdjustmentColumn))
		}

		records = append(records, rec)
	}

	return &models.Snapshot{
		Records:  records,
		LoadedAt: time.Now(),
		Rules:    map[string]models.ProfileConfig{branch: rules},
	}
}

// liveColumns indexes trimmed header names, skipping columns that are blank
// across every row. A blank column behaves exactly like an absent one: its
// values synthesize to null defaults.
func liveColumns(table source.Table) map[string]int {
	cols := make(map[string]int, len(table.Headers))
	for i, h := range table.Headers {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, seen := cols[h]; seen {
			continue
		}
		if columnBlank(table.Rows, i) {
			continue
		}
		cols[h] = i
	}
	return cols
}

func columnBlank(rows [][]string, idx int) bool {
	for _, row := range rows {
		if idx < len(row) && strings.TrimSpace(row[idx]) != "" {
			return false
		}
	}
	return true
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// rowCorrupted reports whether any cell carries a broken spreadsheet
// formula reference. Such rows must never reach metrics, including raw counts.
func rowCorrupted(row []string) bool {
	for _, cell := range row {
		if strings.Contains(cell, models.RefMarker) {
			return true
		}
	}
	return false
}
