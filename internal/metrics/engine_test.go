package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

func dur(d time.Duration) *time.Duration { return &d }

func TestBasicCountsMatchCaseInsensitively(t *testing.T) {
	records := []models.OrderRecord{
		{OrderStatus: "Completed"},
		{OrderStatus: "completed"},
		{OrderStatus: "IN PROGRESS"},
		{OrderStatus: "Cancel Order"},
		{OrderStatus: "Dispatched"}, // outside the fixed vocabulary
	}

	counts := basicCounts(records)
	assert.Equal(t, 5, counts.TotalOrders)
	assert.Equal(t, 2, counts.Completed)
	assert.Equal(t, 1, counts.InProgress)
	assert.Equal(t, 1, counts.Cancelled)
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d         time.Duration
		subsecond bool
		want      string
	}{
		{d: time.Hour + 23*time.Minute + 45*time.Second, want: "01:23:45"},
		{d: 0, want: "00:00:00"},
		{d: 59*time.Second + 900*time.Millisecond, want: "00:00:59"},
		{d: 0, subsecond: true, want: "00:00:00.00"},
		{d: 7*time.Minute + 30*time.Second + 500*time.Millisecond, subsecond: true, want: "00:07:30.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatElapsed(tc.d, tc.subsecond))
	}
}

func TestAverageRoundTripsSingleRecord(t *testing.T) {
	records := []models.OrderRecord{
		{KitchenTime: dur(time.Hour + 23*time.Minute + 45*time.Second)},
	}

	averages := timeAverages(records, false)
	assert.Equal(t, "01:23:45", averages.Kitchen)
}

func TestAverageOfEmptyColumnIsZeroString(t *testing.T) {
	records := []models.OrderRecord{
		{DeliveryTime: dur(10 * time.Minute)},
		{DeliveryTime: dur(20 * time.Minute)},
	}

	averages := timeAverages(records, false)
	assert.Equal(t, "00:15:00", averages.Delivery)
	// Kitchen has zero non-null entries across the whole set.
	assert.Equal(t, "00:00:00", averages.Kitchen)

	subsecond := timeAverages(nil, true)
	assert.Equal(t, "00:00:00.00", subsecond.Kitchen)
}

func TestAverageSkipsNullEntries(t *testing.T) {
	records := []models.OrderRecord{
		{CycleTime: dur(30 * time.Minute)},
		{}, // null cycle time, excluded from the mean
		{CycleTime: dur(60 * time.Minute)},
	}

	averages := timeAverages(records, false)
	assert.Equal(t, "00:45:00", averages.Cycle)
}

func TestCountByExcludesNullsAndSorts(t *testing.T) {
	records := []models.OrderRecord{
		{DelayReason: "Traffic"},
		{DelayReason: "Kitchen Delay"},
		{DelayReason: "Traffic"},
		{DelayReason: ""},
	}

	reasons := countBy(records, func(r models.OrderRecord) string { return r.DelayReason })
	require.Len(t, reasons, 2)
	assert.Equal(t, models.CategoryCount{Value: "Kitchen Delay", Count: 1}, reasons[0])
	assert.Equal(t, models.CategoryCount{Value: "Traffic", Count: 2}, reasons[1])
}

func TestPayoutSummaryBucketsAndTotal(t *testing.T) {
	records := []models.OrderRecord{
		{PayoutFlag: 80, InvoiceType: "COD"},
		{PayoutFlag: 80, InvoiceType: "COD"},
		{PayoutFlag: 160, InvoiceType: "Card"},
		{PayoutFlag: 40, InvoiceType: "COD"}, // outside both named buckets
		{PayoutFlag: 0, InvoiceType: "Staff Tab"},
	}

	summary := payoutSummary(records)
	assert.Equal(t, 2, summary.Count80)
	assert.Equal(t, 1, summary.Count160)
	// The total sums every payout value, named bucket or not.
	assert.Equal(t, int64(360), summary.Total)

	require.Len(t, summary.ByInvoiceType, 3)
	assert.Equal(t, models.InvoicePayout{InvoiceType: "COD", Count: 3, Payout: 200}, summary.ByInvoiceType[0])
	assert.Equal(t, models.InvoicePayout{InvoiceType: "Card", Count: 1, Payout: 160}, summary.ByInvoiceType[1])
	assert.Equal(t, models.InvoicePayout{InvoiceType: "Staff Tab", Count: 1, Payout: 0}, summary.ByInvoiceType[2])
}

func TestHourlyOrdersFromDerivedHour(t *testing.T) {
	h13, h20 := 13, 20
	records := []models.OrderRecord{
		{Hour: &h13},
		{Hour: &h13},
		{Hour: &h20},
		{}, // null hour excluded
	}

	hours := hourlyOrders(records)
	require.Len(t, hours, 2)
	assert.Equal(t, models.HourCount{Hour: 13, Count: 2}, hours[0])
	assert.Equal(t, models.HourCount{Hour: 20, Count: 1}, hours[1])
}

func TestComputeIsIdempotent(t *testing.T) {
	records := []models.OrderRecord{
		{InvoiceType: "COD", OrderStatus: "Completed", TotalAmount: 1000, PayoutFlag: 80, Branch: "main"},
		{InvoiceType: "Card", OrderStatus: "Cancel Order", TotalAmount: 500, Branch: "main"},
	}
	cfg := models.ProfileConfig{IncludeComplaintStaffPRInGross: true}
	rules := map[string]models.ProfileConfig{"main": cfg}

	first := Compute(records, cfg, rules)
	second := Compute(records, cfg, rules)
	assert.Equal(t, first, second)
}
