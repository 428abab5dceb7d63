package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
	"github.com/arbazmubasher1/RidersDashboard/internal/source"
)

func sampleTable() source.Table {
	return source.Table{
		Headers: []string{
			models.ColDate, models.ColRider, models.ColInvoiceType, models.ColShift,
			models.ColOrderStatus, models.ColTotalAmount, models.ColPayoutFlag,
			models.ColKitchenTime, models.ColInvoiceTime,
		},
		Rows: [][]string{
			{"2025-06-01", "R-101", "COD", "Morning", "Completed", "1500", "80", "00:25:10", "01:15:00 PM"},
			{"2025-06-02", "R-102", "Card", "Evening", "Cancel Order", "900", "0", "00:18:45", "09:05:30 AM"},
		},
	}
}

func TestNormalizeTypesRecords(t *testing.T) {
	snap := Normalize(sampleTable(), "main", models.ProfileConfig{})
	require.Len(t, snap.Records, 2)

	rec := snap.Records[0]
	require.NotNil(t, rec.Date)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *rec.Date)
	assert.Equal(t, "R-101", rec.Rider)
	assert.Equal(t, int64(1500), rec.TotalAmount)
	assert.Equal(t, int64(80), rec.PayoutFlag)

	require.NotNil(t, rec.KitchenTime)
	assert.Equal(t, 25*time.Minute+10*time.Second, *rec.KitchenTime)

	require.NotNil(t, rec.Hour)
	assert.Equal(t, 13, *rec.Hour)
	assert.Equal(t, "main", rec.Branch)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestNormalizeDropsCorruptedRows(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows,
		[]string{"2025-06-03", "#REF!", "COD", "Night", "Completed", "700", "0", "00:10:00", ""},
	)

	snap := Normalize(table, "main", models.ProfileConfig{})

	// The poisoned row is absent from every downstream count, including the
	// raw record count.
	assert.Len(t, snap.Records, 2)
	for _, rec := range snap.Records {
		assert.NotEqual(t, "#REF!", rec.Rider)
	}
}

func TestNormalizeDropsBlankRows(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows, []string{"", "  ", "", "", "", "", "", "", ""})

	snap := Normalize(table, "main", models.ProfileConfig{})
	assert.Len(t, snap.Records, 2)
}

func TestNormalizeSynthesizesMissingColumns(t *testing.T) {
	table := source.Table{
		Headers: []string{models.ColDate, models.ColInvoiceType, models.ColTotalAmount},
		Rows:    [][]string{{"2025-06-01", "COD", "1000"}},
	}

	snap := Normalize(table, "main", models.ProfileConfig{})
	require.Len(t, snap.Records, 1)

	rec := snap.Records[0]
	assert.Empty(t, rec.Rider)
	assert.Empty(t, rec.TradeArea)
	assert.Nil(t, rec.KitchenTime)
	assert.Nil(t, rec.InvoiceTime)
	assert.Nil(t, rec.Hour)
	assert.Zero(t, rec.PayoutFlag)
	assert.Zero(t, rec.RiderCashSubmitted)
}

func TestNormalizeBlankColumnBehavesAsAbsent(t *testing.T) {
	table := source.Table{
		Headers: []string{models.ColDate, models.ColRider, models.ColTotalAmount},
		Rows: [][]string{
			{"2025-06-01", "", "1000"},
			{"2025-06-02", "  ", "500"},
		},
	}

	snap := Normalize(table, "main", models.ProfileConfig{})
	require.Len(t, snap.Records, 2)
	for _, rec := range snap.Records {
		assert.Empty(t, rec.Rider)
	}
}

func TestNormalizeCoercesAmbiguousValuesToZero(t *testing.T) {
	table := source.Table{
		Headers: []string{models.ColDate, models.ColTotalAmount, models.ColPayoutFlag, models.ColRiderCash},
		Rows:    [][]string{{"2025-06-01", "pending", "n/a", "-"}},
	}

	snap := Normalize(table, "main", models.ProfileConfig{})
	require.Len(t, snap.Records, 1)

	rec := snap.Records[0]
	assert.Zero(t, rec.TotalAmount)
	assert.Zero(t, rec.PayoutFlag)
	assert.Zero(t, rec.RiderCashSubmitted)
}

func TestNormalizeBadCellsBecomeNull(t *testing.T) {
	table := source.Table{
		Headers: []string{models.ColDate, models.ColKitchenTime, models.ColInvoiceTime},
		Rows: [][]string{
			{"not a date", "soon", "25:99:00 XM"},
		},
	}

	snap := Normalize(table, "main", models.ProfileConfig{})
	require.Len(t, snap.Records, 1)

	rec := snap.Records[0]
	assert.Nil(t, rec.Date)
	assert.Nil(t, rec.KitchenTime)
	assert.Nil(t, rec.InvoiceTime)
	assert.Nil(t, rec.Hour)
}

func TestNormalizeAdjustmentColumnPerProfile(t *testing.T) {
	table := source.Table{
		Headers: []string{models.ColDate, models.ColParkingFee},
		Rows:    [][]string{{"2025-06-01", "50"}},
	}

	with := Normalize(table, "dfpl", models.ProfileConfig{AdjustmentColumn: models.ColParkingFee})
	without := Normalize(table, "other", models.ProfileConfig{})

	require.Len(t, with.Records, 1)
	require.Len(t, without.Records, 1)
	assert.Equal(t, int64(50), with.Records[0].ParkingFee)
	assert.Zero(t, without.Records[0].ParkingFee)
}

func TestParseElapsed(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		null bool
	}{
		{in: "01:23:45", want: time.Hour + 23*time.Minute + 45*time.Second},
		{in: "0:07:30.50", want: 7*time.Minute + 30*time.Second + 500*time.Millisecond},
		{in: "00:00:00", want: 0},
		{in: "", null: true},
		{in: "90 minutes", null: true},
		{in: "01:75:00", null: true},
	}

	for _, tc := range cases {
		got := parseElapsed(tc.in)
		if tc.null {
			assert.Nil(t, got, "input %q", tc.in)
			continue
		}
		require.NotNil(t, got, "input %q", tc.in)
		assert.Equal(t, tc.want, *got, "input %q", tc.in)
	}
}

func TestParseClock12DerivesHour(t *testing.T) {
	_, hour := parseClock12("11:59:59 PM")
	require.NotNil(t, hour)
	assert.Equal(t, 23, *hour)

	_, hour = parseClock12("12:00:01 AM")
	require.NotNil(t, hour)
	assert.Equal(t, 0, *hour)

	clock, hour := parseClock12("14:00:00")
	assert.Nil(t, clock)
	assert.Nil(t, hour)
}
