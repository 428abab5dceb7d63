package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

var (
	sampleOut   string
	sampleRows  int
	sampleSheet string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a demo order export for local runs and fixtures",
	Long: `sample writes a realistic delivery-order worksheet with the expected columns,
including a sprinkling of blank and malformed cells so the tolerant parsing
paths have something to chew on.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := generateSampleRows(sampleRows)
		if strings.EqualFold(filepath.Ext(sampleOut), ".xlsx") {
			return writeSampleXLSX(sampleOut, sampleSheet, rows)
		}
		return writeSampleCSV(sampleOut, rows)
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleOut, "out", "sample_orders.csv", "output file (.csv or .xlsx)")
	sampleCmd.Flags().IntVar(&sampleRows, "rows", 200, "number of order rows")
	sampleCmd.Flags().StringVar(&sampleSheet, "worksheet", "For Dashboard", "worksheet name for xlsx output")

	rootCmd.AddCommand(sampleCmd)
}

var fake = faker.New()

var (
	sampleInvoiceTypes = []string{"COD", "COD - Online", "Card", "Credit Card", "Complaint Order", "Staff Tab", "PR Tab"}
	sampleShifts       = []string{"Morning", "Evening", "Night"}
	sampleStatuses     = []string{"Completed", "Completed", "Completed", "In Progress", "Cancel Order"}
	sampleClosing      = []string{"Shift Close", "Pending"}
	sampleDelays       = []string{"", "", "Kitchen Delay", "Traffic", "Rider Unavailable"}
	sampleComplaints   = []string{"", "", "", "Cold Food", "Late Delivery"}
	sampleAreas        = []string{"DHA Phase 5", "Gulberg", "Johar Town", "Model Town"}
)

func generateSampleRows(n int) [][]string {
	header := models.ExpectedColumns()
	rows := [][]string{header}

	start := time.Now().AddDate(0, -1, 0)
	for i := 0; i < n; i++ {
		date := fake.Time().TimeBetween(start, time.Now())
		payout := []string{"0", "80", "160"}[fake.IntBetween(0, 2)]
		amount := fmt.Sprintf("%d", fake.IntBetween(300, 5000))

		// Roughly one row in 25 gets an unparseable duration or amount, so
		// the zero-coercion and null-duration paths stay exercised locally.
		kitchen := sampleElapsed()
		if fake.IntBetween(0, 24) == 0 {
			kitchen = "n/a"
		}
		if fake.IntBetween(0, 24) == 0 {
			amount = "-"
		}

		row := map[string]string{
			models.ColDate:              date.Format("2006-01-02"),
			models.ColRider:             fmt.Sprintf("%s-%s", fake.Person().FirstName(), cuid.Slug()),
			models.ColInvoiceType:       fake.RandomStringElement(sampleInvoiceTypes),
			models.ColShift:             fake.RandomStringElement(sampleShifts),
			models.ColOrderStatus:       fake.RandomStringElement(sampleStatuses),
			models.ColClosingStatus:     fake.RandomStringElement(sampleClosing),
			models.ColTotalAmount:       amount,
			models.ColPayoutFlag:        payout,
			models.ColRiderCash:         fmt.Sprintf("%d", fake.IntBetween(0, 3000)),
			models.ColParkingFee:        fmt.Sprintf("%d", fake.IntBetween(0, 60)),
			models.ColKitchenTime:       kitchen,
			models.ColPickupTime:        sampleElapsed(),
			models.ColDeliveryTime:      sampleElapsed(),
			models.ColRiderReturnTime:   sampleElapsed(),
			models.ColCycleTime:         sampleElapsed(),
			models.ColPromisedTime:      "00:45:00",
			models.ColDelayReason:       fake.RandomStringElement(sampleDelays),
			models.ColCustomerComplaint: fake.RandomStringElement(sampleComplaints),
			models.ColInvoiceTime:       date.Format("03:04:05 PM"),
			models.ColTradeArea:         fake.RandomStringElement(sampleAreas),
		}

		cells := make([]string, len(header))
		for j, col := range header {
			cells[j] = row[col]
		}
		rows = append(rows, cells)
	}
	return rows
}

func sampleElapsed() string {
	return fmt.Sprintf("00:%02d:%02d", fake.IntBetween(5, 59), fake.IntBetween(0, 59))
}

func writeSampleCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()

	logrus.WithFields(logrus.Fields{"rows": len(rows) - 1, "out": path}).Info("sample export written")
	return w.Error()
}

func writeSampleXLSX(path, sheet string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"rows": len(rows) - 1, "out": path}).Info("sample export written")
	return nil
}
