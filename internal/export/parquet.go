package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/arbazmubasher1/RidersDashboard/internal/cloudwriter"
	"github.com/arbazmubasher1/RidersDashboard/internal/metrics"
	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// parquetOrder is the flat columnar shape of one filtered order. Durations
// are rendered as HH:MM:SS text so the export matches what the dashboard
// shows; null durations and dates become empty strings.
type parquetOrder struct {
	Date               string `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Rider              string `parquet:"name=rider, type=BYTE_ARRAY, convertedtype=UTF8"`
	InvoiceType        string `parquet:"name=invoice_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Shift              string `parquet:"name=shift, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderStatus        string `parquet:"name=order_status, type=BYTE_ARRAY, convertedtype=UTF8"`
	ClosingStatus      string `parquet:"name=closing_status, type=BYTE_ARRAY, convertedtype=UTF8"`
	TradeArea          string `parquet:"name=trade_area, type=BYTE_ARRAY, convertedtype=UTF8"`
	DelayReason        string `parquet:"name=delay_reason, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerComplaint  string `parquet:"name=customer_complaint, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalAmount        int64  `parquet:"name=total_amount, type=INT64"`
	PayoutFlag         int64  `parquet:"name=payout_flag, type=INT64"`
	RiderCashSubmitted int64  `parquet:"name=rider_cash_submitted, type=INT64"`
	ParkingFee         int64  `parquet:"name=parking_fee, type=INT64"`
	KitchenTime        string `parquet:"name=kitchen_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	PickupTime         string `parquet:"name=pickup_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	DeliveryTime       string `parquet:"name=delivery_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	RiderReturnTime    string `parquet:"name=rider_return_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	CycleTime          string `parquet:"name=cycle_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	PromisedTime       string `parquet:"name=promised_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	Hour               int32  `parquet:"name=hour, type=INT32"`
	Branch             string `parquet:"name=branch, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func toParquetOrder(rec models.OrderRecord) parquetOrder {
	row := parquetOrder{
		Rider:              rec.Rider,
		InvoiceType:        rec.InvoiceType,
		Shift:              rec.Shift,
		OrderStatus:        rec.OrderStatus,
		ClosingStatus:      rec.ClosingStatus,
		TradeArea:          rec.TradeArea,
		DelayReason:        rec.DelayReason,
		CustomerComplaint:  rec.CustomerComplaint,
		TotalAmount:        rec.TotalAmount,
		PayoutFlag:         rec.PayoutFlag,
		RiderCashSubmitted: rec.RiderCashSubmitted,
		ParkingFee:         rec.ParkingFee,
		KitchenTime:        elapsedText(rec.KitchenTime),
		PickupTime:         elapsedText(rec.PickupTime),
		DeliveryTime:       elapsedText(rec.DeliveryTime),
		RiderReturnTime:    elapsedText(rec.RiderReturnTime),
		CycleTime:          elapsedText(rec.CycleTime),
		PromisedTime:       elapsedText(rec.PromisedTime),
		Hour:               -1,
		Branch:             rec.Branch,
	}
	if rec.Date != nil {
		row.Date = rec.Date.Format("2006-01-02")
	}
	if rec.Hour != nil {
		row.Hour = int32(*rec.Hour)
	}
	return row
}

func elapsedText(d *time.Duration) string {
	if d == nil {
		return ""
	}
	return metrics.FormatElapsed(*d, false)
}

// ParquetOutput writes filtered orders to a columnar file, locally or via a
// cloud writer factory. Non-record topics fall back to JSON lines next to
// the parquet output.
type ParquetOutput struct {
	basePath string
	folder   string

	pw   *writer.ParquetWriter
	file source.ParquetFile

	sidecars map[string]*os.File

	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(config *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		sidecars: make(map[string]*os.File),
	}

	if config.OutputDestination != "local" {
		switch config.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(config.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = config.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
	}

	return p, nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	if topic != TopicOrders {
		return p.writeSidecar(topic, msg)
	}

	if p.pw == nil {
		if err := p.openWriter(); err != nil {
			return err
		}
	}

	var rec models.OrderRecord
	if err := json.Unmarshal(msg, &rec); err != nil {
		return err
	}
	if err := p.pw.Write(toParquetOrder(rec)); err != nil {
		return fmt.Errorf("failed to write order row: %w", err)
	}
	return nil
}

func (p *ParquetOutput) openWriter() error {
	objectPath := filepath.Join(p.folder, TopicOrders, dayStamp()+".parquet")

	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = newCloudParquetFile(cw)
	} else {
		filePath := filepath.Join(p.basePath, objectPath)
		if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
			return err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filePath)
		if err != nil {
			return fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(fw, new(parquetOrder), 4)
	if err != nil {
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.pw = pw
	p.file = fw
	return nil
}

func (p *ParquetOutput) writeSidecar(topic string, msg []byte) error {
	file, ok := p.sidecars[topic]
	if !ok {
		fullPath := filepath.Join(p.basePath, p.folder, topic)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.Create(filepath.Join(fullPath, dayStamp()+".json"))
		if err != nil {
			return err
		}
		p.sidecars[topic] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err := file.WriteString("\n")
	return err
}

func (p *ParquetOutput) Close() error {
	var lastErr error
	if p.pw != nil {
		if err := p.pw.WriteStop(); err != nil {
			lastErr = err
		}
	}
	if p.file != nil {
		if err := p.file.Close(); err != nil {
			lastErr = err
		}
	}
	for _, file := range p.sidecars {
		if err := file.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// cloudParquetFile adapts a buffering cloud writer to the parquet file
// interface. Reads and end-relative seeks are not supported for uploads.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func newCloudParquetFile(cw cloudwriter.CloudWriter) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: cw}
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error)   { return c, nil }
func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) { return c, nil }

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (int, error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
