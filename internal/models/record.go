package models

import "time"

// Canonical column headers of the dashboard export sheet. Header names are
// matched after trimming, so stray whitespace in the source does not matter.
const (
	ColDate              = "Date"
	ColRider             = "Rider Name/Code"
	ColInvoiceType       = "Invoice Type"
	ColShift             = "Shift Type"
	ColOrderStatus       = "Order Status"
	ColClosingStatus     = "Closing Status"
	ColTotalAmount       = "Total Amount"
	ColPayoutFlag        = "80/160"
	ColRiderCash         = "Rider Cash Submission to DFPL"
	ColParkingFee        = "50/10"
	ColKitchenTime       = "Total Kitchen Time"
	ColPickupTime        = "Total Pickup Time"
	ColDeliveryTime      = "Total Delivery Time"
	ColRiderReturnTime   = "Total Rider Return Time"
	ColCycleTime         = "Total Cycle Time"
	ColPromisedTime      = "Promised Time"
	ColDelayReason       = "Delay Reason"
	ColCustomerComplaint = "Customer Complaint"
	ColInvoiceTime       = "Invoice Time"
	ColTradeArea         = "Trade Area"
)

// Order status vocabulary, matched case-insensitively.
const (
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancel order"
)

// RefMarker marks a row poisoned by a broken spreadsheet formula.
const RefMarker = "#REF!"

// ExpectedColumns returns every column the normalizer guarantees to exist on
// a record. Columns absent from the source header are synthesized as null so
// downstream code never branches on column existence.
func ExpectedColumns() []string {
	return []string{
		ColDate, ColRider, ColInvoiceType, ColShift, ColOrderStatus,
		ColClosingStatus, ColTotalAmount, ColPayoutFlag, ColRiderCash,
		ColParkingFee, ColKitchenTime, ColPickupTime, ColDeliveryTime,
		ColRiderReturnTime, ColCycleTime, ColPromisedTime, ColDelayReason,
		ColCustomerComplaint, ColInvoiceTime, ColTradeArea,
	}
}

// OrderRecord is one normalized delivery-order row. Nullable categoricals use
// the empty string as null; nullable dates, durations and hours use nil.
// Money fields are integer currency; unparseable money coerces to 0 upstream.
type OrderRecord struct {
	Date              *time.Time `json:"date"`
	Rider             string     `json:"rider"`
	InvoiceType       string     `json:"invoice_type"`
	Shift             string     `json:"shift"`
	OrderStatus       string     `json:"order_status"`
	ClosingStatus     string     `json:"closing_status"`
	TradeArea         string     `json:"trade_area"`
	DelayReason       string     `json:"delay_reason"`
	CustomerComplaint string     `json:"customer_complaint"`

	TotalAmount        int64 `json:"total_amount"`
	PayoutFlag         int64 `json:"payout_flag"`
	RiderCashSubmitted int64 `json:"rider_cash_submitted"`
	ParkingFee         int64 `json:"parking_fee"`

	KitchenTime     *time.Duration `json:"kitchen_time"`
	PickupTime      *time.Duration `json:"pickup_time"`
	DeliveryTime    *time.Duration `json:"delivery_time"`
	RiderReturnTime *time.Duration `json:"rider_return_time"`
	CycleTime       *time.Duration `json:"cycle_time"`
	PromisedTime    *time.Duration `json:"promised_time"`

	InvoiceTime *time.Time `json:"invoice_time"`
	Hour        *int       `json:"hour"`

	// Branch tags the source this record came from. Per-branch business
	// rules key off this tag permanently, even after aggregation.
	Branch string `json:"branch"`
}

// Snapshot is one fully-normalized, immutable copy of the record store for a
// given source and load time. A reload produces a new Snapshot that replaces
// the old one; in-flight readers keep their pointer.
type Snapshot struct {
	Records  []OrderRecord
	LoadedAt time.Time

	// Rules maps branch tag to the business rules of the profile that
	// loaded it. Single-source snapshots hold one entry.
	Rules map[string]ProfileConfig
}
