package models

// BasicCounts are the headline order counts over the filtered set.
type BasicCounts struct {
	TotalOrders int `json:"total_orders"`
	InProgress  int `json:"in_progress"`
	Completed   int `json:"completed"`
	Cancelled   int `json:"cancelled"`
}

// TimeAverages holds one formatted HH:MM:SS average per duration field.
type TimeAverages struct {
	Kitchen     string `json:"avg_kitchen_time"`
	Pickup      string `json:"avg_pickup_time"`
	Delivery    string `json:"avg_delivery_time"`
	RiderReturn string `json:"avg_rider_return_time"`
	Cycle       string `json:"avg_cycle_time"`
	Promised    string `json:"avg_promised_time"`
}

// CategoryCount is one distinct categorical value with its occurrence count.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// HourCount is the order count for one derived hour of day (0-23).
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// TradeAreaSummary is the per-area order count and amount.
type TradeAreaSummary struct {
	TradeArea string `json:"trade_area"`
	Count     int    `json:"count"`
	Amount    int64  `json:"amount"`
}

// InvoicePayout is the per-invoice-type payout rollup.
type InvoicePayout struct {
	InvoiceType string `json:"invoice_type"`
	Count       int    `json:"count"`
	Payout      int64  `json:"payout"`
}

// PayoutSummary covers the 80/160 rider compensation readings. Total sums
// every payout value, not just the two named buckets.
type PayoutSummary struct {
	Count80       int             `json:"count_80"`
	Count160      int             `json:"count_160"`
	Total         int64           `json:"total"`
	ByInvoiceType []InvoicePayout `json:"by_invoice_type"`
}

// InvoiceAmount is a grouped count and summed amount per invoice type.
type InvoiceAmount struct {
	InvoiceType string `json:"invoice_type"`
	Count       int    `json:"count"`
	Amount      int64  `json:"amount"`
}

// Reconciliation is the layered financial summary. All amounts are integer
// currency; the final net must tie out exactly against its components.
type Reconciliation struct {
	GrossTotal          int64 `json:"gross_total"`
	CODTotal            int64 `json:"cod_total"`
	CardTotal           int64 `json:"card_total"`
	CancelledCODAmount  int64 `json:"cancelled_cod_amount"`
	CancelledCardAmount int64 `json:"cancelled_card_amount"`

	ComplaintCount  int   `json:"complaint_count"`
	ComplaintAmount int64 `json:"complaint_amount"`
	StaffTabCount   int   `json:"staff_tab_count"`
	StaffTabAmount  int64 `json:"staff_tab_amount"`
	PRTabCount      int   `json:"pr_tab_count"`
	PRTabAmount     int64 `json:"pr_tab_amount"`

	RiderCashSubmitted int64 `json:"rider_cash_submitted"`
	PayoutTotal        int64 `json:"payout_total"`
	ParkingFeeTotal    int64 `json:"parking_fee_total"`

	FinalNetCollection int64 `json:"final_net_collection"`

	// CardVerification restates the card total as an independent
	// cross-check alongside the composite net.
	CardVerification int64 `json:"final_net_collection_card_verification"`

	CancelledByInvoiceType []InvoiceAmount `json:"cancelled_by_invoice_type"`
}

// MetricsReport is the full nested metric set computed from one filtered
// record set. Computing it twice over the same inputs yields identical output.
type MetricsReport struct {
	Basic              BasicCounts        `json:"basic"`
	TimeAverages       TimeAverages       `json:"time_averages"`
	DelayReasons       []CategoryCount    `json:"delay_reasons"`
	CustomerComplaints []CategoryCount    `json:"customer_complaints"`
	ClosingStatuses    []CategoryCount    `json:"closing_statuses"`
	HourlyOrders       []HourCount        `json:"hourly_orders"`
	TradeAreas         []TradeAreaSummary `json:"trade_areas"`
	Payouts            PayoutSummary      `json:"payouts"`
	Reconciliation     Reconciliation     `json:"reconciliation"`
}
