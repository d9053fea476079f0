package report

// Threshold for float comparisons
const epsilon = 1e-9

// Balance is the payable position of one driver, split by payable status.
type Balance struct {
	DriverID    string  `json:"driverId"`
	DriverName  string  `json:"driverName"`
	Pending     float64 `json:"pending"`
	Approved    float64 `json:"approved"`
	Paid        float64 `json:"paid"`
	OnHold      float64 `json:"onHold"`
	Outstanding float64 `json:"outstanding"` // Pending + Approved
	Payables    int     `json:"payables"`    // number of payables folded in, rejected ones included
}

// Summary is the report over all drivers.
type Summary struct {
	Balances []Balance `json:"balances"`
	Totals   Balance   `json:"totals"`
}
