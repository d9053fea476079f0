package report

import (
	"fmt"
	"io"
	"sort"

	"logidash/entity"
)

// DriverBalances folds payables into one balance per driver. Rejected payables count
// towards Payables but carry no amount. The result is ordered by Outstanding
// descending, then by driver name.
func DriverBalances(payables []entity.DriverPayable) []Balance {
	driverMap := make(map[string]*Balance)

	for _, p := range payables {
		entry, exists := driverMap[p.DriverID]
		if !exists {
			entry = &Balance{DriverID: p.DriverID, DriverName: p.DriverName}
			driverMap[p.DriverID] = entry
		}
		entry.Payables++

		amount := p.TotalAmount()
		switch p.Status {
		case entity.PayablePending:
			entry.Pending += amount
		case entity.PayableApproved:
			entry.Approved += amount
		case entity.PayablePaid:
			entry.Paid += amount
		case entity.PayableOnHold:
			entry.OnHold += amount
		}
	}

	result := make([]Balance, 0, len(driverMap))
	for _, entry := range driverMap {
		entry.Outstanding = entry.Pending + entry.Approved
		if entry.Outstanding < epsilon {
			entry.Outstanding = 0
		}
		result = append(result, *entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Outstanding == result[j].Outstanding {
			if result[i].DriverName == result[j].DriverName {
				return result[i].DriverID < result[j].DriverID
			}
			return result[i].DriverName < result[j].DriverName
		}
		return result[i].Outstanding > result[j].Outstanding
	})
	return result
}

// Totals sums balances into one row without a driver.
func Totals(balances []Balance) Balance {
	var total Balance
	for _, b := range balances {
		total.Pending += b.Pending
		total.Approved += b.Approved
		total.Paid += b.Paid
		total.OnHold += b.OnHold
		total.Outstanding += b.Outstanding
		total.Payables += b.Payables
	}
	return total
}

// Summarize builds the full report.
func Summarize(payables []entity.DriverPayable) Summary {
	balances := DriverBalances(payables)
	return Summary{Balances: balances, Totals: Totals(balances)}
}

// PrintBalances writes one line per driver and a totals line in a human-readable format.
func PrintBalances(w io.Writer, s Summary) error {
	for _, b := range s.Balances {
		_, err := fmt.Fprintf(w, "Driver: %s (%s), Outstanding: %.0f, Pending: %.0f, Approved: %.0f, Paid: %.0f, On Hold: %.0f\n",
			b.DriverName, b.DriverID, b.Outstanding, b.Pending, b.Approved, b.Paid, b.OnHold)
		if err != nil {
			return err
		}
	}
	t := s.Totals
	_, err := fmt.Fprintf(w, "Total: Outstanding: %.0f, Pending: %.0f, Approved: %.0f, Paid: %.0f, On Hold: %.0f\n",
		t.Outstanding, t.Pending, t.Approved, t.Paid, t.OnHold)
	return err
}
