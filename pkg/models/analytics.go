package models

import "github.com/shopspring/decimal"

type OrderAnalytics struct {
	TotalOrders  int            `json:"totalOrders"`
	TotalRevenue float64        `json:"totalRevenue"`
	StatusCounts map[string]int `json:"statusCounts"`
}

// SummarizeOrders counts orders, sums their totals and tallies statuses.
// Revenue is accumulated in decimal so 7.48 + 12 stays 19.48.
func SummarizeOrders(orders []Order) OrderAnalytics {
	revenue := decimal.Zero
	counts := make(map[string]int)

	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.TotalAmount))

		status := o.Status
		if status == "" {
			status = StatusUnknown
		}
		counts[status]++
	}

	return OrderAnalytics{
		TotalOrders:  len(orders),
		TotalRevenue: revenue.InexactFloat64(),
		StatusCounts: counts,
	}
}
