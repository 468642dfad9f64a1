// Package report derives the four result views from a validated analytics
// result. It does no drawing; the TUI and chart renderers consume View.
package report

import (
	"strconv"
	"strings"

	"github.com/jask/customerdesk/internal/analytics"
	"github.com/jask/customerdesk/internal/chart"
)

// NoAnomaliesMessage is shown when the service reports no anomalies.
const NoAnomaliesMessage = "No anomalies detected ✔"

// TrendLabel names the revenue line.
const TrendLabel = "Revenue"

// View holds display-ready values for one result.
type View struct {
	TopCustomers []string
	Trend        chart.Series
	Prediction   string
	Anomalies    []string
	NoAnomalies  bool
}

// Build renders res with the given currency prefix. Order of customers,
// months and anomalies is preserved as received.
func Build(res analytics.Result, currency string) View {
	v := View{
		TopCustomers: make([]string, 0, len(res.TopCustomers)),
		Trend: chart.Series{
			Label:      TrendLabel,
			Categories: append([]string(nil), res.Months...),
			Values:     append([]float64(nil), res.RevenueTrend...),
			Fill:       false,
		},
		Prediction:  Money(currency, res.Prediction),
		Anomalies:   append([]string(nil), res.Anomalies...),
		NoAnomalies: len(res.Anomalies) == 0,
	}
	for _, c := range res.TopCustomers {
		v.TopCustomers = append(v.TopCustomers, c.Customer+" – "+Money(currency, c.Revenue))
	}
	return v
}

// AnomalyLines is the anomalies view: the fixed message or the entries.
func (v View) AnomalyLines() []string {
	if v.NoAnomalies {
		return []string{NoAnomaliesMessage}
	}
	return v.Anomalies
}

// Money prefixes a shortest-form number with the currency symbol.
func Money(currency string, amount float64) string {
	n := strconv.FormatFloat(amount, 'f', -1, 64)
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return n
	}
	return currency + " " + n
}
