package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	topCustomerLimit = 5
	// anomalyMinRows is the smallest sample the outlier check runs on.
	anomalyMinRows = 10
	// anomalyCutoff is the modified z-score above which a total is flagged.
	anomalyCutoff = 3.5
)

var requiredColumns = []string{"customer_name", "date", "total"}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

type topCustomer struct {
	Customer string  `json:"customer" yaml:"customer"`
	Revenue  float64 `json:"revenue" yaml:"revenue"`
}

// analyticsResponse is the success body of POST /customer-analytics.
type analyticsResponse struct {
	TopCustomers []topCustomer `json:"top_customers" yaml:"top_customers"`
	Months       []string      `json:"months" yaml:"months"`
	RevenueTrend []float64     `json:"revenue_trend" yaml:"revenue_trend"`
	Prediction   float64       `json:"prediction" yaml:"prediction"`
	Anomalies    []string      `json:"anomalies" yaml:"anomalies"`
}

// inputError is an unusable upload. Its text is returned to the caller.
type inputError string

func (e inputError) Error() string { return string(e) }

type sale struct {
	customer string
	date     time.Time
	total    float64
}

// analyze reads a sales CSV and summarises it. Rows with an unparseable date
// are dropped; an unparseable total counts as zero.
func analyze(r io.Reader) (analyticsResponse, error) {
	sales, err := readSales(r)
	if err != nil {
		return analyticsResponse{}, err
	}

	out := analyticsResponse{
		TopCustomers: topCustomers(sales),
		Anomalies:    []string{},
	}
	var monthly []float64
	out.Months, monthly = monthlyTotals(sales)
	out.RevenueTrend = make([]float64, len(monthly))
	for i, v := range monthly {
		out.RevenueTrend[i] = math.Trunc(v)
	}
	out.Prediction = math.Trunc(predictNext(monthly))
	if len(sales) >= anomalyMinRows {
		out.Anomalies = flagOutliers(sales)
	}
	return out, nil
}

func readSales(r io.Reader) ([]sale, error) {
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if errors.Is(err, io.EOF) {
		return nil, inputError("Failed to read CSV: no columns to parse from file")
	}
	if err != nil {
		return nil, inputError("Failed to read CSV: " + err.Error())
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, inputError("Missing column: " + c)
		}
	}

	var sales []sale
	line := 1
	for {
		line++
		rec, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, inputError(fmt.Sprintf("Failed to read CSV: line %d: %v", line, err))
		}
		date, ok := parseDate(field(rec, cols["date"]))
		if !ok {
			continue
		}
		total, err := strconv.ParseFloat(field(rec, cols["total"]), 64)
		if err != nil || math.IsNaN(total) || math.IsInf(total, 0) {
			total = 0
		}
		sales = append(sales, sale{customer: field(rec, cols["customer_name"]), date: date, total: total})
	}
	return sales, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func topCustomers(sales []sale) []topCustomer {
	sums := map[string]float64{}
	for _, s := range sales {
		sums[s.customer] += s.total
	}
	out := make([]topCustomer, 0, len(sums))
	for name, total := range sums {
		out = append(out, topCustomer{Customer: name, Revenue: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Customer < out[j].Customer
	})
	if len(out) > topCustomerLimit {
		out = out[:topCustomerLimit]
	}
	for i := range out {
		out[i].Revenue = math.Trunc(out[i].Revenue)
	}
	return out
}

// monthlyTotals sums sales per YYYY-MM, oldest month first.
func monthlyTotals(sales []sale) ([]string, []float64) {
	sums := map[string]float64{}
	for _, s := range sales {
		sums[s.date.Format("2006-01")] += s.total
	}
	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Strings(months)
	totals := make([]float64, len(months))
	for i, m := range months {
		totals[i] = sums[m]
	}
	return months, totals
}

// predictNext fits a least-squares line over months 1..n and evaluates it at
// n+1. One month predicts itself; none predicts zero.
func predictNext(totals []float64) float64 {
	n := len(totals)
	switch n {
	case 0:
		return 0
	case 1:
		return totals[0]
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range totals {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn
	return intercept + slope*float64(n+1)
}

// flagOutliers reports sales whose total has a modified z-score (median and
// median absolute deviation) above anomalyCutoff.
func flagOutliers(sales []sale) []string {
	totals := make([]float64, len(sales))
	for i, s := range sales {
		totals[i] = s.total
	}
	med := median(totals)
	dev := make([]float64, len(totals))
	for i, v := range totals {
		dev[i] = math.Abs(v - med)
	}
	mad := median(dev)
	out := []string{}
	if mad == 0 {
		return out
	}
	for _, s := range sales {
		if 0.6745*math.Abs(s.total-med)/mad > anomalyCutoff {
			out = append(out, fmt.Sprintf("Date %s - Suspicious total: %d", s.date.Format(time.DateOnly), int64(s.total)))
		}
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
