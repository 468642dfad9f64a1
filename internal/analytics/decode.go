package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type wireCustomer struct {
	Customer *string  `json:"customer"`
	Revenue  *float64 `json:"revenue"`
}

// wireResult mirrors the response body. Pointers distinguish absent or null
// fields from zero values.
type wireResult struct {
	TopCustomers *[]*wireCustomer `json:"top_customers"`
	Months       *[]*string       `json:"months"`
	RevenueTrend *[]*float64      `json:"revenue_trend"`
	Prediction   *float64         `json:"prediction"`
	Anomalies    *[]*string       `json:"anomalies"`
	Error        *string          `json:"error"`
}

// Decode validates a response body and converts it into a Result. Any missing
// field, type mismatch, trailing data, or months/revenue_trend length mismatch
// yields a KindMalformed error; nothing is partially returned.
func Decode(body []byte) (Result, error) {
	var w wireResult
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&w); err != nil {
		return Result{}, malformedError("invalid JSON body", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Result{}, malformedError("trailing data after JSON body", err)
	}
	if w.Error != nil {
		return Result{}, malformedError(fmt.Sprintf("service reported error: %s", strings.TrimSpace(*w.Error)), nil)
	}

	var missing []string
	if w.TopCustomers == nil {
		missing = append(missing, "top_customers")
	}
	if w.Months == nil {
		missing = append(missing, "months")
	}
	if w.RevenueTrend == nil {
		missing = append(missing, "revenue_trend")
	}
	if w.Prediction == nil {
		missing = append(missing, "prediction")
	}
	if w.Anomalies == nil {
		missing = append(missing, "anomalies")
	}
	if len(missing) > 0 {
		return Result{}, malformedError("missing fields: "+strings.Join(missing, ", "), nil)
	}

	res := Result{Prediction: *w.Prediction}

	res.TopCustomers = make([]TopCustomer, 0, len(*w.TopCustomers))
	for i, c := range *w.TopCustomers {
		if c == nil || c.Customer == nil || c.Revenue == nil {
			return Result{}, malformedError(fmt.Sprintf("top_customers[%d]: customer and revenue are required", i), nil)
		}
		res.TopCustomers = append(res.TopCustomers, TopCustomer{Customer: *c.Customer, Revenue: *c.Revenue})
	}

	months, err := derefAll("months", *w.Months)
	if err != nil {
		return Result{}, err
	}
	trend, err := derefAll("revenue_trend", *w.RevenueTrend)
	if err != nil {
		return Result{}, err
	}
	anomalies, err := derefAll("anomalies", *w.Anomalies)
	if err != nil {
		return Result{}, err
	}
	if len(months) != len(trend) {
		return Result{}, malformedError(fmt.Sprintf("months has %d entries but revenue_trend has %d", len(months), len(trend)), nil)
	}
	res.Months, res.RevenueTrend, res.Anomalies = months, trend, anomalies
	return res, nil
}

func derefAll[T any](field string, in []*T) ([]T, error) {
	out := make([]T, 0, len(in))
	for i, v := range in {
		if v == nil {
			return nil, malformedError(fmt.Sprintf("%s[%d] is null", field, i), nil)
		}
		out = append(out, *v)
	}
	return out, nil
}
