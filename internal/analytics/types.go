package analytics

import "path/filepath"

// RequiredColumns documents the CSV header the service expects. It is shown to
// the user but not enforced client side.
const RequiredColumns = "customer_name,date,total"

// TopCustomer is one ranked entry. Ranking is done by the service.
type TopCustomer struct {
	Customer string
	Revenue  float64
}

// Result is a validated analytics response.
type Result struct {
	TopCustomers []TopCustomer
	Months       []string
	RevenueTrend []float64 // index aligned with Months
	Prediction   float64
	Anomalies    []string
}

// File is a CSV staged for upload.
type File struct {
	Path string
}

// Name is the filename sent in the multipart part.
func (f File) Name() string {
	return filepath.Base(f.Path)
}
