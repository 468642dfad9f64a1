package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadFixture reads a canned response. Unknown keys are rejected so typos in
// the fixture surface at startup.
func loadFixture(path string) (*analyticsResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var fx analyticsResponse
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	if len(fx.Months) != len(fx.RevenueTrend) {
		return nil, fmt.Errorf("fixture %s: %d months but %d trend values", path, len(fx.Months), len(fx.RevenueTrend))
	}
	if fx.TopCustomers == nil {
		fx.TopCustomers = []topCustomer{}
	}
	if fx.Months == nil {
		fx.Months = []string{}
		fx.RevenueTrend = []float64{}
	}
	if fx.Anomalies == nil {
		fx.Anomalies = []string{}
	}
	return &fx, nil
}
