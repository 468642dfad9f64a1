package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/customerdesk/internal/analytics"
)

func TestScenarioSingleMonth(t *testing.T) {
	res := analytics.Result{
		TopCustomers: []analytics.TopCustomer{{Customer: "Acme", Revenue: 500}},
		Months:       []string{"Jan"},
		RevenueTrend: []float64{500},
		Prediction:   550,
		Anomalies:    []string{},
	}
	v := Build(res, "Rs")

	require.Equal(t, []string{"Acme – Rs 500"}, v.TopCustomers)
	require.Equal(t, 1, v.Trend.Len())
	require.Equal(t, "Revenue", v.Trend.Label)
	require.False(t, v.Trend.Fill)
	require.Equal(t, "Rs 550", v.Prediction)
	require.Equal(t, []string{NoAnomaliesMessage}, v.AnomalyLines())
}

func TestTrendSeriesMatchesMonths(t *testing.T) {
	for n := 0; n <= 24; n += 6 {
		months := make([]string, n)
		trend := make([]float64, n)
		for i := range months {
			months[i] = fmt.Sprintf("2024-%02d", i%12+1)
			trend[i] = float64(i * 100)
		}
		v := Build(analytics.Result{Months: months, RevenueTrend: trend, Anomalies: []string{}}, "Rs")
		require.Equal(t, n, v.Trend.Len())
		require.NoError(t, v.Trend.Validate())
		for i := range months {
			require.Equal(t, months[i], v.Trend.Categories[i])
			require.Equal(t, trend[i], v.Trend.Values[i])
		}
	}
}

func TestAnomalyMessageOnlyWhenEmpty(t *testing.T) {
	empty := Build(analytics.Result{Anomalies: []string{}}, "Rs")
	require.True(t, empty.NoAnomalies)

	nilAnomalies := Build(analytics.Result{}, "Rs")
	require.True(t, nilAnomalies.NoAnomalies)

	some := Build(analytics.Result{Anomalies: []string{"b", "a"}}, "Rs")
	require.False(t, some.NoAnomalies)
	require.Equal(t, []string{"b", "a"}, some.AnomalyLines())
	require.NotContains(t, some.AnomalyLines(), NoAnomaliesMessage)
}

func TestTopCustomersKeepGivenOrder(t *testing.T) {
	res := analytics.Result{TopCustomers: []analytics.TopCustomer{
		{Customer: "Small", Revenue: 1},
		{Customer: "Big", Revenue: 1000.25},
	}}
	v := Build(res, "Rs")
	require.Equal(t, []string{"Small – Rs 1", "Big – Rs 1000.25"}, v.TopCustomers)

	require.Empty(t, Build(analytics.Result{}, "Rs").TopCustomers)
}

func TestBuildCopiesInput(t *testing.T) {
	res := analytics.Result{Months: []string{"Jan"}, RevenueTrend: []float64{1}}
	v := Build(res, "Rs")
	res.Months[0] = "changed"
	require.Equal(t, "Jan", v.Trend.Categories[0])
}

func TestMoney(t *testing.T) {
	require.Equal(t, "Rs 500", Money("Rs", 500))
	require.Equal(t, "$ -12.5", Money(" $ ", -12.5))
	require.Equal(t, "42", Money("", 42))
}
