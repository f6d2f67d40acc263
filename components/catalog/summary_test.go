package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"+$120.00":  120,
		"-$89.50":   -89.5,
		"$10":       10,
		"-$1,250.5": -1250.5,
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 0.001, in)
	}
	_, err := ParseAmount("ten dollars")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "-$89.50", FormatAmount(-89.5))
	assert.Equal(t, "+$120.00", FormatAmount(120))
}

func TestSummaryOfEmbeddedTransactions(t *testing.T) {
	s := Summary(mustCatalog(t).Transactions)
	assert.Equal(t, 25, s.Count)
	assert.InDelta(t, 4393.50, s.Spent, 0.001)
	assert.InDelta(t, 1378.00, s.Refunded, 0.001)
	assert.InDelta(t, 1293.00, s.Pending, 0.001)
	assert.Equal(t, map[string]int{"completed": 13, "pending": 4, "refunded": 4, "failed": 4}, s.ByStatus)

	months := make([]string, len(s.ByMonth))
	for i, m := range s.ByMonth {
		months[i] = m.Month
	}
	if diff := cmp.Diff([]string{"2026-01", "2026-02", "2026-03", "2026-04", "2026-05"}, months); diff != "" {
		t.Fatalf("months mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 374.75, s.ByMonth[0].Total, 0.001)
}

func TestSummarySkipsUnparsableAmounts(t *testing.T) {
	s := Summary([]Transaction{
		{ID: "a", Date: "2026-02-01", Amount: "-$10.00", Status: TransactionCompleted},
		{ID: "b", Date: "2026-01-01", Amount: "n/a", Status: TransactionCompleted},
		{ID: "c", Date: "2026-01-03", Amount: "-$5.00", Status: TransactionCompleted},
	})
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 15.0, s.Spent, 0.001)
	assert.Equal(t, []MonthlySpend{{Month: "2026-01", Total: 5}, {Month: "2026-02", Total: 10}}, s.ByMonth)
}
