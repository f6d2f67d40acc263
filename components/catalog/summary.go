package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-travelboard/components/listview"
)

// SpendingSummary aggregates the payments page header.
type SpendingSummary struct {
	Spent    float64        `json:"spent" yaml:"spent"`
	Refunded float64        `json:"refunded" yaml:"refunded"`
	Pending  float64        `json:"pending" yaml:"pending"`
	Count    int            `json:"count" yaml:"count"`
	ByStatus map[string]int `json:"by_status" yaml:"by_status"`
	ByMonth  []MonthlySpend `json:"by_month" yaml:"by_month"`
}

// MonthlySpend is the completed spend for one calendar month (YYYY-MM).
type MonthlySpend struct {
	Month string  `json:"month" yaml:"month"`
	Total float64 `json:"total" yaml:"total"`
}

// ParseAmount converts "+$120.00" / "-$89.50" / "$10" into a signed float.
func ParseAmount(amount string) (float64, error) {
	s := strings.TrimSpace(amount)
	sign := 1.0
	switch {
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("catalog: parse amount %q: %w", amount, err)
	}
	return sign * v, nil
}

// FormatAmount renders a signed value with its sign prefix.
func FormatAmount(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("+$%.2f", v)
}

// Summary totals completed spend, refunds and pending charges. Amounts that
// cannot be parsed are skipped.
func Summary(transactions []Transaction) SpendingSummary {
	out := SpendingSummary{ByStatus: map[string]int{}}
	months := map[string]int{}
	for _, t := range transactions {
		out.Count++
		out.ByStatus[string(t.Status)]++
		v, err := ParseAmount(t.Amount)
		if err != nil {
			continue
		}
		abs := v
		if abs < 0 {
			abs = -abs
		}
		switch t.Status {
		case TransactionCompleted:
			out.Spent += abs
			month := monthOf(t.Date)
			if month == "" {
				continue
			}
			idx, ok := months[month]
			if !ok {
				idx = len(out.ByMonth)
				months[month] = idx
				out.ByMonth = append(out.ByMonth, MonthlySpend{Month: month})
			}
			out.ByMonth[idx].Total += abs
		case TransactionRefunded:
			out.Refunded += abs
		case TransactionPending:
			out.Pending += abs
		}
	}
	slices.SortFunc(out.ByMonth, func(a, b MonthlySpend) int {
		return strings.Compare(a.Month, b.Month)
	})
	return out
}

func monthOf(date string) string {
	t, ok := listview.ParseDate(date)
	if !ok {
		return ""
	}
	return t.Format("2006-01")
}
