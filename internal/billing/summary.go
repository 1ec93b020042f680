package billing

import (
	"sort"
	"strings"

	"rocketfist/internal/api"
)

var ErrCurrencyRequired = api.NewError(api.ErrValidation, "payments span several currencies; pass currency to choose one")

// Summarize picks the headline total from per-currency sums. currency must
// already be an upper-case ISO 4217 code or empty. An explicit
// currency always wins, even when nothing was paid in it. Without one, the
// single present currency is used, or defaultCurrency when there were no
// payments at all.
func Summarize(totals []CurrencyTotal, currency, defaultCurrency string) (*Revenue, error) {
	byCurrency := make([]CurrencyTotal, 0, len(totals))
	for _, t := range totals {
		t.Currency = strings.ToUpper(strings.TrimSpace(t.Currency))
		byCurrency = append(byCurrency, t)
	}
	sort.Slice(byCurrency, func(i, j int) bool {
		return byCurrency[i].Currency < byCurrency[j].Currency
	})

	rev := &Revenue{ByCurrency: byCurrency}

	switch {
	case currency != "":
		rev.Currency = currency
		for _, t := range byCurrency {
			if t.Currency == currency {
				rev.TotalRevenueCents = t.TotalCents
			}
		}
	case len(byCurrency) == 0:
		rev.Currency = strings.ToUpper(defaultCurrency)
	case len(byCurrency) == 1:
		rev.Currency = byCurrency[0].Currency
		rev.TotalRevenueCents = byCurrency[0].TotalCents
	default:
		return nil, ErrCurrencyRequired
	}

	return rev, nil
}
