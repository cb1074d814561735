package domain

import "sort"

// CalculateChange computes which denominations to hand back for a change
// amount, greedily taking the largest face value first and never taking
// more units than the till holds.
//
// A zero amount succeeds with an empty breakdown. A non-zero remainder
// after all denominations are exhausted returns ErrChangeImpossible and
// the caller must block the transaction.
//
// The greedy walk is not an exact solver: on a canonical catalog (every
// value divides the next larger one, as with rupiah) it always finds a
// combination when one exists, but for arbitrary stock levels it can miss
// combinations a search would find (e.g. needing 2x2000 for 4000 when the
// till holds a 5000 and the 2000s, greedy never backtracks off the 5000's
// larger neighbours). This mirrors how registers actually count change
// and is kept deliberately.
func CalculateChange(amount int64, denominations DenominationSet) ([]BreakdownEntry, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if amount == 0 {
		return []BreakdownEntry{}, nil
	}

	sorted := make(DenominationSet, 0, len(denominations))
	for _, d := range denominations {
		if d.Count > 0 {
			sorted = append(sorted, d)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	remaining := amount
	var breakdown []BreakdownEntry
	for _, d := range sorted {
		if remaining < d.Value {
			continue
		}
		usable := remaining / d.Value
		if usable > d.Count {
			usable = d.Count
		}
		if usable > 0 {
			breakdown = append(breakdown, BreakdownEntry{Value: d.Value, Count: usable, Label: d.Label})
			remaining -= d.Value * usable
		}
	}

	if remaining > 0 {
		return nil, ErrChangeImpossible
	}
	return breakdown, nil
}

// HasEnoughChange reports whether the till can pay out amount exactly.
func HasEnoughChange(amount int64, denominations DenominationSet) bool {
	if amount <= 0 {
		return true
	}
	_, err := CalculateChange(amount, denominations)
	return err == nil
}
