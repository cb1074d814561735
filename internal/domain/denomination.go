package domain

// Denomination is one physical currency unit in the till: a fixed face
// value with a display label and a mutable on-hand count.
type Denomination struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// BreakdownEntry describes how many units of one denomination changed
// hands in a single transaction leg (payment received or change given).
type BreakdownEntry struct {
	Value int64  `json:"value"`
	Count int64  `json:"count"`
	Label string `json:"label"`
}

// DenominationSet is the till state: an ordered catalog of distinct
// denominations, largest face value first. The catalog itself is fixed
// for the lifetime of a session; only counts change.
type DenominationSet []Denomination

// RupiahDenominations returns the standard catalog with zero counts.
func RupiahDenominations() DenominationSet {
	return DenominationSet{
		{Value: 100000, Label: "Rp100.000"},
		{Value: 50000, Label: "Rp50.000"},
		{Value: 20000, Label: "Rp20.000"},
		{Value: 10000, Label: "Rp10.000"},
		{Value: 5000, Label: "Rp5.000"},
		{Value: 2000, Label: "Rp2.000"},
		{Value: 1000, Label: "Rp1.000"},
		{Value: 500, Label: "Rp500"},
		{Value: 200, Label: "Rp200"},
		{Value: 100, Label: "Rp100"},
	}
}

// Total returns the cash value of the set: sum of value*count.
func (s DenominationSet) Total() int64 {
	var total int64
	for _, d := range s {
		total += d.Value * d.Count
	}
	return total
}

// CountOf returns the on-hand count for a face value and whether the
// value exists in the catalog.
func (s DenominationSet) CountOf(value int64) (int64, bool) {
	for _, d := range s {
		if d.Value == value {
			return d.Count, true
		}
	}
	return 0, false
}

// Clone returns an independent copy of the set.
func (s DenominationSet) Clone() DenominationSet {
	out := make(DenominationSet, len(s))
	copy(out, s)
	return out
}

// Validate checks catalog invariants: positive distinct values and
// non-negative counts.
func (s DenominationSet) Validate() error {
	seen := make(map[int64]bool, len(s))
	for _, d := range s {
		if d.Value <= 0 {
			return ErrInvalidDenomination
		}
		if seen[d.Value] {
			return ErrDuplicateDenomination
		}
		seen[d.Value] = true
		if d.Count < 0 {
			return ErrNegativeCount
		}
	}
	return nil
}

// BreakdownTotal returns the cash value of a breakdown.
func BreakdownTotal(entries []BreakdownEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Value * e.Count
	}
	return total
}
