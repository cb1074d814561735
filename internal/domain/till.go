package domain

// Till is the physical cash drawer for one session: the denomination
// counts seeded at initialization and the live counts after every cash
// movement since. The catalog is immutable for the life of the session;
// reconciliation only ever adjusts counts.
type Till struct {
	initial DenominationSet
	current DenominationSet
}

// NewTill seeds both the initial snapshot and the live counts from the
// opening denominations.
func NewTill(opening DenominationSet) (*Till, error) {
	if err := opening.Validate(); err != nil {
		return nil, err
	}
	return &Till{
		initial: opening.Clone(),
		current: opening.Clone(),
	}, nil
}

// RestoreTill rebuilds a till from persisted state. The live counts come
// from the snapshot as-is; the initial snapshot is carried alongside so
// balance edits can still be applied as deltas.
func RestoreTill(initial, current DenominationSet) (*Till, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	if err := current.Validate(); err != nil {
		return nil, err
	}
	return &Till{
		initial: initial.Clone(),
		current: current.Clone(),
	}, nil
}

// Current returns a copy of the live denomination counts.
func (t *Till) Current() DenominationSet {
	return t.current.Clone()
}

// Initial returns a copy of the initial denomination snapshot.
func (t *Till) Initial() DenominationSet {
	return t.initial.Clone()
}

// CashOnHand is the live till's total cash value.
func (t *Till) CashOnHand() int64 {
	return t.current.Total()
}

// delta is a per-value count adjustment, applied atomically.
type delta struct {
	value int64
	count int64
}

// apply validates every adjustment against the catalog and the resulting
// counts before mutating anything, so a failed reconciliation leaves the
// till untouched.
func (t *Till) apply(deltas []delta) error {
	next := t.current.Clone()
	for _, d := range deltas {
		idx := -1
		for i := range next {
			if next[i].Value == d.value {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrUnknownDenomination
		}
		next[idx].Count += d.count
		if next[idx].Count < 0 {
			return ErrInsufficientDenominations
		}
	}
	t.current = next
	return nil
}

func breakdownDeltas(entries []BreakdownEntry, sign int64) []delta {
	deltas := make([]delta, 0, len(entries))
	for _, e := range entries {
		deltas = append(deltas, delta{value: e.Value, count: sign * e.Count})
	}
	return deltas
}

// ApplyTransaction reconciles the till with a newly recorded transaction.
// A cash sale puts the customer's tendered denominations into the drawer
// and pays change out of it; a cash expense is the mirror image. Online
// transactions never touch the till.
func (t *Till) ApplyTransaction(tx *Transaction) error {
	if !tx.IsCash() {
		return nil
	}
	var deltas []delta
	switch tx.Type {
	case TransactionSale:
		deltas = append(breakdownDeltas(tx.PaymentBreakdown, +1), breakdownDeltas(tx.ChangeBreakdown, -1)...)
	case TransactionExpense:
		deltas = append(breakdownDeltas(tx.PaymentBreakdown, -1), breakdownDeltas(tx.ChangeBreakdown, +1)...)
	default:
		return ErrInvalidTransactionType
	}
	return t.apply(deltas)
}

// ReverseTransaction applies the exact inverse of ApplyTransaction, used
// when a transaction is deleted. Provided no other mutation intervened,
// apply followed by reverse restores every count.
func (t *Till) ReverseTransaction(tx *Transaction) error {
	if !tx.IsCash() {
		return nil
	}
	var deltas []delta
	switch tx.Type {
	case TransactionSale:
		deltas = append(breakdownDeltas(tx.PaymentBreakdown, -1), breakdownDeltas(tx.ChangeBreakdown, +1)...)
	case TransactionExpense:
		deltas = append(breakdownDeltas(tx.PaymentBreakdown, +1), breakdownDeltas(tx.ChangeBreakdown, -1)...)
	default:
		return ErrInvalidTransactionType
	}
	return t.apply(deltas)
}

// AddToInitial adds denominations to both the initial snapshot and the
// live till, and returns the amount added. Used for "add to balance".
func (t *Till) AddToInitial(added DenominationSet) (int64, error) {
	if err := added.Validate(); err != nil {
		return 0, err
	}
	nextInitial := t.initial.Clone()
	for _, a := range added {
		if a.Count == 0 {
			continue
		}
		idx := -1
		for i := range nextInitial {
			if nextInitial[i].Value == a.Value {
				idx = i
				break
			}
		}
		if idx == -1 {
			return 0, ErrUnknownDenomination
		}
		nextInitial[idx].Count += a.Count
	}

	deltas := make([]delta, 0, len(added))
	for _, a := range added {
		if a.Count != 0 {
			deltas = append(deltas, delta{value: a.Value, count: a.Count})
		}
	}
	if err := t.apply(deltas); err != nil {
		return 0, err
	}
	t.initial = nextInitial
	return added.Total(), nil
}

// EditInitial replaces the initial snapshot and applies only the
// per-value difference between the old and new snapshots to the live
// till, preserving cash movement from transactions recorded since
// initialization. Returns the change in the opening balance.
func (t *Till) EditInitial(newInitial DenominationSet) (int64, error) {
	if err := newInitial.Validate(); err != nil {
		return 0, err
	}

	// The edit must cover the whole catalog. An omitted value would
	// drop its cash from the opening balance while the live till keeps
	// it, and the shrunk snapshot would reject later full edits.
	if len(newInitial) != len(t.initial) {
		return 0, ErrIncompleteCatalog
	}

	deltas := make([]delta, 0, len(newInitial))
	for _, n := range newInitial {
		old, ok := t.initial.CountOf(n.Value)
		if !ok {
			return 0, ErrUnknownDenomination
		}
		if diff := n.Count - old; diff != 0 {
			deltas = append(deltas, delta{value: n.Value, count: diff})
		}
	}

	previousTotal := t.initial.Total()
	if err := t.apply(deltas); err != nil {
		return 0, err
	}
	t.initial = newInitial.Clone()
	return newInitial.Total() - previousTotal, nil
}
