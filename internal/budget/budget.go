package budget

import "fmt"

// Budget is the finite number of budgeted reveals left in a session.
// Invariant: 0 <= remaining <= total.
type Budget struct {
	total     int
	remaining int
	exhausted []func()
}

// New creates a full budget with the given total
func New(total int) (*Budget, error) {
	if total < 0 {
		return nil, fmt.Errorf("budget total must be >= 0, got %d", total)
	}
	return &Budget{total: total, remaining: total}, nil
}

// TryConsume takes one reveal. It fails without side effects when nothing is left.
// Every transition to zero notifies the exhausted listeners.
func (b *Budget) TryConsume() bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	if b.remaining == 0 {
		for _, fn := range b.exhausted {
			fn()
		}
	}
	return true
}

// Release returns one reveal, never above total
func (b *Budget) Release() {
	if b.remaining < b.total {
		b.remaining++
	}
}

// OnExhausted registers fn to run whenever remaining drops to zero
func (b *Budget) OnExhausted(fn func()) {
	b.exhausted = append(b.exhausted, fn)
}

func (b *Budget) Remaining() int { return b.remaining }

func (b *Budget) Total() int { return b.total }

// Exhausted reports whether no reveals are left
func (b *Budget) Exhausted() bool { return b.remaining == 0 }
