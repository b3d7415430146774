package viewport

import "revealboard/internal/transition"

// DefaultHistoryCapacity is the number of framings kept for undo. It is also
// the ceiling: no history holds more.
const DefaultHistoryCapacity = 10

// ViewRecord is an immutable snapshot of a framing
type ViewRecord struct {
	State    ViewState       `json:"state"`
	Size     float64         `json:"size"`
	Position transition.Vec3 `json:"position"`
}

// History is a bounded LIFO of framings. Pushing onto a full history
// evicts the oldest record.
type History struct {
	records  []ViewRecord
	capacity int
}

// NewHistory creates an empty history. Capacities outside [1, default] fall
// back to the default.
func NewHistory(capacity int) *History {
	if capacity < 1 || capacity > DefaultHistoryCapacity {
		capacity = DefaultHistoryCapacity
	}
	return &History{records: make([]ViewRecord, 0, capacity), capacity: capacity}
}

func (h *History) Push(r ViewRecord) {
	if len(h.records) >= h.capacity {
		copy(h.records, h.records[1:])
		h.records = h.records[:len(h.records)-1]
	}
	h.records = append(h.records, r)
}

// Pop removes and returns the most recent record
func (h *History) Pop() (ViewRecord, bool) {
	if len(h.records) == 0 {
		return ViewRecord{}, false
	}
	last := h.records[len(h.records)-1]
	h.records = h.records[:len(h.records)-1]
	return last, true
}

func (h *History) Len() int { return len(h.records) }
func (h *History) Cap() int { return h.capacity }

// Records returns a copy, oldest first
func (h *History) Records() []ViewRecord {
	out := make([]ViewRecord, len(h.records))
	copy(out, h.records)
	return out
}
