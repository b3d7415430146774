package session

import (
	"revealboard/internal/board"
	"revealboard/internal/transition"
	"revealboard/internal/viewport"
)

// NodeView is the renderer's view of one card
type NodeView struct {
	ID          board.NodeID      `json:"id"`
	Key         string            `json:"key"`
	Title       string            `json:"title"`
	Kind        board.Kind        `json:"kind"`
	Status      board.Status      `json:"status"`
	Interaction board.Interaction `json:"interaction"`
	RefCount    int               `json:"ref_count"`
	Position    transition.Vec3   `json:"position"`
	Rotation    transition.Pose   `json:"rotation"`
}

// Snapshot is a read-only copy of a session's observable state
type Snapshot struct {
	ID              string             `json:"id,omitempty"`
	View            viewport.ViewState `json:"view"`
	Lock            viewport.Lock      `json:"lock"`
	Camera          transition.Pose    `json:"camera"`
	HistoryLen      int                `json:"history_len"`
	Overlay         bool               `json:"overlay"`
	BudgetRemaining int                `json:"budget_remaining"`
	BudgetTotal     int                `json:"budget_total"`
	Nodes           []NodeView         `json:"nodes"`
}

// Snapshot copies the current state
func (s *Session) Snapshot() Snapshot {
	nodes := s.board.Nodes()
	views := make([]NodeView, len(nodes))
	for i, n := range nodes {
		views[i] = NodeView{
			ID:          n.ID,
			Key:         n.Key,
			Title:       n.Title,
			Kind:        n.Kind,
			Status:      n.Status,
			Interaction: n.Interaction,
			RefCount:    n.RefCount,
			Position:    n.Position,
			Rotation:    n.Rotation,
		}
	}
	b := s.board.Budget()
	return Snapshot{
		ID:              s.ID,
		View:            s.view.State(),
		Lock:            s.view.Lock(),
		Camera:          s.view.Pose(),
		HistoryLen:      s.view.HistoryLen(),
		Overlay:         s.overlay.Visible(),
		BudgetRemaining: b.Remaining(),
		BudgetTotal:     b.Total(),
		Nodes:           views,
	}
}

// Node finds a card in the snapshot by key
func (sn Snapshot) Node(key string) (NodeView, bool) {
	for _, n := range sn.Nodes {
		if n.Key == key {
			return n, true
		}
	}
	return NodeView{}, false
}
