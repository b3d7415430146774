package board

import (
	"fmt"
	"io"
	"log"
	"slices"
	"time"

	"revealboard/internal/budget"
	"revealboard/internal/transition"
)

// DefaultZoomSize is the camera size used to frame a single card
const DefaultZoomSize = 5.25

// Options tunes a Graph
type Options struct {
	FlipDuration time.Duration
	ZoomSize     float64 // default single-card zoom size
	Logger       *log.Logger
}

// DefaultOptions returns the stock flip timing
func DefaultOptions() Options {
	return Options{
		FlipDuration: 500 * time.Millisecond,
		ZoomSize:     DefaultZoomSize,
	}
}

// EventKind distinguishes open and close notifications
type EventKind int

const (
	EventOpened EventKind = iota
	EventClosed
)

func (k EventKind) String() string {
	if k == EventClosed {
		return "closed"
	}
	return "opened"
}

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Event is emitted after a flip commits, before propagation
type Event struct {
	Kind EventKind `json:"kind"`
	Node NodeID    `json:"node"`
	Key  string    `json:"key"`
}

type cascadeID uint64

// cascade tracks the flips triggered by one user flip
type cascade struct {
	visited  map[NodeID]bool
	inflight int
}

// Graph is the reveal dependency graph over an arena of nodes.
// It is not safe for concurrent use; each session owns its own Graph.
type Graph struct {
	nodes  []*Node
	byKey  map[string]NodeID
	budget *budget.Budget
	opts   Options
	logger *log.Logger

	subs        []func(Event)
	cascades    map[cascadeID]*cascade
	lastCascade cascadeID
}

// New builds the node arena from a declaration. The budget is shared by all
// budgeted flips of this graph and must not be shared across sessions.
func New(decl *Declaration, b *budget.Budget, opts Options) (*Graph, error) {
	if decl == nil {
		return nil, fmt.Errorf("nil board declaration")
	}
	if b == nil {
		return nil, fmt.Errorf("nil reveal budget")
	}
	if opts.ZoomSize <= 0 {
		opts.ZoomSize = DefaultZoomSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	g := &Graph{
		nodes:    make([]*Node, 0, len(decl.Cards)),
		byKey:    make(map[string]NodeID, len(decl.Cards)),
		budget:   b,
		opts:     opts,
		logger:   logger,
		cascades: make(map[cascadeID]*cascade),
	}

	for _, c := range decl.Cards {
		if c.Key == "" {
			return nil, fmt.Errorf("card with empty key (title %q)", c.Title)
		}
		if _, dup := g.byKey[c.Key]; dup {
			return nil, fmt.Errorf("duplicate card key %q", c.Key)
		}
		id := NodeID(len(g.nodes))
		g.byKey[c.Key] = id
		g.nodes = append(g.nodes, &Node{
			ID:              id,
			Key:             c.Key,
			Title:           c.Title,
			Kind:            c.Kind,
			Status:          Closed,
			Interaction:     c.Interaction,
			CostsBudget:     c.CostsBudget,
			Reserve:         c.Reserve,
			InitiallyOpen:   c.InitiallyOpen,
			SpecialRotation: c.SpecialRotation,
			Position:        c.Position,
			ZoomOffset:      c.ZoomOffset,
			ZoomSize:        c.ZoomSize,
		})
	}

	for _, d := range decl.Deps {
		src, ok := g.byKey[d.Source]
		if !ok {
			return nil, fmt.Errorf("%s dependency: unknown source card %q", d.Type, d.Source)
		}
		dst, ok := g.byKey[d.Target]
		if !ok {
			return nil, fmt.Errorf("%s dependency: unknown target card %q", d.Type, d.Target)
		}
		switch d.Type {
		case DepHide:
			g.nodes[src].HideDeps = append(g.nodes[src].HideDeps, dst)
		case DepOpen:
			g.nodes[src].OpenDeps = append(g.nodes[src].OpenDeps, dst)
		case DepActivator:
			g.nodes[dst].Activators = append(g.nodes[dst].Activators, src)
			g.nodes[src].dependents = append(g.nodes[src].dependents, dst)
		default:
			return nil, fmt.Errorf("unknown dependency type %q (%s -> %s)", d.Type, d.Source, d.Target)
		}
	}

	for _, n := range g.nodes {
		n.HideDeps = indexSet(n.HideDeps)
		n.OpenDeps = indexSet(n.OpenDeps)
		n.Activators = indexSet(n.Activators)
		n.dependents = indexSet(n.dependents)
	}

	b.OnExhausted(g.revealReserve)
	return g, nil
}

func indexSet(ids []NodeID) []NodeID {
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Start applies the initial visibility rules and flips the cards declared open
func (g *Graph) Start() {
	for _, n := range g.nodes {
		if n.Status == Closed {
			for _, d := range n.HideDeps {
				g.nodes[d].Interaction = Hidden
			}
		}
	}
	for _, n := range g.nodes {
		g.gate(n)
	}
	for _, n := range g.nodes {
		if n.InitiallyOpen && n.Status == Closed {
			g.RequestFlip(n.ID)
		}
	}
}

// Subscribe registers fn for opened/closed notifications
func (g *Graph) Subscribe(fn func(Event)) {
	g.subs = append(g.subs, fn)
}

// RequestFlip starts a user-initiated flip of id. It returns false when the
// card is mid-flip or a budgeted open finds no budget left; nothing changes then.
func (g *Graph) RequestFlip(id NodeID) bool {
	if !g.valid(id) {
		return false
	}
	return g.requestFlip(id, 0)
}

func (g *Graph) requestFlip(id NodeID, cid cascadeID) bool {
	n := g.nodes[id]
	if n.Status.Transient() {
		return false
	}
	if cid != 0 && g.cascades[cid].visited[id] {
		return false
	}
	opening := n.Status == Closed
	if opening && n.CostsBudget && !g.budget.TryConsume() {
		g.logger.Printf("flip %s rejected: reveal budget exhausted", n.Key)
		return false
	}
	if _, err := n.flip.Start(n.Rotation, n.flipTarget(opening), g.opts.FlipDuration); err != nil {
		// Status and driver move together, so this only refunds the consume
		if opening && n.CostsBudget {
			g.budget.Release()
		}
		return false
	}

	if cid == 0 {
		g.lastCascade++
		cid = g.lastCascade
		g.cascades[cid] = &cascade{visited: make(map[NodeID]bool)}
	}
	c := g.cascades[cid]
	c.visited[id] = true
	c.inflight++
	n.cascade = cid

	if opening {
		n.Status = Opening
	} else {
		n.Status = Closing
	}
	return true
}

// Tick advances every flip that was in flight at the start of the tick.
// Each completion commits and propagates fully before the next node is ticked.
func (g *Graph) Tick(dt time.Duration) {
	var flipping []*Node
	for _, n := range g.nodes {
		if n.flip.Active() {
			flipping = append(flipping, n)
		}
	}
	for _, n := range flipping {
		pose, done := n.flip.Tick(dt)
		n.Rotation = pose
		if done {
			g.complete(n)
		}
	}
}

func (g *Graph) complete(n *Node) {
	cid := n.cascade
	n.cascade = 0

	kind := EventOpened
	if n.Status == Opening {
		n.Status = Opened
	} else {
		n.Status = Closed
		kind = EventClosed
		if n.CostsBudget {
			g.budget.Release()
		}
	}

	ev := Event{Kind: kind, Node: n.ID, Key: n.Key}
	for _, fn := range g.subs {
		fn(ev)
	}

	g.propagate(n, cid)

	if c, ok := g.cascades[cid]; ok {
		c.inflight--
		if c.inflight <= 0 {
			delete(g.cascades, cid)
		}
	}
}

func (g *Graph) propagate(n *Node, cid cascadeID) {
	opened := n.Status == Opened

	// one hop only
	for _, id := range n.HideDeps {
		d := g.nodes[id]
		if opened {
			g.activate(d)
		} else {
			d.Interaction = Hidden
		}
	}

	for _, id := range n.OpenDeps {
		d := g.nodes[id]
		if opened {
			d.RefCount++
			g.activate(d)
			if d.Status == Closed {
				g.requestFlip(id, cid)
			}
			continue
		}
		if d.RefCount == 0 {
			continue
		}
		d.RefCount--
		if d.RefCount == 0 && d.Status == Opened {
			g.requestFlip(id, cid)
			d.Interaction = Hidden
		}
	}

	for _, id := range n.dependents {
		g.gate(g.nodes[id])
	}
}

// activate makes d interactable, subject to its activators
func (g *Graph) activate(d *Node) {
	d.Interaction = Active
	g.gate(d)
}

// gate recomputes Active/Inactive from the activators. Hidden wins, and a
// node without activators keeps whatever state it was given.
func (g *Graph) gate(d *Node) {
	if d.Interaction == Hidden || len(d.Activators) == 0 {
		return
	}
	for _, a := range d.Activators {
		if g.nodes[a].Status != Opened {
			d.Interaction = Inactive
			return
		}
	}
	d.Interaction = Active
}

// revealReserve runs when the budget runs dry: reserve cards become reachable
func (g *Graph) revealReserve() {
	count := 0
	for _, n := range g.nodes {
		if n.Reserve {
			g.activate(n)
			count++
		}
	}
	if count > 0 {
		g.logger.Printf("reveal budget exhausted: %d reserve card(s) revealed", count)
	}
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Len returns the number of nodes
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns a copy of the node's public state
func (g *Graph) Node(id NodeID) (Node, bool) {
	if !g.valid(id) {
		return Node{}, false
	}
	return g.nodes[id].clone(), true
}

// Lookup resolves a card key to its NodeID
func (g *Graph) Lookup(key string) (NodeID, bool) {
	id, ok := g.byKey[key]
	return id, ok
}

// Nodes returns copies of all nodes in arena order
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.clone()
	}
	return out
}

// Flipping reports whether any flip is in flight
func (g *Graph) Flipping() bool {
	for _, n := range g.nodes {
		if n.flip.Active() {
			return true
		}
	}
	return false
}

// ZoomFraming returns the camera focus and size for clicking id
func (g *Graph) ZoomFraming(id NodeID) (pos transition.Vec3, size float64, ok bool) {
	if !g.valid(id) {
		return transition.Vec3{}, 0, false
	}
	pos, size = g.nodes[id].ZoomFraming(g.opts.ZoomSize)
	return pos, size, true
}

// Budget exposes the session's reveal budget for display
func (g *Graph) Budget() *budget.Budget { return g.budget }
