package graph

import "sort"

// CardInfo is a lightweight card representation decoupled from DB types
type CardInfo struct {
	ID            string
	Title         string
	Kind          string // "card", "location"
	Hidden        bool   // declared hidden at setup
	Reserve       bool
	CostsBudget   bool
	InitiallyOpen bool
}

// DepInfo is a lightweight dependency edge
type DepInfo struct {
	Source string
	Target string
	Type   string // "hide", "open", "activator"
}

// BoardSnapshot holds a declared board with precomputed adjacency lists and region map
type BoardSnapshot struct {
	Cards   map[string]*CardInfo
	Deps    []DepInfo
	Adj     map[string][]string // undirected
	OutAdj  map[string][]string // directed: source -> targets
	InAdj   map[string][]string // directed: target -> sources
	Regions map[string]string   // card_id -> location that hides it
}

// NewSnapshot builds a BoardSnapshot from raw cards and deps
func NewSnapshot(cards []*CardInfo, deps []DepInfo) *BoardSnapshot {
	cardMap := make(map[string]*CardInfo, len(cards))
	adj := make(map[string][]string)
	outAdj := make(map[string][]string)
	inAdj := make(map[string][]string)

	for _, c := range cards {
		cardMap[c.ID] = c
		adj[c.ID] = nil // ensure entry exists
		outAdj[c.ID] = nil
		inAdj[c.ID] = nil
	}

	var kept []DepInfo
	for _, e := range deps {
		if _, ok := cardMap[e.Source]; !ok {
			continue
		}
		if _, ok := cardMap[e.Target]; !ok {
			continue
		}
		kept = append(kept, e)
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
		outAdj[e.Source] = append(outAdj[e.Source], e.Target)
		inAdj[e.Target] = append(inAdj[e.Target], e.Source)
	}

	return &BoardSnapshot{
		Cards:   cardMap,
		Deps:    kept,
		Adj:     adj,
		OutAdj:  outAdj,
		InAdj:   inAdj,
		Regions: computeRegions(cardMap, kept),
	}
}

// FilterToRegion returns a new snapshot containing only the location and the cards it hides
func (s *BoardSnapshot) FilterToRegion(locationID string) *BoardSnapshot {
	var filteredCards []*CardInfo
	filteredSet := make(map[string]bool)
	for _, id := range s.CardIDs() {
		if id == locationID || s.Regions[id] == locationID {
			filteredCards = append(filteredCards, s.Cards[id])
			filteredSet[id] = true
		}
	}

	var filteredDeps []DepInfo
	for _, e := range s.Deps {
		if filteredSet[e.Source] && filteredSet[e.Target] {
			filteredDeps = append(filteredDeps, e)
		}
	}

	return NewSnapshot(filteredCards, filteredDeps)
}

// CardIDs returns a sorted list of all card IDs (for deterministic output)
func (s *BoardSnapshot) CardIDs() []string {
	ids := make([]string, 0, len(s.Cards))
	for id := range s.Cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DepsOfType returns the deps of one relation
func (s *BoardSnapshot) DepsOfType(depType string) []DepInfo {
	var out []DepInfo
	for _, e := range s.Deps {
		if e.Type == depType {
			out = append(out, e)
		}
	}
	return out
}

// computeRegions assigns every card to the location card hiding it. A location
// is its own region; a card hidden by several locations takes the first by ID.
func computeRegions(cards map[string]*CardInfo, deps []DepInfo) map[string]string {
	regions := make(map[string]string, len(cards))
	for id, c := range cards {
		if c.Kind == "location" {
			regions[id] = id
		}
	}
	for _, e := range deps {
		if e.Type != "hide" || cards[e.Source].Kind != "location" {
			continue
		}
		if _, own := regions[e.Target]; own && cards[e.Target].Kind == "location" {
			continue
		}
		if cur, ok := regions[e.Target]; !ok || e.Source < cur {
			regions[e.Target] = e.Source
		}
	}
	for id := range cards {
		if _, ok := regions[id]; !ok {
			regions[id] = "unassigned"
		}
	}
	return regions
}
