package graph

import "sort"

// HubCard is a card with high connectivity
type HubCard struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Degree    int    `json:"degree"`
	InDegree  int    `json:"in_degree"`
	OutDegree int    `json:"out_degree"`
}

// DegreeBucket is one bucket in the degree histogram
type DegreeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopologyReport contains topology analysis results
type TopologyReport struct {
	TotalCards        int            `json:"total_cards"`
	TotalDeps         int            `json:"total_deps"`
	DepsByType        map[string]int `json:"deps_by_type"`
	Locations         int            `json:"locations"`
	BudgetedCards     int            `json:"budgeted_cards"`
	NumComponents     int            `json:"num_components"`
	LargestComponent  int            `json:"largest_component"`
	SmallestComponent int            `json:"smallest_component"`
	OrphanCount       int            `json:"orphan_count"`
	OrphanIDs         []string       `json:"orphan_ids"`
	DegreeHistogram   []DegreeBucket `json:"degree_histogram"`
	Hubs              []HubCard      `json:"hubs"`
}

// ComputeTopology analyzes board topology: components, orphans, degree distribution, hubs
func ComputeTopology(snap *BoardSnapshot, hubThreshold, topN int) *TopologyReport {
	totalCards := len(snap.Cards)

	if totalCards == 0 {
		return &TopologyReport{
			DepsByType:      map[string]int{},
			DegreeHistogram: defaultHistogram(),
		}
	}

	cardIDs := snap.CardIDs()
	uf := NewUnionFind(cardIDs)
	byType := make(map[string]int)
	for _, e := range snap.Deps {
		uf.Union(e.Source, e.Target)
		byType[e.Type]++
	}

	components := uf.Components()
	largest, smallest := 0, totalCards
	for _, c := range components {
		if len(c) > largest {
			largest = len(c)
		}
		if len(c) < smallest {
			smallest = len(c)
		}
	}

	var orphans []string
	locations, budgeted := 0, 0
	for _, id := range cardIDs {
		c := snap.Cards[id]
		if c.Kind == "location" {
			locations++
		}
		if c.CostsBudget {
			budgeted++
		}
		if len(snap.Adj[id]) == 0 {
			orphans = append(orphans, id)
		}
	}
	orphanCount := len(orphans)
	if len(orphans) > topN {
		orphans = orphans[:topN]
	}

	// Degree histogram (log-scale buckets)
	buckets := [6]int{}
	for _, id := range cardIDs {
		buckets[degreeBucket(len(snap.Adj[id]))]++
	}
	histogram := defaultHistogram()
	for i := range histogram {
		histogram[i].Count = buckets[i]
	}

	var hubs []HubCard
	for _, id := range cardIDs {
		degree := len(snap.Adj[id])
		if degree > hubThreshold {
			hubs = append(hubs, HubCard{
				ID:        id,
				Title:     snap.Cards[id].Title,
				Degree:    degree,
				InDegree:  len(snap.InAdj[id]),
				OutDegree: len(snap.OutAdj[id]),
			})
		}
	}
	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].Degree > hubs[j].Degree })
	if len(hubs) > topN {
		hubs = hubs[:topN]
	}

	return &TopologyReport{
		TotalCards:        totalCards,
		TotalDeps:         len(snap.Deps),
		DepsByType:        byType,
		Locations:         locations,
		BudgetedCards:     budgeted,
		NumComponents:     len(components),
		LargestComponent:  largest,
		SmallestComponent: smallest,
		OrphanCount:       orphanCount,
		OrphanIDs:         orphans,
		DegreeHistogram:   histogram,
		Hubs:              hubs,
	}
}

func defaultHistogram() []DegreeBucket {
	return []DegreeBucket{
		{Label: "0"}, {Label: "1"}, {Label: "2-3"},
		{Label: "4-7"}, {Label: "8-15"}, {Label: "16+"},
	}
}

func degreeBucket(degree int) int {
	switch {
	case degree == 0:
		return 0
	case degree == 1:
		return 1
	case degree <= 3:
		return 2
	case degree <= 7:
		return 3
	case degree <= 15:
		return 4
	default:
		return 5
	}
}
