package graph

import "sort"

// ReachabilityReport lists cards a player can never see or use
type ReachabilityReport struct {
	StrandedCount  int      `json:"stranded_count"`
	StrandedIDs    []string `json:"stranded_ids"`
	DeadGatedCount int      `json:"dead_gated_count"`
	DeadGatedIDs   []string `json:"dead_gated_ids"`
}

// ComputeReachability finds hidden cards no hide or open dep reveals, and cards gated by
// an activator that can never open.
func ComputeReachability(snap *BoardSnapshot) *ReachabilityReport {
	revealed := make(map[string]bool)
	opened := make(map[string]bool)
	for _, e := range snap.Deps {
		switch e.Type {
		case "hide":
			revealed[e.Target] = true
		case "open":
			revealed[e.Target] = true
			opened[e.Target] = true
		}
	}

	stranded := make(map[string]bool)
	for id, c := range snap.Cards {
		if c.Hidden && !c.Reserve && !revealed[id] {
			stranded[id] = true
		}
	}

	// An activator that starts closed, cannot be clicked and is never forced
	// open keeps its gated cards inactive forever.
	dead := make(map[string]bool)
	for _, e := range snap.DepsOfType("activator") {
		act := snap.Cards[e.Source]
		if act.InitiallyOpen || opened[e.Source] {
			continue
		}
		if stranded[e.Source] {
			dead[e.Target] = true
		}
	}

	return &ReachabilityReport{
		StrandedCount:  len(stranded),
		StrandedIDs:    sortedKeys(stranded),
		DeadGatedCount: len(dead),
		DeadGatedIDs:   sortedKeys(dead),
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
