package graph

import "sort"

// CycleReport lists dependency loops per relation. Open loops terminate at
// runtime but flip every member together; hide loops can strand cards.
type CycleReport struct {
	OpenCycles  [][]string `json:"open_cycles"`
	HideCycles  [][]string `json:"hide_cycles"`
	CycleCount  int        `json:"cycle_count"`
	CardsInLoop int        `json:"cards_in_loop"`
}

// ComputeCycles finds strongly connected components in the open and hide relations
func ComputeCycles(snap *BoardSnapshot) *CycleReport {
	open := FindCycles(snap, "open")
	hide := FindCycles(snap, "hide")

	inLoop := make(map[string]bool)
	for _, group := range [][][]string{open, hide} {
		for _, c := range group {
			for _, id := range c {
				inLoop[id] = true
			}
		}
	}

	return &CycleReport{
		OpenCycles:  open,
		HideCycles:  hide,
		CycleCount:  len(open) + len(hide),
		CardsInLoop: len(inLoop),
	}
}

// FindCycles returns every strongly connected component of the depType
// relation that has more than one member or a self-loop. Members are sorted
// and components are ordered by their first member.
// Uses iterative Tarjan's algorithm to avoid stack overflow on large boards.
func FindCycles(snap *BoardSnapshot, depType string) [][]string {
	adj := make(map[string][]string)
	selfLoop := make(map[string]bool)
	for _, e := range snap.Deps {
		if e.Type != depType {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		if e.Source == e.Target {
			selfLoop[e.Source] = true
		}
	}

	index := make(map[string]int)
	low := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	counter := 0

	type frame struct {
		id   string
		next int
	}

	visit := func(id string) {
		index[id] = counter
		low[id] = counter
		counter++
		stack = append(stack, id)
		onStack[id] = true
	}

	var result [][]string
	for _, root := range snap.CardIDs() {
		if _, seen := index[root]; seen {
			continue
		}
		visit(root)
		call := []frame{{id: root}}

		for len(call) > 0 {
			top := &call[len(call)-1]
			if top.next < len(adj[top.id]) {
				w := adj[top.id][top.next]
				top.next++
				if _, seen := index[w]; !seen {
					visit(w)
					call = append(call, frame{id: w})
				} else if onStack[w] && index[w] < low[top.id] {
					low[top.id] = index[w]
				}
				continue
			}

			v := top.id
			call = call[:len(call)-1]
			if len(call) > 0 {
				parent := call[len(call)-1].id
				if low[v] < low[parent] {
					low[parent] = low[v]
				}
			}
			if low[v] != index[v] {
				continue
			}

			var comp []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			if len(comp) > 1 || selfLoop[v] {
				sort.Strings(comp)
				result = append(result, comp)
			}
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i][0] < result[j][0] })
	return result
}
