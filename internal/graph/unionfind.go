package graph

// UnionFind implements union-find with path compression and union by rank
type UnionFind[K comparable] struct {
	parent map[K]K
	rank   map[K]int
	size   map[K]int
}

// NewUnionFind creates a new UnionFind where each element is its own component
func NewUnionFind[K comparable](ids []K) *UnionFind[K] {
	uf := &UnionFind[K]{
		parent: make(map[K]K, len(ids)),
		rank:   make(map[K]int, len(ids)),
		size:   make(map[K]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
		uf.size[id] = 1
	}
	return uf
}

// Find returns the root of the component containing id, with path compression
func (uf *UnionFind[K]) Find(id K) K {
	root := id
	for {
		p, ok := uf.parent[root]
		if !ok || p == root {
			break
		}
		root = p
	}
	for id != root {
		next := uf.parent[id]
		uf.parent[id] = root
		id = next
	}
	return root
}

// Union merges the components containing a and b. Returns true if they were separate.
func (uf *UnionFind[K]) Union(a, b K) bool {
	rootA, rootB := uf.Find(a), uf.Find(b)
	if rootA == rootB {
		return false
	}
	if uf.rank[rootA] < uf.rank[rootB] {
		rootA, rootB = rootB, rootA
	}
	uf.parent[rootB] = rootA
	uf.size[rootA] += uf.size[rootB]
	if uf.rank[rootA] == uf.rank[rootB] {
		uf.rank[rootA]++
	}
	return true
}

// Size returns the number of elements in id's component
func (uf *UnionFind[K]) Size(id K) int {
	return uf.size[uf.Find(id)]
}

// Components returns all connected components as slices of IDs
func (uf *UnionFind[K]) Components() [][]K {
	groups := make(map[K][]K)
	for id := range uf.parent {
		root := uf.Find(id)
		groups[root] = append(groups[root], id)
	}
	result := make([][]K, 0, len(groups))
	for _, members := range groups {
		result = append(result, members)
	}
	return result
}
