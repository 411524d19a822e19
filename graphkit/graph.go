/*
 * graph.go, part of xtalgraph.
 *
 * graphkit is the vertex-labeled undirected graph kernel §4 calls for:
 * vertices 1..N each carrying a species label, edges carrying named
 * properties ("distance", "cross_boundary"), simple (no self-loops, no
 * multi-edges). It is grounded on gochem's chemgraph/graph.go, which wraps
 * gochem's own Atom/Bond types to satisfy gonum/graph's Graph and Weighted
 * interfaces; here the wrapped payload is a plain species label instead of
 * a full chemistry Atom, and edge properties are a small named map instead
 * of hardcoded Dist/Order fields.
 */
package graphkit

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph is a simple undirected graph over vertices 1..N (vertex 0 is
// unused so vertex IDs line up 1:1 with the 1-based atom indices of §3).
// It satisfies gonum's graph.Graph and graph.Weighted, the way
// chemgraph.Topology does for gochem's Atom/Bond pair.
type Graph struct {
	g       *simple.WeightedUndirectedGraph
	labels  map[int64]string
	edgeKey func(a, b int64) string
	props   map[string]map[string]float64 // edgeKey -> property name -> value
	flags   map[string]map[string]bool    // edgeKey -> property name -> value
}

// New returns an empty graph with n vertices (1..n), each initially
// carrying the zero-value label "".
func New(n int) *Graph {
	G := &Graph{
		g:      simple.NewWeightedUndirectedGraph(0, 0),
		labels: make(map[int64]string, n),
		props:  make(map[string]map[string]float64),
		flags:  make(map[string]map[string]bool),
	}
	for i := 1; i <= n; i++ {
		G.g.AddNode(simple.Node(int64(i)))
		G.labels[int64(i)] = ""
	}
	return G
}

func edgeKey(u, v int) string {
	if u > v {
		u, v = v, u
	}
	return fmt.Sprintf("%d:%d", u, v)
}

// Len returns the number of vertices.
func (G *Graph) Len() int { return len(G.labels) }

// SetLabel sets the species label of vertex v (1-based).
func (G *Graph) SetLabel(v int, label string) { G.labels[int64(v)] = label }

// Label returns the species label of vertex v (1-based).
func (G *Graph) Label(v int) string { return G.labels[int64(v)] }

// AddEdge adds an undirected edge (u,v). Panics on a self-loop or a
// duplicate edge, keeping the graph simple per §3's invariants.
func (G *Graph) AddEdge(u, v int) {
	if u == v {
		panic("graphkit: self-loop not allowed")
	}
	if G.HasEdge(u, v) {
		panic("graphkit: duplicate edge not allowed")
	}
	G.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(int64(u)), T: simple.Node(int64(v)), W: 1})
}

// HasEdge reports whether (u,v) is an edge.
func (G *Graph) HasEdge(u, v int) bool {
	return G.g.HasEdgeBetween(int64(u), int64(v))
}

// Neighbors returns the vertices adjacent to v, in ascending order.
func (G *Graph) Neighbors(v int) []int {
	it := G.g.From(int64(v))
	out := make([]int, 0, it.Len())
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	sort.Ints(out)
	return out
}

// Degree returns the number of edges incident to v.
func (G *Graph) Degree(v int) int {
	return len(G.Neighbors(v))
}

// Edges returns all edges as (u,v) pairs with u<v, in a deterministic
// order (sorted lexicographically).
func (G *Graph) Edges() [][2]int {
	out := make([][2]int, 0)
	it := G.g.Edges()
	for it.Next() {
		e := it.Edge()
		u, v := int(e.From().ID()), int(e.To().ID())
		if u > v {
			u, v = v, u
		}
		out = append(out, [2]int{u, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// SetProperty sets a numeric edge property (e.g. "distance").
func (G *Graph) SetProperty(u, v int, name string, value float64) {
	k := edgeKey(u, v)
	if G.props[k] == nil {
		G.props[k] = make(map[string]float64)
	}
	G.props[k][name] = value
}

// Property reads a numeric edge property; ok is false if never set.
func (G *Graph) Property(u, v int, name string) (value float64, ok bool) {
	k := edgeKey(u, v)
	m, found := G.props[k]
	if !found {
		return 0, false
	}
	value, ok = m[name]
	return
}

// SetFlag sets a boolean edge property (e.g. "cross_boundary").
func (G *Graph) SetFlag(u, v int, name string, value bool) {
	k := edgeKey(u, v)
	if G.flags[k] == nil {
		G.flags[k] = make(map[string]bool)
	}
	G.flags[k][name] = value
}

// Flag reads a boolean edge property; ok is false if never set.
func (G *Graph) Flag(u, v int, name string) (value bool, ok bool) {
	k := edgeKey(u, v)
	m, found := G.flags[k]
	if !found {
		return false, false
	}
	value, ok = m[name]
	return
}

// Induced returns the subgraph induced by vs (a set of vertex indices into
// G), relabeled 1..len(vs) in the order given. This is the "slicing by
// index set" operation §3 requires of crystals, specialized to the bond
// graph; it mirrors gochem's own affinity for rebuilding a restricted
// topology (see chemgraph.TopologyFromChem) rather than masking a shared one.
func (G *Graph) Induced(vs []int) *Graph {
	n := len(vs)
	H := New(n)
	pos := make(map[int]int, n)
	for i, v := range vs {
		pos[v] = i + 1
		H.SetLabel(i+1, G.Label(v))
	}
	for i, u := range vs {
		for _, w := range G.Neighbors(u) {
			j, ok := pos[w]
			if !ok || j <= i+1 {
				continue
			}
			H.AddEdge(i+1, j)
			if d, ok := G.Property(u, w, "distance"); ok {
				H.SetProperty(i+1, j, "distance", d)
			}
			if f, ok := G.Flag(u, w, "cross_boundary"); ok {
				H.SetFlag(i+1, j, "cross_boundary", f)
			}
		}
	}
	return H
}

// Concat returns a new graph containing G followed by O, with O's vertices
// renumbered starting at G.Len()+1, and no edges between the two parts.
func (G *Graph) Concat(O *Graph) *Graph {
	n, m := G.Len(), O.Len()
	H := New(n + m)
	for i := 1; i <= n; i++ {
		H.SetLabel(i, G.Label(i))
	}
	for i := 1; i <= m; i++ {
		H.SetLabel(n+i, O.Label(i))
	}
	for _, e := range G.Edges() {
		H.AddEdge(e[0], e[1])
		if d, ok := G.Property(e[0], e[1], "distance"); ok {
			H.SetProperty(e[0], e[1], "distance", d)
		}
		if f, ok := G.Flag(e[0], e[1], "cross_boundary"); ok {
			H.SetFlag(e[0], e[1], "cross_boundary", f)
		}
	}
	for _, e := range O.Edges() {
		u, v := n+e[0], n+e[1]
		H.AddEdge(u, v)
		if d, ok := O.Property(e[0], e[1], "distance"); ok {
			H.SetProperty(u, v, "distance", d)
		}
		if f, ok := O.Flag(e[0], e[1], "cross_boundary"); ok {
			H.SetFlag(u, v, "cross_boundary", f)
		}
	}
	return H
}

// the methods below satisfy gonum's graph.Graph/graph.Weighted, the same
// contract gochem's chemgraph.Topology implements, so graphkit.Graph can be
// handed to any gonum/graph algorithm (connected components, shortest
// path, etc.) without another adapter layer.

func (G *Graph) Node(id int64) graph.Node  { return G.g.Node(id) }
func (G *Graph) Nodes() graph.Nodes        { return G.g.Nodes() }
func (G *Graph) From(id int64) graph.Nodes { return G.g.From(id) }
func (G *Graph) HasEdgeBetween(xid, yid int64) bool {
	return G.g.HasEdgeBetween(xid, yid)
}
func (G *Graph) Edge(uid, vid int64) graph.Edge { return G.g.Edge(uid, vid) }
func (G *Graph) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	return G.g.WeightedEdge(uid, vid)
}
func (G *Graph) Weight(xid, yid int64) (w float64, ok bool) {
	return G.g.Weight(xid, yid)
}
