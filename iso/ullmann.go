/*
 * ullmann.go, part of xtalgraph.
 *
 * find_subgraph_isomorphisms per §4.1: classical Ullmann backtracking over
 * vertex-labeled graphs, specialized so labels are atomic species and the
 * initial compatibility matrix is pruned by vertex degree. Nothing in
 * gochem does subgraph matching (its graph support, chemgraph/graph.go, is
 * a gonum/graph adapter with no search on top) so this is new code
 * grounded directly on the algorithm description rather than on a gochem
 * file; it consumes crystals and bond graphs the way gochem's own
 * algorithms consume chem.Molecule/chemgraph.Topology.
 */
package iso

import (
	"sort"

	xtal "github.com/rmera/xtalgraph"
)

// FindSubgraphIsomorphisms enumerates every injective vertex map
// iso: [0..|query|) -> [0..|parent|) such that species match exactly and
// every query edge maps to a parent edge (§4.1's adjacency preservation).
// In exact mode the map must additionally be a full graph isomorphism:
// equal vertex counts and two-way edge preservation.
//
// Isomorphisms are returned in a deterministic order (increasing query
// vertex processed first, increasing parent-vertex candidate order within
// it), satisfying testable property 4.
func FindSubgraphIsomorphisms(query, parent *xtal.Crystal, exact bool) [][]int {
	nq, np := query.Len(), parent.Len()
	if nq == 0 || nq > np {
		return nil
	}
	if exact && nq != np {
		return nil
	}
	if !speciesMultisetFits(query, parent) {
		return nil
	}

	qdeg := make([]int, nq)
	for i := 0; i < nq; i++ {
		qdeg[i] = query.Bonds.Degree(vertex(i))
	}
	pdeg := make([]int, np)
	for p := 0; p < np; p++ {
		pdeg[p] = parent.Bonds.Degree(vertex(p))
	}

	// initial compatibility: species match and deg_q(i) <= deg_p(p)
	// (== in exact mode), per §4.1 step 1.
	compat := make([][]bool, nq)
	for i := 0; i < nq; i++ {
		compat[i] = make([]bool, np)
		for p := 0; p < np; p++ {
			if query.Species(i) != parent.Species(p) {
				continue
			}
			if exact {
				compat[i][p] = qdeg[i] == pdeg[p]
			} else {
				compat[i][p] = qdeg[i] <= pdeg[p]
			}
		}
	}

	assigned := make([]int, nq)
	for i := range assigned {
		assigned[i] = -1
	}
	used := make([]bool, np)
	var results [][]int

	var backtrack func(i int)
	backtrack = func(i int) {
		if i == nq {
			m := make([]int, nq)
			copy(m, assigned)
			results = append(results, m)
			return
		}
		for p := 0; p < np; p++ {
			if used[p] || !compat[i][p] {
				continue
			}
			if !consistent(query, parent, assigned, i, p, exact) {
				continue
			}
			assigned[i] = p
			used[p] = true
			backtrack(i + 1)
			assigned[i] = -1
			used[p] = false
		}
	}
	backtrack(0)
	return results
}

// consistent checks the neighborhood condition of §4.1 step 3: every
// already-assigned neighbor of query vertex i must map to a parent vertex
// adjacent to the candidate p. In exact mode it also forbids mapping a
// non-adjacent already-assigned query vertex to an adjacent parent vertex
// (and vice versa), since a graph isomorphism must preserve non-edges too.
func consistent(query, parent *xtal.Crystal, assigned []int, i, p int, exact bool) bool {
	for j, pj := range assigned {
		if pj == -1 || j == i {
			continue
		}
		qEdge := query.Bonds.HasEdge(vertex(i), vertex(j))
		pEdge := parent.Bonds.HasEdge(vertex(p), vertex(pj))
		if qEdge && !pEdge {
			return false
		}
		if exact && !qEdge && pEdge {
			return false
		}
	}
	return true
}

func vertex(i int) int { return i + 1 }

// speciesMultisetFits reports whether the species multiset of query is a
// sub-multiset of parent's, the cheap pre-check behind testable property 5
// (null search when species don't fit, without paying for a full
// backtracking search that's doomed to find nothing).
func speciesMultisetFits(query, parent *xtal.Crystal) bool {
	qc := speciesCounts(query)
	pc := speciesCounts(parent)
	for s, n := range qc {
		if pc[s] < n {
			return false
		}
	}
	return true
}

func speciesCounts(c *xtal.Crystal) map[string]int {
	counts := make(map[string]int)
	for i := 0; i < c.Len(); i++ {
		counts[c.Species(i)]++
	}
	return counts
}

// sortedCopy returns a sorted copy of vs, used to build the canonical
// location key of §4.1's "Result grouping".
func sortedCopy(vs []int) []int {
	out := make([]int, len(vs))
	copy(out, vs)
	sort.Ints(out)
	return out
}
