/*
 * search.go, part of xtalgraph.
 *
 * Search is the immutable result value §3/§4.1 describe: isomorphisms
 * grouped by location (canonical sorted parent vertex set), each location
 * carrying its distinct orientations. Grouping uses an
 * emirpasic/gods/trees/redblacktree, the same "build a comparator, Put
 * canonical keys, walk the tree in order" idiom fine-structures-fine.SDK's
 * lib2x3/factor.go uses to deduplicate and order FactorSets — here the key
 * is a location's sorted vertex slice instead of a FactorSet.
 */
package iso

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	xtal "github.com/rmera/xtalgraph"
)

// Location is one equivalence class of isomorphisms sharing the same
// unordered parent vertex set (§3, §4.1's "Result grouping").
type Location struct {
	// Vertices is the canonical sorted set of 0-based parent atom indices
	// this location occupies.
	Vertices []int
	// Orientations holds the distinct isomorphisms at this location, each
	// a map from 0-based query index to 0-based parent index, in the
	// order they were first discovered (which is deterministic, per
	// testable property 4).
	Orientations [][]int
}

// Search is the read-only result of substructure_search: the query and
// parent it was run against, and every location found.
type Search struct {
	Query    *xtal.Crystal
	Parent   *xtal.Crystal
	Exact    bool
	Locations []*Location
}

func locationComparator(a, b interface{}) int {
	av, bv := a.([]int), b.([]int)
	for i := 0; i < len(av) && i < len(bv); i++ {
		if av[i] != bv[i] {
			return av[i] - bv[i]
		}
	}
	return len(av) - len(bv)
}

// Run performs substructure_search: enumerates every isomorphism of query
// into parent and groups them into locations, per §4.1.
func Run(query, parent *xtal.Crystal, exact bool) *Search {
	isos := FindSubgraphIsomorphisms(query, parent, exact)

	tree := redblacktree.Tree{Comparator: locationComparator}
	for _, m := range isos {
		key := sortedCopy(m)
		v, found := tree.Get(key)
		var loc *Location
		if found {
			loc = v.(*Location)
		} else {
			loc = &Location{Vertices: key}
			tree.Put(key, loc)
		}
		loc.Orientations = append(loc.Orientations, m)
	}

	locations := make([]*Location, 0, tree.Size())
	it := tree.Iterator()
	for it.Next() {
		locations = append(locations, it.Value().(*Location))
	}
	return &Search{Query: query, Parent: parent, Exact: exact, Locations: locations}
}

// NbIsomorphisms returns the total count of isomorphisms across all
// locations.
func (s *Search) NbIsomorphisms() int {
	n := 0
	for _, l := range s.Locations {
		n += len(l.Orientations)
	}
	return n
}

// NbLocations returns the number of distinct locations found.
func (s *Search) NbLocations() int { return len(s.Locations) }

// NbOrientationsAtLocation returns the number of distinct orientations at
// location k (0-based index into s.Locations).
func (s *Search) NbOrientationsAtLocation(k int) int {
	return len(s.Locations[k].Orientations)
}

// IsEmpty reports whether the search found no isomorphisms at all (the
// NoMatch condition of §7).
func (s *Search) IsEmpty() bool { return len(s.Locations) == 0 }
