/*
 * api.go, part of xtalgraph.
 *
 * The library surface of §6: substructure_search, substructure_replace,
 * and the Replace "sugar" composing both. §9's design note says a
 * language-neutral design should expose named functions and, if idiomatic,
 * a contains/in overload instead of the source language's infix operator
 * tricks — Go has no operator overloading, so SubstructureSearch and
 * SubstructureReplace are the whole surface; Contains below is the
 * idiomatic named substitute for "query in parent".
 */
package replace

import (
	xtal "github.com/rmera/xtalgraph"
	"github.com/rmera/xtalgraph/iso"
)

// SubstructureSearch runs substructure_search: every occurrence of query in
// parent, grouped into locations (§4.1).
func SubstructureSearch(query, parent *xtal.Crystal, exact bool) *iso.Search {
	return iso.Run(query, parent, exact)
}

// Contains reports whether query occurs at least once in parent — the
// named equivalent of the source language's "query in parent" overload
// (§9).
func Contains(query, parent *xtal.Crystal) bool {
	return !SubstructureSearch(query, parent, false).IsEmpty()
}

// SubstructureReplace runs substructure_replace: substitutes replacement
// at the locations/orientations scheme selects, per §4.4's per-config
// pipeline and global assembly. If scheme is nil, DefaultScheme() is used.
//
// A NoMatch search returns parent unchanged (deep-copied) with a warning
// logged, per §7; it is not an error. An invalid scheme is fatal and
// returned as a *xtal.Error with KindInvalidScheme.
func SubstructureReplace(search *iso.Search, replacement *xtal.Crystal, scheme *Scheme) (*xtal.Crystal, error) {
	if scheme == nil {
		scheme = DefaultScheme()
	}
	if search.IsEmpty() {
		xtal.Warnf(xtal.KindNoMatch, "query has no isomorphisms in parent; returning parent unchanged")
		return search.Parent.Copy(), nil
	}

	cfgs, err := resolveConfigs(search, scheme)
	if err != nil {
		return nil, err
	}

	query := search.Query.Copy()
	replacement = replacement.Copy()
	unmaskedIdx, candidates := unmaskedToReplacement(query, replacement)
	if len(candidates) == 0 {
		xtal.Infof(scheme.Verbose, "no unmasked-query isomorphism into the replacement; all selected matches will be deletion-only")
	}
	maskR := maskedToReplacement(query, replacement)

	matches := make([]*match, 0, len(cfgs))
	for _, cfg := range cfgs {
		xtal.Infof(scheme.Verbose, "resolving config loc=%d ori=%d", cfg.Loc+1, cfg.Ori+1)
		m, err := bestMatch(search, replacement, cfg, unmaskedIdx, candidates)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if len(candidates) > 1 {
		xtal.Warnf(xtal.KindAmbiguousReplacementMap, "%d unmasked-query isomorphisms into the replacement; used the RMSD-minimizing one per match", len(candidates))
	}

	return assemble(search.Parent, query, matches, maskR, scheme.Name)
}

// Replace is the convenience composition §6 calls "replace(parent, query
// => replacement, scheme...)": search then replace in one call.
func Replace(query, parent, replacement *xtal.Crystal, exact bool, scheme *Scheme) (*xtal.Crystal, error) {
	search := SubstructureSearch(query, parent, exact)
	return SubstructureReplace(search, replacement, scheme)
}
