/*
 * engine.go, part of xtalgraph.
 *
 * The replacement engine: per-match geometric alignment (§4.3/§4.4); the
 * global bond/atom assembly (§4.4's "Global assembly") is in assemble.go.
 * There's no gochem
 * file that does this end to end — gochem has no notion of substituting a
 * fragment into a structure — but every individual piece is grounded: the
 * centroid/center/rotate/RMSD math comes straight from geom (itself
 * grounded on geometric.go), and the "defensively copy inputs before
 * mutating" discipline follows §5 and gochem's own CopyAtoms()-before-edit
 * habit in chem.go.
 */
package replace

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"gonum.org/v1/gonum/mat"

	xtal "github.com/rmera/xtalgraph"
	"github.com/rmera/xtalgraph/geom"
	"github.com/rmera/xtalgraph/iso"
)

// match is one resolved (orientation, u2r candidate) pairing for a single
// config, with its geometric outcome already computed.
type match struct {
	isoMap map[int]int // query idx -> parent idx (the full iso, orientation)
	u2p    map[int]int // unmasked query idx -> parent idx
	u2r    map[int]int // unmasked query idx -> replacement idx (may be partial)
	xrm    *xtal.Crystal // transformed replacement, nil if this is a null replacement
	rmsd   float64
	oriIdx int
}

// unmaskedToReplacement finds the unmasked-query-to-replacement map(s) of
// §4.4 step 3, once per (query, replacement) pair since it doesn't depend
// on the parent or the match location at all. It first tries a full
// isomorphism of the unmasked query into the replacement; if none exists
// (e.g. the replacement is smaller, §4.4's "edge cases" bullet 2) it falls
// back to the best coverage obtainable by dropping one unmasked query atom
// at a time, so a partially-covering u2r can still drive external bond
// creation for the atoms it does cover — the design decision recorded in
// DESIGN.md for this spec's otherwise-unspecified "dropped silently" rule.
func unmaskedToReplacement(query, replacement *xtal.Crystal) (unmaskedIdx []int, candidates [][]int) {
	unmaskedIdx = make([]int, 0, query.Len())
	for i := 0; i < query.Len(); i++ {
		if !query.Masked(i) {
			unmaskedIdx = append(unmaskedIdx, i)
		}
	}
	if len(unmaskedIdx) == 0 {
		return unmaskedIdx, nil
	}
	uq := query.Slice(unmaskedIdx)
	candidates = iso.FindSubgraphIsomorphisms(uq, replacement, false)
	if len(candidates) > 0 {
		return unmaskedIdx, candidates
	}
	// fallback: drop one unmasked query atom at a time, keep the first
	// level that yields any match.
	for drop := 0; drop < len(unmaskedIdx); drop++ {
		sub := make([]int, 0, len(unmaskedIdx)-1)
		for i, qi := range unmaskedIdx {
			if i != drop {
				sub = append(sub, qi)
			}
		}
		uqPartial := query.Slice(sub)
		partial := iso.FindSubgraphIsomorphisms(uqPartial, replacement, false)
		for _, c := range partial {
			full := make([]int, len(unmaskedIdx))
			for i := range full {
				full[i] = -1
			}
			for i, qi := range sub {
				// position of qi within unmaskedIdx
				for k, u := range unmaskedIdx {
					if u == qi {
						full[k] = c[i]
						break
					}
				}
			}
			candidates = append(candidates, full)
		}
		if len(candidates) > 0 {
			break
		}
	}
	return unmaskedIdx, candidates
}

// maskedToReplacement pairs each masked query index with a masked
// replacement index, in increasing index order on both sides — the
// Glossary's "masked atoms map to the replacement's attachment atoms
// rather than being deleted," computed once per (query, replacement) pair
// like unmaskedToReplacement. Unlike u2r this is not an isomorphism
// search: a masked query atom and its replacement counterpart play the
// same structural role (an attachment point) without necessarily sharing
// a species, e.g. a ring carbon's R-group marker standing in for a
// methyl's attachment carbon. A count mismatch pairs up to the shorter
// side; any unpaired masked atom is silently left unattached, the same
// "dropped silently" rule §4.4 already applies to uncovered u2r entries.
func maskedToReplacement(query, replacement *xtal.Crystal) map[int]int {
	var maskedQ, maskedR []int
	for i := 0; i < query.Len(); i++ {
		if query.Masked(i) {
			maskedQ = append(maskedQ, i)
		}
	}
	for i := 0; i < replacement.Len(); i++ {
		if replacement.Masked(i) {
			maskedR = append(maskedR, i)
		}
	}
	n := len(maskedQ)
	if len(maskedR) < n {
		n = len(maskedR)
	}
	m := make(map[int]int, n)
	for i := 0; i < n; i++ {
		m[maskedQ[i]] = maskedR[i]
	}
	return m
}

// toIndexMap converts a candidate slice (indexed by position in
// unmaskedIdx, -1 meaning "uncovered") into a query-idx -> replacement-idx
// map.
func toIndexMap(unmaskedIdx []int, candidate []int) map[int]int {
	m := make(map[int]int, len(unmaskedIdx))
	for k, qi := range unmaskedIdx {
		if candidate[k] >= 0 {
			m[qi] = candidate[k]
		}
	}
	return m
}

// alignOne computes the geometric outcome (§4.4 steps 1-8) for one
// (orientation, u2r candidate) pair. isoMap is 0-based query->parent.
func alignOne(query, parent, replacement *xtal.Crystal, isoMap []int, unmaskedIdx []int, candidate []int) (*match, error) {
	u2p := make(map[int]int, len(unmaskedIdx))
	for _, qi := range unmaskedIdx {
		u2p[qi] = isoMap[qi]
	}
	u2r := toIndexMap(unmaskedIdx, candidate)

	if len(u2r) == 0 {
		// null replacement: no surviving unmasked->replacement mapping at all.
		return &match{isoMap: indexMapFromSlice(isoMap), u2p: u2p, u2r: u2r, xrm: nil, rmsd: 0}, nil
	}

	// parent subset at iso, PBC-adjusted anchored at its first atom.
	parentSub := parent.Slice(isoMap)
	adjFrac, err := geom.AdjustForPBC(parentSub.Atoms.Frac)
	if err != nil {
		return nil, err
	}
	parentSubCart := parent.Box.FracToCartMany(adjFrac)

	// u2p rows within the parent subset: isoMap[qi] is a parent atom
	// index; within parentSub, that same atom sits at position
	// index-of(isoMap[qi]) in isoMap itself (Slice preserves order).
	posInSub := make(map[int]int, len(isoMap))
	for pos, pIdx := range isoMap {
		posInSub[pIdx] = pos
	}

	repCart := replacement.Box.FracToCartMany(replacement.Atoms.Frac)

	// Build the paired rows for Procrustes: one row per unmasked query
	// index covered by both u2p and u2r.
	var bRows, aRows [][3]float64
	var qiOrder []int
	for _, qi := range unmaskedIdx {
		rIdx, ok := u2r[qi]
		if !ok {
			continue
		}
		pIdx := u2p[qi]
		sub := posInSub[pIdx]
		bRows = append(bRows, [3]float64{parentSubCart.At(sub, 0), parentSubCart.At(sub, 1), parentSubCart.At(sub, 2)})
		aRows = append(aRows, [3]float64{repCart.At(rIdx, 0), repCart.At(rIdx, 1), repCart.At(rIdx, 2)})
		qiOrder = append(qiOrder, qi)
	}
	if len(aRows) < 3 {
		xtal.Warnf(xtal.KindDegenerateAlignment, "alignment set has only %d points", len(aRows))
	}

	A := rowsToDense(aRows)
	B := rowsToDense(bRows)
	centroidA := geom.Centroid(A)
	centroidB := geom.Centroid(B)
	Ac := geom.Center(A, centroidA)
	Bc := geom.Center(B, centroidB)

	R, err := geom.Procrustes(Ac, Bc)
	if err != nil {
		return nil, err
	}

	// transform the whole replacement: center on centroidA, rotate, then
	// translate to centroidB (§4.4 step 7).
	repAllCentered := geom.Center(repCart, centroidA)
	var rotated mat.Dense
	rotated.Mul(repAllCentered, R)
	n, _ := rotated.Dims()
	finalCart := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		finalCart.Set(i, 0, rotated.At(i, 0)+centroidB[0])
		finalCart.Set(i, 1, rotated.At(i, 1)+centroidB[1])
		finalCart.Set(i, 2, rotated.At(i, 2)+centroidB[2])
	}
	finalFrac := parent.Box.CartToFracMany(finalCart)

	xrm := &xtal.Crystal{
		Name:  replacement.Name,
		Box:   parent.Box,
		Atoms: xtal.NewAtomSet(append([]xtal.Atom{}, replacement.Atoms.Atoms...), finalFrac),
		Bonds: replacement.Bonds,
	}

	// RMSD between the transformed replacement's u2r atoms and the
	// parent subset's u2p atoms (§4.4 step 8).
	var alignedA, alignedB [][3]float64
	for _, qi := range qiOrder {
		rIdx := u2r[qi]
		alignedA = append(alignedA, [3]float64{finalCart.At(rIdx, 0), finalCart.At(rIdx, 1), finalCart.At(rIdx, 2)})
		pIdx := u2p[qi]
		sub := posInSub[pIdx]
		alignedB = append(alignedB, [3]float64{parentSubCart.At(sub, 0), parentSubCart.At(sub, 1), parentSubCart.At(sub, 2)})
	}
	rmsd, err := geom.RMSD(rowsToDense(alignedA), rowsToDense(alignedB))
	if err != nil {
		return nil, err
	}

	return &match{isoMap: indexMapFromSlice(isoMap), u2p: u2p, u2r: u2r, xrm: xrm, rmsd: rmsd}, nil
}

func rowsToDense(rows [][3]float64) *mat.Dense {
	m := mat.NewDense(len(rows), 3, nil)
	for i, r := range rows {
		m.SetRow(i, r[:])
	}
	return m
}

func indexMapFromSlice(s []int) map[int]int {
	m := make(map[int]int, len(s))
	for i, v := range s {
		m[i] = v
	}
	return m
}

// bestMatch resolves one config into the single match to apply: if the
// config's orientation is fixed, it still tries every u2r candidate and
// keeps the lowest RMSD; if the orientation is "optimal" (0), it tries
// every orientation at the location too, per §4.4 step 8's "keep the
// minimum across candidate orientations ... or across multiple candidate
// u2r maps when several exist."
func bestMatch(search *iso.Search, replacement *xtal.Crystal, cfg config, unmaskedIdx []int, candidates [][]int) (*match, error) {
	loc := search.Locations[cfg.Loc]
	var orientations [][]int
	var oriIdxs []int
	if cfg.Ori == optimalOri {
		orientations = loc.Orientations
		oriIdxs = make([]int, len(loc.Orientations))
		for i := range oriIdxs {
			oriIdxs[i] = i
		}
	} else {
		orientations = [][]int{loc.Orientations[cfg.Ori]}
		oriIdxs = []int{cfg.Ori}
	}

	if len(candidates) == 0 {
		// null replacement: deterministic, no geometry to compare.
		isoMap := orientations[0]
		return &match{isoMap: indexMapFromSlice(isoMap), xrm: nil, oriIdx: oriIdxs[0]}, nil
	}

	var best *match
	for oi, isoMap := range orientations {
		for _, c := range candidates {
			m, err := alignOne(search.Query, search.Parent, replacement, isoMap, unmaskedIdx, c)
			if err != nil {
				return nil, err
			}
			m.oriIdx = oriIdxs[oi]
			if best == nil || m.rmsd < best.rmsd {
				best = m
			}
		}
	}
	return best, nil
}

// sortedUnion returns the sorted union of vertex indices across a list of
// per-match deletion maps (the §4.4 step 5 "deduplicate the deletion
// set") — callers pass the full isoMap for a null match or just u2p
// (unmasked-only) for a match with an inserted fragment, so masked-mapped
// parent atoms that were kept rather than deleted never enter the union.
// A treeset keeps the union sorted as it's built, the same "ordered set by
// comparator" idiom iso.Search uses a redblacktree for.
func sortedUnion(isoMaps []map[int]int) []int {
	set := treeset.NewWith(utils.IntComparator)
	for _, m := range isoMaps {
		for _, p := range m {
			set.Add(p)
		}
	}
	out := make([]int, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(int))
	}
	return out
}
