/*
 * assemble.go, part of xtalgraph.
 *
 * Global assembly, §4.4's final stage: append every match's transformed
 * replacement (minus its masked attachment atoms, which are never
 * inserted — see engine.go's maskedToReplacement), wire external bonds at
 * the attachment points and internal bonds inside each fragment, delete
 * the union of every consumed *unmasked* iso image, wrap, and recompute
 * bond geometry. Grounded the same way engine.go is — on Crystal's own
 * Concat/Slice/AddBond/Wrap primitives (crystal.go), themselves grounded
 * on gochem's chem.go — since gochem has nothing resembling fragment
 * substitution to imitate directly.
 */
package replace

import (
	xtal "github.com/rmera/xtalgraph"
)

// assemble performs §4.4's global assembly over every resolved match and
// returns the finished crystal, named per the scheme. maskR is the static
// masked-query-index -> masked-replacement-index correspondence computed
// once per (query, replacement) pair by engine.go's maskedToReplacement.
func assemble(parent, query *xtal.Crystal, matches []*match, maskR map[int]int, name string) (*xtal.Crystal, error) {
	base := parent.Copy()

	// Pass 1: concatenate the unmasked atoms of every non-null fragment —
	// the Glossary's masked replacement atoms are attachment references,
	// not inserted atoms; their role is played by the parent atom already
	// kept at the corresponding masked query position, wired in pass 2.
	// fragIdx[k] translates a replacement-local atom index into its
	// assembled-crystal index, for the atoms this match actually inserted.
	fragIdx := make([]map[int]int, len(matches))
	offset := base.Len()
	for k, m := range matches {
		if m.xrm == nil {
			continue
		}
		var unmaskedRep []int
		for ri := 0; ri < m.xrm.Len(); ri++ {
			if !m.xrm.Masked(ri) {
				unmaskedRep = append(unmaskedRep, ri)
			}
		}
		frag := m.xrm.Slice(unmaskedRep)
		idx := make(map[int]int, len(unmaskedRep))
		for pos, ri := range unmaskedRep {
			idx[ri] = offset + pos
		}
		fragIdx[k] = idx
		offset += frag.Len()
		base = base.Concat(frag)
	}

	// Pass 2: bonds. Internal fragment bonds use the fragment's own bond
	// graph (§4.4 step 4, already restricted to unmasked atoms by pass 1's
	// Slice). External bonds come in two flavors:
	//   - unmasked query atoms: reconnect each parent-side neighbor outside
	//     the iso image to the replacement atom its query atom maps to,
	//     when u2r covers that query index (§4.4 step 3's attachment rule).
	//   - masked query atoms: the matched parent atom is kept rather than
	//     deleted (pass 3) and is bonded directly to the unmasked
	//     replacement neighbors of its masked counterpart, standing in for
	//     the masked replacement atom that was never inserted.
	var bonds [][2]int
	for k, m := range matches {
		if m.xrm == nil {
			continue
		}
		idx := fragIdx[k]
		for _, e := range m.xrm.Bonds.Edges() {
			ai, aok := idx[e[0]-1]
			bi, bok := idx[e[1]-1]
			if aok && bok {
				bonds = append(bonds, [2]int{ai, bi})
			}
		}

		fullIso := make(map[int]bool, len(m.isoMap)) // every matched parent atom, masked or not
		for _, p := range m.isoMap {
			fullIso[p] = true
		}
		rev := make(map[int]int, len(m.u2p)) // parent idx -> query idx, unmasked only
		for qi, p := range m.u2p {
			rev[p] = qi
		}
		for p, qi := range rev {
			for _, v := range parent.Bonds.Neighbors(p + 1) {
				n := v - 1
				if fullIso[n] {
					continue
				}
				ri, ok := m.u2r[qi]
				if !ok {
					continue
				}
				ai, ok := idx[ri]
				if !ok {
					continue
				}
				bonds = append(bonds, [2]int{n, ai})
			}
		}

		for qi, p := range m.isoMap {
			if !query.Masked(qi) {
				continue
			}
			mri, ok := maskR[qi]
			if !ok {
				continue
			}
			for _, v := range m.xrm.Bonds.Neighbors(mri + 1) {
				rj := v - 1
				if m.xrm.Masked(rj) {
					continue
				}
				ai, ok := idx[rj]
				if !ok {
					continue
				}
				bonds = append(bonds, [2]int{p, ai})
			}
		}
	}
	for _, b := range bonds {
		if err := base.AddBond(b[0], b[1]); err != nil {
			return nil, err
		}
	}

	// Pass 3: delete the consumed iso images (§4.4 step 5). A null match
	// (no fragment inserted) drops its whole iso image, masked atoms
	// included — there's nothing left for a masked atom to attach to. A
	// non-null match keeps its masked-mapped parent atoms; they were wired
	// to the inserted fragment above instead of being deleted.
	isoMaps := make([]map[int]int, 0, len(matches))
	for _, m := range matches {
		if m.xrm == nil {
			isoMaps = append(isoMaps, m.isoMap)
		} else {
			isoMaps = append(isoMaps, m.u2p)
		}
	}
	deleted := make(map[int]bool)
	for _, p := range sortedUnion(isoMaps) {
		deleted[p] = true
	}
	keep := make([]int, 0, base.Len())
	for i := 0; i < parent.Len(); i++ {
		if !deleted[i] {
			keep = append(keep, i)
		}
	}
	for i := parent.Len(); i < base.Len(); i++ {
		keep = append(keep, i)
	}

	result := base.Slice(keep)
	result.Name = name

	// §4.4 step 5 wraps before step 6 derives distance/cross_boundary — a
	// match is aligned onto the PBC-adjusted (spatially contiguous) parent
	// subset, so every fragment bond looks in-cell until wrapping can
	// actually carry an atom across a cell face.
	wrapped := result.Wrap()
	if err := wrapped.RecomputeBondProperties(); err != nil {
		return nil, err
	}
	return wrapped, nil
}
