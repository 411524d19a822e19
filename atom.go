/*
 * atom.go, part of xtalgraph.
 *
 * Grounded on gochem's chem.go Atom/Topology split: "Atom contains the
 * atoms read except for the coordinates, which will be in a matrix."
 * xtalgraph keeps the same split — Atom carries only species and the
 * R-group mask bit, fractional coordinates live in AtomSet.Frac as an
 * Nx3 gonum matrix — but drops every other gochem Atom field (Name, Id,
 * Molname, Occupancy, Vdw, Charge, Het, ...) that belongs to PDB/force-field
 * bookkeeping this spec doesn't need.
 *
 * §9's "mask-tag encoding" design note resolves the sentinel-character
 * open question explicitly in favor of the cleaner design it describes: a
 * separate per-atom boolean instead of a character appended to the species
 * symbol. The sentinel character stays confined to the (out-of-scope)
 * moiety loader.
 */
package xtal

import "gonum.org/v1/gonum/mat"

// Atom is one vertex of a crystal's bond graph: a species symbol and
// whether it is tagged as an R-group / mask atom (§3, §9).
type Atom struct {
	Species string
	Masked  bool
}

// SameSpecies reports whether two atoms have the same species symbol.
// Per §3's invariant, species comparison is tag-insensitive — the mask
// bit plays no part in it now that it isn't encoded into the symbol.
func SameSpecies(a, b Atom) bool { return a.Species == b.Species }

// AtomSet is the ordered sequence of atoms §3 describes: atom i has
// species Atoms[i].Species and fractional coordinates row i of Frac.
// Order is stable and defines vertex identity in the bond graph (vertex
// i+1 of a graphkit.Graph corresponds to AtomSet index i).
type AtomSet struct {
	Atoms []Atom
	Frac  *mat.Dense // Len() x 3
}

// NewAtomSet builds an AtomSet from parallel atoms and fractional
// coordinates. Panics if their lengths disagree — a mismatch here is a
// programming error in the caller, the same stance gochem's Topology
// methods take on out-of-bounds access.
func NewAtomSet(atoms []Atom, frac *mat.Dense) *AtomSet {
	r, c := frac.Dims()
	if r != len(atoms) || c != 3 {
		panic("xtal: AtomSet atoms/coordinates length mismatch")
	}
	return &AtomSet{Atoms: atoms, Frac: frac}
}

// Len returns the number of atoms.
func (s *AtomSet) Len() int { return len(s.Atoms) }

// FracRow returns the fractional coordinates of atom i.
func (s *AtomSet) FracRow(i int) [3]float64 {
	return [3]float64{s.Frac.At(i, 0), s.Frac.At(i, 1), s.Frac.At(i, 2)}
}

// SetFracRow sets the fractional coordinates of atom i.
func (s *AtomSet) SetFracRow(i int, xf [3]float64) {
	s.Frac.Set(i, 0, xf[0])
	s.Frac.Set(i, 1, xf[1])
	s.Frac.Set(i, 2, xf[2])
}

// Slice returns a new AtomSet containing exactly the atoms at idx (0-based
// into s), in the order given, relabeled 0..len(idx)-1. This is the
// "slicing by index set" invariant §3 requires of crystals, applied to the
// atom layer (graphkit.Graph.Induced is its bond-graph counterpart).
func (s *AtomSet) Slice(idx []int) *AtomSet {
	n := len(idx)
	atoms := make([]Atom, n)
	frac := mat.NewDense(n, 3, nil)
	for i, j := range idx {
		atoms[i] = s.Atoms[j]
		frac.SetRow(i, []float64{s.Frac.At(j, 0), s.Frac.At(j, 1), s.Frac.At(j, 2)})
	}
	return &AtomSet{Atoms: atoms, Frac: frac}
}

// Concat returns a new AtomSet with o's atoms appended after s's.
func (s *AtomSet) Concat(o *AtomSet) *AtomSet {
	n, m := s.Len(), o.Len()
	atoms := make([]Atom, n+m)
	copy(atoms, s.Atoms)
	copy(atoms[n:], o.Atoms)
	frac := mat.NewDense(n+m, 3, nil)
	for i := 0; i < n; i++ {
		frac.SetRow(i, []float64{s.Frac.At(i, 0), s.Frac.At(i, 1), s.Frac.At(i, 2)})
	}
	for i := 0; i < m; i++ {
		frac.SetRow(n+i, []float64{o.Frac.At(i, 0), o.Frac.At(i, 1), o.Frac.At(i, 2)})
	}
	return &AtomSet{Atoms: atoms, Frac: frac}
}

// Copy returns a deep copy, the defensive copy §5's "shared resources"
// clause requires before the engine mutates tags or coordinates on a
// caller-owned query or replacement.
func (s *AtomSet) Copy() *AtomSet {
	atoms := make([]Atom, len(s.Atoms))
	copy(atoms, s.Atoms)
	frac := mat.DenseCopyOf(s.Frac)
	return &AtomSet{Atoms: atoms, Frac: frac}
}
