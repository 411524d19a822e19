/*
 * crystal.go, part of xtalgraph.
 *
 * Crystal is the tuple §3 defines: (name, box, atom set, bond graph,
 * optional charges). Grounded on gochem's Molecule/Topology pairing in
 * chem.go, generalized from an aperiodic molecule to a periodic one by
 * adding the geom.Box and by recomputing per-bond distance/cross_boundary
 * properties (§4.4 step 6) instead of gochem's single scalar Bond.Dist.
 */
package xtal

import (
	"fmt"

	"github.com/rmera/xtalgraph/geom"
	"github.com/rmera/xtalgraph/graphkit"
)

// Crystal is an immutable-by-convention tuple of name, unit cell, atoms,
// bond graph and optional per-atom charges. Bond graph vertex i+1
// corresponds to Atoms index i, matching the 1-based vertex numbering
// graphkit.Graph uses for gonum/graph node IDs.
type Crystal struct {
	Name    string
	Box     *geom.Box
	Atoms   *AtomSet
	Bonds   *graphkit.Graph
	Charges []float64 // nil, or len == Atoms.Len()
}

// NewCrystal validates the shapes §3 requires (atom indices contiguous
// 1..N, bonds only between existing atoms) and returns a Crystal.
func NewCrystal(name string, box *geom.Box, atoms *AtomSet, bonds *graphkit.Graph) (*Crystal, error) {
	if bonds.Len() != atoms.Len() {
		return nil, newError(KindGeometricPrecondition, fmt.Sprintf("NewCrystal: %d atoms but bond graph has %d vertices", atoms.Len(), bonds.Len()))
	}
	return &Crystal{Name: name, Box: box, Atoms: atoms, Bonds: bonds}, nil
}

// Len returns the number of atoms.
func (c *Crystal) Len() int { return c.Atoms.Len() }

// Species returns the species symbol of atom i (0-based).
func (c *Crystal) Species(i int) string { return c.Atoms.Atoms[i].Species }

// Masked reports whether atom i (0-based) is tagged as an R-group atom.
func (c *Crystal) Masked(i int) bool { return c.Atoms.Atoms[i].Masked }

// vertex converts a 0-based atom index to its 1-based graphkit vertex ID.
func vertex(i int) int { return i + 1 }

// atomIndex converts a 1-based graphkit vertex ID back to a 0-based atom
// index.
func atomIndex(v int) int { return v - 1 }

// Slice returns a new Crystal containing exactly the atoms at idx (0-based
// into c), in the given order, with the bond graph induced and relabeled
// to match — the "slicing by index set yields a relabeled crystal with the
// same topology restricted to the selected indices" invariant of §3.
func (c *Crystal) Slice(idx []int) *Crystal {
	vs := make([]int, len(idx))
	for i, j := range idx {
		vs[i] = vertex(j)
	}
	var charges []float64
	if c.Charges != nil {
		charges = make([]float64, len(idx))
		for i, j := range idx {
			charges[i] = c.Charges[j]
		}
	}
	return &Crystal{
		Name:    c.Name,
		Box:     c.Box,
		Atoms:   c.Atoms.Slice(idx),
		Bonds:   c.Bonds.Induced(vs),
		Charges: charges,
	}
}

// Concat returns a new Crystal with o's atoms and bonds appended after
// c's. The two bond graphs are kept disjoint; callers add cross-fragment
// bonds afterward (this is exactly what the replacement engine's global
// assembly step, §4.4 step 2-4, does).
func (c *Crystal) Concat(o *Crystal) *Crystal {
	var charges []float64
	if c.Charges != nil || o.Charges != nil {
		charges = make([]float64, c.Len()+o.Len())
		if c.Charges != nil {
			copy(charges, c.Charges)
		}
		if o.Charges != nil {
			copy(charges[c.Len():], o.Charges)
		}
	}
	return &Crystal{
		Name:    c.Name,
		Box:     c.Box,
		Atoms:   c.Atoms.Concat(o.Atoms),
		Bonds:   c.Bonds.Concat(o.Bonds),
		Charges: charges,
	}
}

// AddBond adds a bond between 0-based atom indices i and j, and records
// its distance/cross_boundary properties per §4.4 step 6 and testable
// property 10.
func (c *Crystal) AddBond(i, j int) error {
	u, v := vertex(i), vertex(j)
	if c.Bonds.HasEdge(u, v) {
		return nil
	}
	c.Bonds.AddEdge(u, v)
	return c.recomputeBond(i, j)
}

func (c *Crystal) recomputeBond(i, j int) error {
	u, v := vertex(i), vertex(j)
	a, b := c.Atoms.FracRow(i), c.Atoms.FracRow(j)
	pbcDist, err := geom.Distance(c.Box, a, b, true)
	if err != nil {
		return newError(KindGeometricPrecondition, err.Error())
	}
	inCellDist, err := geom.Distance(c.Box, a, b, false)
	if err != nil {
		return newError(KindGeometricPrecondition, err.Error())
	}
	c.Bonds.SetProperty(u, v, "distance", pbcDist)
	c.Bonds.SetFlag(u, v, "cross_boundary", inCellDist != pbcDist)
	return nil
}

// RecomputeBondProperties refreshes distance/cross_boundary on every bond,
// e.g. after atoms have moved (replacement, wrap). Errors on a malformed
// displacement propagate as *Error with KindGeometricPrecondition.
func (c *Crystal) RecomputeBondProperties() error {
	for _, e := range c.Bonds.Edges() {
		if err := c.recomputeBond(atomIndex(e[0]), atomIndex(e[1])); err != nil {
			return err
		}
	}
	return nil
}

// Wrap returns a new Crystal with every fractional coordinate mapped into
// [0,1), per §4.2. Applying Wrap twice equals applying it once (property 9).
func (c *Crystal) Wrap() *Crystal {
	out := &Crystal{
		Name:    c.Name,
		Box:     c.Box,
		Bonds:   c.Bonds,
		Charges: c.Charges,
	}
	out.Atoms = &AtomSet{Atoms: c.Atoms.Atoms, Frac: geom.Wrap(c.Atoms.Frac)}
	return out
}

// Copy returns a deep copy of the crystal, including its bond graph and
// coordinates — the defensive copy §5 requires before a query or
// replacement moiety is mutated (tagging, re-centering) by the engine.
func (c *Crystal) Copy() *Crystal {
	idx := make([]int, c.Len())
	for i := range idx {
		idx[i] = i
	}
	return c.Slice(idx)
}
