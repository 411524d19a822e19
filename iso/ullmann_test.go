package iso

import (
	"reflect"
	"testing"

	xtal "github.com/rmera/xtalgraph"
	"github.com/rmera/xtalgraph/geom"
	"github.com/rmera/xtalgraph/graphkit"
	"gonum.org/v1/gonum/mat"
)

// ring builds an n-membered cycle of atoms with the given species, on a box
// large enough that coordinates never matter to these topology-only tests.
func ring(t *testing.T, n int, species string) *xtal.Crystal {
	box, err := geom.NewBox([9]float64{20, 0, 0, 0, 20, 0, 0, 0, 20})
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	atoms := make([]xtal.Atom, n)
	frac := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		atoms[i] = xtal.Atom{Species: species}
		frac.Set(i, 0, float64(i)*0.01)
	}
	bonds := graphkit.New(n)
	for i := 0; i < n; i++ {
		bonds.SetLabel(i+1, species)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if n == 2 && j < i {
			break // a 2-cycle degenerates into one duplicate edge; keep a single edge instead.
		}
		bonds.AddEdge(i+1, j+1)
	}
	c, err := xtal.NewCrystal("ring", box, xtal.NewAtomSet(atoms, frac), bonds)
	if err != nil {
		t.Fatalf("NewCrystal: %v", err)
	}
	return c
}

func TestFindSubgraphIsomorphismsRingAutomorphisms(t *testing.T) {
	parent := ring(t, 6, "C")
	query := ring(t, 6, "C")
	isos := FindSubgraphIsomorphisms(query, parent, false)
	if len(isos) != 12 {
		t.Fatalf("found %d isomorphisms, want 12 (the order of C6's automorphism group)", len(isos))
	}
	for _, m := range isos {
		for i := 0; i < 6; i++ {
			j := (i + 1) % 6
			if !parent.Bonds.HasEdge(m[i]+1, m[j]+1) {
				t.Errorf("isomorphism %v does not preserve edge (%d,%d)", m, i, j)
			}
		}
	}
}

func TestFindSubgraphIsomorphismsEdgeIntoRing(t *testing.T) {
	parent := ring(t, 6, "C")
	query := ring(t, 2, "C") // a 2-cycle is degenerate; use it only for its one edge below.
	query.Bonds = graphkit.New(2)
	query.Bonds.SetLabel(1, "C")
	query.Bonds.SetLabel(2, "C")
	query.Bonds.AddEdge(1, 2)

	isos := FindSubgraphIsomorphisms(query, parent, false)
	if len(isos) != 12 {
		t.Fatalf("found %d isomorphisms, want 12 (6 edges x 2 directions)", len(isos))
	}
}

func TestFindSubgraphIsomorphismsNullOnSpeciesMismatch(t *testing.T) {
	parent := ring(t, 6, "C")
	query := ring(t, 2, "N")
	query.Bonds = graphkit.New(2)
	query.Bonds.SetLabel(1, "N")
	query.Bonds.SetLabel(2, "N")
	query.Bonds.AddEdge(1, 2)

	if isos := FindSubgraphIsomorphisms(query, parent, false); len(isos) != 0 {
		t.Errorf("found %d isomorphisms, want 0 (species absent from parent)", len(isos))
	}
}

func TestFindSubgraphIsomorphismsNullWhenQueryLarger(t *testing.T) {
	parent := ring(t, 3, "C")
	query := ring(t, 6, "C")
	if isos := FindSubgraphIsomorphisms(query, parent, false); len(isos) != 0 {
		t.Errorf("found %d isomorphisms, want 0 (query larger than parent)", len(isos))
	}
}

func TestFindSubgraphIsomorphismsDeterministic(t *testing.T) {
	parent := ring(t, 6, "C")
	query := ring(t, 6, "C")
	first := FindSubgraphIsomorphisms(query, parent, false)
	second := FindSubgraphIsomorphisms(query, parent, false)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs on the same input produced different orders:\n%v\n%v", first, second)
	}
}

func TestFindSubgraphIsomorphismsExactModeRejectsSizeMismatch(t *testing.T) {
	parent := ring(t, 6, "C")
	query := ring(t, 4, "C")
	if isos := FindSubgraphIsomorphisms(query, parent, true); len(isos) != 0 {
		t.Errorf("exact mode with nq!=np found %d isomorphisms, want 0", len(isos))
	}
}
