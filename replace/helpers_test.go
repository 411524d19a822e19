package replace

import (
	"testing"

	xtal "github.com/rmera/xtalgraph"
	"github.com/rmera/xtalgraph/geom"
	"github.com/rmera/xtalgraph/graphkit"
	"gonum.org/v1/gonum/mat"
)

func testBox(t *testing.T) *geom.Box {
	b, err := geom.NewBox([9]float64{20, 0, 0, 0, 20, 0, 0, 0, 20})
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	return b
}

// triangleCrystal builds a fully-bonded 3-atom moiety (a triangle, so it has
// its own non-trivial 3D shape for Procrustes to align against) of the given
// species, offset in fractional space by off.
func triangleCrystal(t *testing.T, box *geom.Box, species string, off [3]float64, masked []bool) *xtal.Crystal {
	cart := [][3]float64{{0, 0, 0}, {1.5, 0, 0}, {0, 1.5, 0}}
	atoms := make([]xtal.Atom, 3)
	frac := mat.NewDense(3, 3, nil)
	for i, c := range cart {
		xf := box.CartToFrac(c)
		frac.SetRow(i, []float64{xf[0] + off[0], xf[1] + off[1], xf[2] + off[2]})
		m := false
		if masked != nil {
			m = masked[i]
		}
		atoms[i] = xtal.Atom{Species: species, Masked: m}
	}
	bonds := graphkit.New(3)
	bonds.SetLabel(1, species)
	bonds.SetLabel(2, species)
	bonds.SetLabel(3, species)
	bonds.AddEdge(1, 2)
	bonds.AddEdge(2, 3)
	bonds.AddEdge(1, 3)
	c, err := xtal.NewCrystal("triangle", box, xtal.NewAtomSet(atoms, frac), bonds)
	if err != nil {
		t.Fatalf("NewCrystal: %v", err)
	}
	return c
}

// pairCrystal builds a two-atom bonded moiety at the given fractional
// positions, one species/mask flag per atom.
func pairCrystal(t *testing.T, box *geom.Box, speciesA, speciesB string, fracA, fracB [3]float64, maskedA, maskedB bool) *xtal.Crystal {
	atoms := []xtal.Atom{
		{Species: speciesA, Masked: maskedA},
		{Species: speciesB, Masked: maskedB},
	}
	frac := mat.NewDense(2, 3, nil)
	frac.SetRow(0, fracA[:])
	frac.SetRow(1, fracB[:])
	bonds := graphkit.New(2)
	bonds.SetLabel(1, speciesA)
	bonds.SetLabel(2, speciesB)
	bonds.AddEdge(1, 2)
	c, err := xtal.NewCrystal("pair", box, xtal.NewAtomSet(atoms, frac), bonds)
	if err != nil {
		t.Fatalf("NewCrystal: %v", err)
	}
	return c
}

// starCrystal builds a center atom bonded to n leaves, all leaves sharing
// a species — the methyl-like shape §4.4's masked-attachment scenarios use
// (a masked center standing in for the replacement's attachment atom).
func starCrystal(t *testing.T, box *geom.Box, centerSpecies string, centerMasked bool, leafSpecies string, n int) *xtal.Crystal {
	atoms := make([]xtal.Atom, n+1)
	atoms[0] = xtal.Atom{Species: centerSpecies, Masked: centerMasked}
	frac := mat.NewDense(n+1, 3, nil)
	bonds := graphkit.New(n + 1)
	bonds.SetLabel(1, centerSpecies)
	for i := 0; i < n; i++ {
		atoms[i+1] = xtal.Atom{Species: leafSpecies}
		frac.Set(i+1, 0, 0.01*float64(i+1))
		bonds.SetLabel(i+2, leafSpecies)
		bonds.AddEdge(1, i+2)
	}
	c, err := xtal.NewCrystal("star", box, xtal.NewAtomSet(atoms, frac), bonds)
	if err != nil {
		t.Fatalf("NewCrystal: %v", err)
	}
	return c
}

// singleAtomCrystal builds a lone, unbonded atom, used to keep a test
// crystal non-empty after a deletion-only replacement consumes everything
// else in it.
func singleAtomCrystal(t *testing.T, box *geom.Box, species string, off [3]float64) *xtal.Crystal {
	atoms := []xtal.Atom{{Species: species}}
	frac := mat.NewDense(1, 3, off[:])
	bonds := graphkit.New(1)
	bonds.SetLabel(1, species)
	c, err := xtal.NewCrystal("lone", box, xtal.NewAtomSet(atoms, frac), bonds)
	if err != nil {
		t.Fatalf("NewCrystal: %v", err)
	}
	return c
}
