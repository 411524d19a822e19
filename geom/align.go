/*
 * align.go, part of xtalgraph.
 *
 * Orthogonal Procrustes rotation fit, per §4.3. Grounded on gochem's
 * geometric.go (RotatorTranslatorToSuper, RMSD), which centers both point
 * clouds, takes the SVD of their correlation matrix and composes the
 * rotation from U and V. Two deliberate departures from that gochem code,
 * both required by §4.3 and §9's "Open questions":
 *
 *   - gochem flips the sign of U and Vt before composing R ("SVD gives
 *     different results here than in numpy", a quirk of the legacy
 *     go.matrix SVD it wrapped). gonum's mat.SVD doesn't have that quirk,
 *     so composing R = U * Vᵀ (row-vector form) directly is correct here.
 *   - gochem errors out when det(R) < 0 ("got a reflection instead of a
 *     rotation"). §4.3 explicitly says the source this spec distills does
 *     not guard against improper rotations, and §9 leaves that as an open
 *     question resolved toward "implementers need not detect chirality
 *     inversion" — so this Procrustes never rejects a reflection.
 */
package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Centroid returns the mean row of an Nx3 matrix.
func Centroid(m *mat.Dense) [3]float64 {
	r, _ := m.Dims()
	var c [3]float64
	for j := 0; j < 3; j++ {
		col := mat.Col(nil, j, m)
		c[j] = floats.Sum(col) / float64(r)
	}
	return c
}

// Center subtracts c from every row of m, returning a new matrix.
func Center(m *mat.Dense, c [3]float64) *mat.Dense {
	r, _ := m.Dims()
	out := mat.NewDense(r, 3, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, m.At(i, j)-c[j])
		}
	}
	return out
}

// Procrustes computes the 3x3 rotation R minimizing ||A*R - B||_F for two
// correlated, already-centered Nx3 point clouds A (replacement subset) and
// B (parent subset). R = U*Vᵀ where U,Σ,Vᵀ = SVD(Aᵀ*B): the row-vector
// form of the orthogonal Procrustes solution, i.e. the transpose of the
// column-vector form V*Uᵀ.
//
// Degenerate inputs (fewer than 3 non-colinear points, i.e. A has fewer
// than 3 rows) still produce a deterministic, well-defined R via the SVD;
// the caller is responsible for surfacing a DegenerateAlignment warning
// per §7, this function does not refuse to run.
func Procrustes(A, B *mat.Dense) (*mat.Dense, error) {
	ra, ca := A.Dims()
	rb, cb := B.Dims()
	if ca != 3 || cb != 3 || ra != rb {
		return nil, fmt.Errorf("geom: Procrustes needs two equally-sized Nx3 matrices, got %dx%d and %dx%d", ra, ca, rb, cb)
	}
	var corr mat.Dense
	corr.Mul(A.T(), B) // 3x3

	var svd mat.SVD
	ok := svd.Factorize(&corr, mat.SVDFull)
	if !ok {
		return nil, fmt.Errorf("geom: SVD factorization failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var r mat.Dense
	r.Mul(&u, v.T())
	return &r, nil
}

// RMSD returns the root-mean-square deviation between two correlated Nx3
// point clouds, per §4.3/§4.4 step 8. Grounded on gochem's geometric.go
// RMSD function (sum of squared row norms, divided by N, square-rooted).
func RMSD(a, b *mat.Dense) (float64, error) {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb || ca != 3 || cb != 3 {
		return 0, fmt.Errorf("geom: RMSD needs two equally-sized Nx3 matrices")
	}
	var diff mat.Dense
	diff.Sub(a, b)
	var sum float64
	for i := 0; i < ra; i++ {
		row := mat.Row(nil, i, &diff)
		sum += floats.Dot(row, row)
	}
	return math.Sqrt(sum / float64(ra)), nil
}
