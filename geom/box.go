/*
 * box.go, part of xtalgraph.
 *
 * geom is the periodic-geometry layer §4.2 describes: fractional<->Cartesian
 * conversion via box matrices, nearest-image displacement, and wrap-to-cell.
 * gochem itself never models a periodic box (it's a molecular, not
 * crystallographic, library) so there's no direct file to adapt here; the
 * linear-algebra idiom (row-vector point clouds backed by
 * gonum.org/v1/gonum/mat, the same library gochem migrated to in
 * v3/init_goblas.go) is carried over from geometric.go and v3/gocoords.go.
 */
package geom

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Box holds a 3x3 fractional-to-Cartesian matrix and its inverse, per §3:
// "A 3x3 matrix f_to_c and its inverse; defines the unit cell."
type Box struct {
	FToC *mat.Dense
	CToF *mat.Dense
}

// NewBox builds a Box from the 9 entries of f_to_c, row-major, and computes
// its inverse. Points are treated as row vectors throughout this package
// (xc = xf * FToC), matching gochem's own VecMatrix convention rather than
// the spec prose's column-vector phrasing — documented here once instead of
// at every call site.
func NewBox(fToC [9]float64) (*Box, error) {
	m := mat.NewDense(3, 3, fToC[:])
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return nil, fmt.Errorf("geom: box matrix is singular: %w", err)
	}
	return &Box{FToC: m, CToF: &inv}, nil
}

// FracToCart converts one fractional row vector to Cartesian.
func (b *Box) FracToCart(xf [3]float64) [3]float64 {
	var v mat.VecDense
	v.MulVec(b.FToC.T(), mat.NewVecDense(3, xf[:]))
	return [3]float64{v.AtVec(0), v.AtVec(1), v.AtVec(2)}
}

// CartToFrac converts one Cartesian row vector to fractional.
func (b *Box) CartToFrac(xc [3]float64) [3]float64 {
	var v mat.VecDense
	v.MulVec(b.CToF.T(), mat.NewVecDense(3, xc[:]))
	return [3]float64{v.AtVec(0), v.AtVec(1), v.AtVec(2)}
}

// FracToCartMany converts an Nx3 matrix of fractional row vectors to
// Cartesian in one shot.
func (b *Box) FracToCartMany(xf *mat.Dense) *mat.Dense {
	r, _ := xf.Dims()
	out := mat.NewDense(r, 3, nil)
	out.Mul(xf, b.FToC)
	return out
}

// CartToFracMany converts an Nx3 matrix of Cartesian row vectors to
// fractional in one shot.
func (b *Box) CartToFracMany(xc *mat.Dense) *mat.Dense {
	r, _ := xc.Dims()
	out := mat.NewDense(r, 3, nil)
	out.Mul(xc, b.CToF)
	return out
}
