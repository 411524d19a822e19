package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrGeometricPrecondition is returned by NearestImage when a fractional
// displacement has |d| >= 2 on some axis, per §4.2's precondition
// and §7's GeometricPrecondition error kind: malformed input coordinates,
// fatal to the call that triggered it.
type ErrGeometricPrecondition struct {
	Axis  int
	Delta float64
}

func (e *ErrGeometricPrecondition) Error() string {
	return fmt.Sprintf("geom: fractional displacement %.6g on axis %d not in (-2,2)", e.Delta, e.Axis)
}

// NearestImage applies the nearest-image correction to a fractional
// displacement d: for each axis, subtract round(d_axis). Preconditions
// |d_axis| < 2 on every axis; violating that returns
// *ErrGeometricPrecondition rather than silently producing a wrong image.
func NearestImage(d [3]float64) ([3]float64, error) {
	var out [3]float64
	for i, di := range d {
		if di <= -2 || di >= 2 {
			return out, &ErrGeometricPrecondition{Axis: i, Delta: di}
		}
		out[i] = di - math.Round(di)
	}
	return out, nil
}

// AdjustForPBC re-expresses every row of frac (an Nx3 matrix of fractional
// coordinates) relative to row 0, nearest-image-corrected, then re-adds row
// 0 back in. This produces a locally contiguous point cloud even when the
// underlying atom set straddles cell boundaries, per §4.2, which is the
// precondition Procrustes alignment on such a set needs (if every atom
// were just wrapped independently into [0,1) the cloud could be shattered
// across the cell).
func AdjustForPBC(frac *mat.Dense) (*mat.Dense, error) {
	r, c := frac.Dims()
	if c != 3 {
		return nil, fmt.Errorf("geom: AdjustForPBC expects an Nx3 matrix, got Nx%d", c)
	}
	out := mat.NewDense(r, 3, nil)
	var anchor [3]float64
	for j := 0; j < 3; j++ {
		anchor[j] = frac.At(0, j)
	}
	out.SetRow(0, anchor[:])
	for i := 1; i < r; i++ {
		var d [3]float64
		for j := 0; j < 3; j++ {
			d[j] = frac.At(i, j) - anchor[j]
		}
		img, err := NearestImage(d)
		if err != nil {
			return nil, err
		}
		row := [3]float64{img[0] + anchor[0], img[1] + anchor[1], img[2] + anchor[2]}
		out.SetRow(i, row[:])
	}
	return out, nil
}

// Distance returns the Euclidean distance between fractional points a and
// b. When pbc is true the fractional displacement is nearest-image
// corrected first, giving the periodic distance §3 calls "distance"; when
// false it's the plain in-cell distance used to decide the
// "cross_boundary" flag (testable property 10: cross_boundary is true iff
// these two differ).
func Distance(b *Box, a, bb [3]float64, pbc bool) (float64, error) {
	d := [3]float64{bb[0] - a[0], bb[1] - a[1], bb[2] - a[2]}
	if pbc {
		var err error
		d, err = NearestImage(d)
		if err != nil {
			return 0, err
		}
	}
	c := b.FracToCart(d)
	return math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2]), nil
}

// Wrap maps every fractional coordinate in frac to its representative in
// [0,1). Applying Wrap twice equals applying it once (testable property 9):
// an already-wrapped value x in [0,1) has x-floor(x)==x.
func Wrap(frac *mat.Dense) *mat.Dense {
	r, c := frac.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, _ int, v float64) float64 {
		w := math.Mod(v, 1)
		if w < 0 {
			w += 1
		}
		return w
	}, frac)
	return out
}
