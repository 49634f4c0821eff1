package scene

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularProjection is returned by Unproject when the camera's
// projection matrix cannot be inverted.
var ErrSingularProjection = errors.New("scene: projection matrix is singular")

// Camera holds the projection used for AR content. The projection is
// frozen at construction time to the tracking controller's calibrated
// camera matrix and is never recomputed per frame; recomputing it would
// break registration between the video background and the overlay.
type Camera struct {
	projection Mat4

	// inverse is computed lazily on the first Unproject call and
	// cached, which is safe because the projection never changes.
	inverse    Mat4
	inverseOK  bool
	inverseErr error
}

// NewCamera creates a camera with the given frozen projection matrix.
func NewCamera(projection Mat4) *Camera {
	return &Camera{projection: projection}
}

// Projection returns the frozen projection matrix.
func (c *Camera) Projection() Mat4 { return c.projection }

// Ray is a world-space ray produced by unprojection.
type Ray struct {
	// Origin is the ray start point on the near plane.
	Origin [3]float64

	// Dir is the normalized ray direction.
	Dir [3]float64
}

// Unproject maps a point in normalized device coordinates (x and y in
// [-1, 1]) to a world-space ray through the frozen projection. Hosts use
// this for hit-testing marker content against screen positions.
func (c *Camera) Unproject(x, y float64) (Ray, error) {
	inv, err := c.projectionInverse()
	if err != nil {
		return Ray{}, err
	}

	nx, ny, nz := inv.TransformPoint(x, y, -1)
	fx, fy, fz := inv.TransformPoint(x, y, 1)

	dx, dy, dz := fx-nx, fy-ny, fz-nz
	length := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if length == 0 {
		return Ray{}, ErrSingularProjection
	}

	return Ray{
		Origin: [3]float64{nx, ny, nz},
		Dir:    [3]float64{dx / length, dy / length, dz / length},
	}, nil
}

// projectionInverse returns the cached inverse of the projection.
func (c *Camera) projectionInverse() (Mat4, error) {
	if c.inverseOK || c.inverseErr != nil {
		return c.inverse, c.inverseErr
	}

	// gonum is row-major; Mat4 is column-major.
	src := mat.NewDense(4, 4, nil)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			src.Set(row, col, c.projection[col*4+row])
		}
	}

	var dst mat.Dense
	if err := dst.Inverse(src); err != nil {
		c.inverseErr = fmt.Errorf("%w: %v", ErrSingularProjection, err)
		return Mat4{}, c.inverseErr
	}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			c.inverse[col*4+row] = dst.At(row, col)
		}
	}
	c.inverseOK = true
	return c.inverse, nil
}
