package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// up is the facing of rotation 0 in y-down world space.
var up = r2.Vec{X: 0, Y: -1}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// forward returns the unit facing vector for a rotation in degrees:
// forward(0) = (0, -1), forward(-90) = (1, 0).
func forward(rotation float64) r2.Vec {
	return r2.Rotate(up, -radians(rotation), r2.Vec{})
}

// rotationToward returns the rotation in degrees that faces along d.
// It reports false for a zero vector, which has no direction.
func rotationToward(d r2.Vec) (float64, bool) {
	if d.X == 0 && d.Y == 0 {
		return 0, false
	}
	return -degrees(math.Atan2(r2.Cross(up, d), r2.Dot(up, d))), true
}

// orient rotates a point given in the entity's frame (tip towards up) into
// world orientation for the given rotation.
func orient(p r2.Vec, rotation float64) r2.Vec {
	return r2.Rotate(p, -radians(rotation), r2.Vec{})
}
