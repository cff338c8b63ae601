package pose

import "math"

// Distance returns the Euclidean distance between a and b.
// A missing z coordinate counts as 0.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.ZOr(0) - b.ZOr(0)

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Angle returns the signed angle in degrees at vertex b between the rays
// b→a and b→c, measured in the image plane. The result lies in (-180, 180].
func Angle(a, b, c Point) float64 {
	v1x, v1y := a.X-b.X, a.Y-b.Y
	v2x, v2y := c.X-b.X, c.Y-b.Y

	dot := v1x*v2x + v1y*v2y
	det := v1x*v2y - v1y*v2x

	return math.Atan2(det, dot) * 180 / math.Pi
}
