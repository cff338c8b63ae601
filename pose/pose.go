// Package pose defines the landmark data model shared by the smoothing,
// quality and session packages.
//
// Coordinates are normalized to [0,1] image space. A frame is an ordered
// slice of landmarks whose index meaning is fixed by the upstream
// pose-estimation model (33 body landmarks).
package pose

// Body landmark indices of the 33-point pose topology.
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Point is a 2D or 3D coordinate. Z is nil for 2D points.
type Point struct {
	X float64  `json:"x"`
	Y float64  `json:"y"`
	Z *float64 `json:"z,omitempty"`
}

// Landmark is a tracked point with a detection visibility in [0,1].
// A visibility of 0 is indistinguishable from "not reported".
type Landmark struct {
	Point
	Visibility float64 `json:"visibility,omitempty"`
}

// Pt returns a 2D point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Pt3 returns a 3D point.
func Pt3(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: &z}
}

// HasZ reports whether the point carries a z coordinate.
func (p Point) HasZ() bool {
	return p.Z != nil
}

// ZOr returns the z coordinate, or def for 2D points.
func (p Point) ZOr(def float64) float64 {
	if p.Z == nil {
		return def
	}

	return *p.Z
}

// WithZ returns a copy of p with the z coordinate set to z.
func (p Point) WithZ(z float64) Point {
	p.Z = &z
	return p
}

// Clone returns a deep copy of p. The z pointer is not shared.
func (p Point) Clone() Point {
	if p.Z != nil {
		return p.WithZ(*p.Z)
	}

	return p
}

// Clone returns a deep copy of the frame.
func Clone(frame []Landmark) []Landmark {
	if frame == nil {
		return nil
	}

	out := make([]Landmark, len(frame))
	for i, lm := range frame {
		out[i] = Landmark{Point: lm.Point.Clone(), Visibility: lm.Visibility}
	}

	return out
}

// At returns the landmark at index i and whether the frame has it.
func At(frame []Landmark, i int) (Landmark, bool) {
	if i < 0 || i >= len(frame) {
		return Landmark{}, false
	}

	return frame[i], true
}
