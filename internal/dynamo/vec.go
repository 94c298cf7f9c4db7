package dynamo

import "math"

// Vec2 is a 2D vector. The unit (pixels or meters) is implied by the field it
// is stored in.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the euclidean norm.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared avoids the sqrt for comparisons.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns |v - o|.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

// IsValid reports whether both components are finite.
func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Units is the number of pixels per meter.
type Units float64

// DefaultUnits matches a 1920px wide display being 9.6m across.
const DefaultUnits Units = 200

func (u Units) ToMeters(p Vec2) Vec2 { return p.Scale(1 / float64(u)) }
func (u Units) ToPixels(m Vec2) Vec2 { return m.Scale(float64(u)) }

// Meters converts a scalar pixel length.
func (u Units) Meters(px float64) float64 { return px / float64(u) }

// Pixels converts a scalar meter length.
func (u Units) Pixels(m float64) float64 { return m * float64(u) }

// PixelLength returns the length of a meter-space vector measured in pixels.
func (u Units) PixelLength(m Vec2) float64 {
	return m.Length() * float64(u)
}
