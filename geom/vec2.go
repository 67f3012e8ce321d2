package geom

// Vec2 represents a 2D cell coordinate or size
type Vec2 struct {
	X, Y int
}

// Zero is the origin / empty size
var Zero = Vec2{}

// New creates a Vec2 from x and y
func New(x, y int) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + other, component-wise
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other, component-wise
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// SaturatingSub returns v - other with each component clamped at zero
func (v Vec2) SaturatingSub(other Vec2) Vec2 {
	return Vec2{X: max(0, v.X-other.X), Y: max(0, v.Y-other.Y)}
}

// CheckedSub returns v - other, or false if any component would go negative
func (v Vec2) CheckedSub(other Vec2) (Vec2, bool) {
	if v.X < other.X || v.Y < other.Y {
		return Zero, false
	}
	return v.Sub(other), true
}

// Min returns the component-wise minimum of v and other
func (v Vec2) Min(other Vec2) Vec2 {
	return Vec2{X: min(v.X, other.X), Y: min(v.Y, other.Y)}
}

// Max returns the component-wise maximum of v and other
func (v Vec2) Max(other Vec2) Vec2 {
	return Vec2{X: max(v.X, other.X), Y: max(v.Y, other.Y)}
}

// FitsIn reports whether both components of v are <= those of other
func (v Vec2) FitsIn(other Vec2) bool {
	return v.X <= other.X && v.Y <= other.Y
}

// StrictlyFitsIn reports whether both components of v are < those of other.
// Used for point-in-area checks where other is a size.
func (v Vec2) StrictlyFitsIn(other Vec2) bool {
	return v.X < other.X && v.Y < other.Y
}
