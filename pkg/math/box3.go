package math

// Box3 is an axis-aligned box used to confine a position to a room's
// walkable volume. Upper is component-wise >= Lower; NewBox3 enforces
// the ordering so Clamp never has to.
type Box3 struct {
	Lower Vec3
	Upper Vec3
}

// NewBox3 creates a Box3 from two corners, swapping components so that
// Lower <= Upper on every axis.
func NewBox3(lower, upper Vec3) Box3 {
	if lower.X > upper.X {
		lower.X, upper.X = upper.X, lower.X
	}
	if lower.Y > upper.Y {
		lower.Y, upper.Y = upper.Y, lower.Y
	}
	if lower.Z > upper.Z {
		lower.Z, upper.Z = upper.Z, lower.Z
	}
	return Box3{Lower: lower, Upper: upper}
}

// SetCorners replaces both corners, re-normalizing the ordering.
func (b *Box3) SetCorners(lower, upper Vec3) {
	*b = NewBox3(lower, upper)
}

// Clamp restricts p to the box in place, each axis independently.
// Applying it twice yields the same result as once.
func (b Box3) Clamp(p *Vec3) {
	if p.X > b.Upper.X {
		p.X = b.Upper.X
	} else if p.X < b.Lower.X {
		p.X = b.Lower.X
	}
	if p.Y > b.Upper.Y {
		p.Y = b.Upper.Y
	} else if p.Y < b.Lower.Y {
		p.Y = b.Lower.Y
	}
	if p.Z > b.Upper.Z {
		p.Z = b.Upper.Z
	} else if p.Z < b.Lower.Z {
		p.Z = b.Lower.Z
	}
}

// Contains reports whether p lies inside the box (inclusive).
func (b Box3) Contains(p Vec3) bool {
	return p.X >= b.Lower.X && p.X <= b.Upper.X &&
		p.Y >= b.Lower.Y && p.Y <= b.Upper.Y &&
		p.Z >= b.Lower.Z && p.Z <= b.Upper.Z
}
