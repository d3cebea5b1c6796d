package physics

import "github.com/voxspace/roomwalk/pkg/math"

// World holds a set of bodies and steps them: gravity, integration,
// then pairwise AABB overlap resolution along the minimum penetration
// axis.
type World struct {
	Gravity math.Vec3
	Bodies  []*Body
}

// NewWorld returns a world with gravity (0, -9.8, 0).
func NewWorld() *World {
	return &World{Gravity: math.Vec3{Y: -9.8}}
}

// AddBody appends a body to the world.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Scale(dt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}

	for i := 0; i < len(w.Bodies); i++ {
		for j := i + 1; j < len(w.Bodies); j++ {
			w.resolve(w.Bodies[i], w.Bodies[j])
		}
	}
}

// overlap returns the per-axis overlap of two boxes; any non-positive
// component means no collision.
func overlap(aLo, aHi, bLo, bHi math.Vec3) math.Vec3 {
	return math.Vec3{
		X: min32(aHi.X, bHi.X) - max32(aLo.X, bLo.X),
		Y: min32(aHi.Y, bHi.Y) - max32(aLo.Y, bLo.Y),
		Z: min32(aHi.Z, bHi.Z) - max32(aLo.Z, bLo.Z),
	}
}

// resolve pushes an overlapping pair apart along the axis of minimum
// penetration, splitting the correction by mass. Two static bodies never
// move.
func (w *World) resolve(bi, bj *Body) {
	if bi.Static && bj.Static {
		return
	}
	iLo, iHi := bi.aabb()
	jLo, jHi := bj.aabb()
	ov := overlap(iLo, iHi, jLo, jHi)
	if ov.X <= 0 || ov.Y <= 0 || ov.Z <= 0 {
		return
	}

	depth, axis := ov.X, 0
	if ov.Y < depth {
		depth, axis = ov.Y, 1
	}
	if ov.Z < depth {
		depth, axis = ov.Z, 2
	}

	var moveI, moveJ float32
	switch {
	case bi.Static:
		moveJ = depth
	case bj.Static:
		moveI = -depth
	default:
		total := bi.Mass + bj.Mass
		moveI = -depth * (bj.Mass / total)
		moveJ = depth * (bi.Mass / total)
	}

	// Separating along +axis if j is on the positive side of i,
	// otherwise flip.
	if centerDelta(bi, bj, axis) < 0 {
		moveI, moveJ = -moveI, -moveJ
	}

	applyAxis(bi, axis, moveI)
	applyAxis(bj, axis, moveJ)
}

func centerDelta(bi, bj *Body, axis int) float32 {
	switch axis {
	case 0:
		return bj.Position.X - bi.Position.X
	case 1:
		return bj.Position.Y - bi.Position.Y
	default:
		return bj.Position.Z - bi.Position.Z
	}
}

func applyAxis(b *Body, axis int, move float32) {
	if b.Static || move == 0 {
		return
	}
	switch axis {
	case 0:
		b.Position.X += move
		b.Velocity.X = 0
	case 1:
		b.Position.Y += move
		b.Velocity.Y = 0
	default:
		b.Position.Z += move
		b.Velocity.Z = 0
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
