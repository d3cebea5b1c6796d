package scenegraph

import "github.com/voxspace/roomwalk/pkg/math"

// Geometry holds vertex data and the local bounds used for picking.
// The renderer uploads it to the GPU on first use and registers a release
// hook so Dispose can free the GPU copy.
type Geometry struct {
	// Interleaved position (xyz) + color (rgb) vertices.
	Vertices []float32
	Bounds   math.Box3
	// Lines selects line rendering instead of triangles.
	Lines bool

	disposed  bool
	onRelease func()
}

// BoxGeometry returns a unit-ish box centered on the origin with the
// given half extents and a flat color.
func BoxGeometry(hx, hy, hz float32, r, g, b float32) *Geometry {
	corners := [8][3]float32{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
	// Two triangles per face, indexed into corners.
	idx := []int{
		0, 1, 2, 0, 2, 3, // back
		4, 6, 5, 4, 7, 6, // front
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
		3, 2, 6, 3, 6, 7, // top
		0, 4, 5, 0, 5, 1, // bottom
	}
	verts := make([]float32, 0, len(idx)*6)
	for _, i := range idx {
		c := corners[i]
		verts = append(verts, c[0], c[1], c[2], r, g, b)
	}
	return &Geometry{
		Vertices: verts,
		Bounds:   math.NewBox3(math.Vec3{X: -hx, Y: -hy, Z: -hz}, math.Vec3{X: hx, Y: hy, Z: hz}),
	}
}

// LineGeometry returns a two-point line segment (used for pointer rays).
func LineGeometry(from, to math.Vec3, r, g, b float32) *Geometry {
	return &Geometry{
		Vertices: []float32{
			from.X, from.Y, from.Z, r, g, b,
			to.X, to.Y, to.Z, r, g, b,
		},
		Bounds: math.NewBox3(from, to),
		Lines:  true,
	}
}

// OnRelease registers the hook Dispose calls to free GPU resources.
// The renderer sets it when it uploads the geometry.
func (g *Geometry) OnRelease(fn func()) {
	g.onRelease = fn
}

// Dispose releases the geometry's GPU resources. Safe to call once;
// calling it again panics, since a double dispose means ownership of the
// resource is confused somewhere.
func (g *Geometry) Dispose() {
	if g.disposed {
		panic("scenegraph: geometry disposed twice")
	}
	g.disposed = true
	if g.onRelease != nil {
		g.onRelease()
		g.onRelease = nil
	}
}

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}

// Material holds surface parameters. Highlight is flipped by interaction
// hover/select handlers.
type Material struct {
	R, G, B   float32
	Emissive  float32
	Highlight bool

	disposed  bool
	onRelease func()
}

// NewMaterial returns a material with the given base color.
func NewMaterial(r, g, b float32) *Material {
	return &Material{R: r, G: g, B: b}
}

// OnRelease registers the hook Dispose calls to free GPU resources.
func (m *Material) OnRelease(fn func()) {
	m.onRelease = fn
}

// Dispose releases the material's GPU resources. A second call panics,
// same as Geometry.Dispose.
func (m *Material) Dispose() {
	if m.disposed {
		panic("scenegraph: material disposed twice")
	}
	m.disposed = true
	if m.onRelease != nil {
		m.onRelease()
		m.onRelease = nil
	}
}

// Disposed reports whether Dispose has been called.
func (m *Material) Disposed() bool {
	return m.disposed
}

// Mesh pairs geometry with a material.
type Mesh struct {
	Geometry *Geometry
	Material *Material
}

// NewMesh creates a mesh from geometry and material.
func NewMesh(geo *Geometry, mat *Material) *Mesh {
	return &Mesh{Geometry: geo, Material: mat}
}

// Dispose releases both the geometry and the material.
func (m *Mesh) Dispose() {
	m.Geometry.Dispose()
	m.Material.Dispose()
}
