package game

import (
	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
	"github.com/voxspace/roomwalk/internal/xr"
	"github.com/voxspace/roomwalk/pkg/math"
)

// Controller pairs one XR input source with its scene representation:
// a grip-anchored box and a forward pointer ray.
type Controller struct {
	Source xr.InputSource
	Grip   *scenegraph.Node
	Ray    *scenegraph.Node
}

// Controllers keeps controller visuals in step with the session's
// input sources. All controller nodes live under a dedicated group so
// removal detaches them from the scene in one place.
type Controllers struct {
	root *scenegraph.Node
	list []*Controller
}

// NewControllers creates a manager parented under scene.
func NewControllers(scene *scenegraph.Node) *Controllers {
	root := scenegraph.NewNode("controllers")
	scene.Add(root)
	return &Controllers{root: root}
}

// Len reports how many controllers are tracked.
func (c *Controllers) Len() int {
	return len(c.list)
}

// List returns the tracked controllers.
func (c *Controllers) List() []*Controller {
	return c.list
}

// Add builds grip and ray nodes for an input source and tracks it.
func (c *Controllers) Add(src xr.InputSource) *Controller {
	grip := scenegraph.NewMeshNode("grip", &scenegraph.Mesh{
		Geometry: scenegraph.BoxGeometry(0.02, 0.02, 0.05, 0.8, 0.8, 0.85),
		Material: &scenegraph.Material{R: 0.8, G: 0.8, B: 0.85},
	})
	ray := scenegraph.NewMeshNode("ray", &scenegraph.Mesh{
		Geometry: scenegraph.LineGeometry(
			math.Vec3{},
			math.Vec3{Z: -2},
			0.9, 0.9, 1,
		),
		Material: &scenegraph.Material{R: 0.9, G: 0.9, B: 1, Emissive: 0.5},
	})
	grip.AutoUpdate = false
	ray.AutoUpdate = false
	c.root.Add(grip)
	c.root.Add(ray)
	ctrl := &Controller{Source: src, Grip: grip, Ray: ray}
	c.list = append(c.list, ctrl)
	return ctrl
}

// Remove detaches controller i from the scene, disposes its
// geometry, and stops tracking it.
func (c *Controllers) Remove(i int) {
	if i < 0 || i >= len(c.list) {
		return
	}
	ctrl := c.list[i]
	c.root.Remove(ctrl.Grip)
	c.root.Remove(ctrl.Ray)
	ctrl.Grip.Mesh.Dispose()
	ctrl.Ray.Mesh.Dispose()
	c.list = append(c.list[:i], c.list[i+1:]...)
}

// RemoveAll removes every tracked controller. After it returns the
// list is empty and the controller group has no children, whatever the
// starting count.
func (c *Controllers) RemoveAll() {
	for len(c.list) > 0 {
		c.Remove(0)
	}
}

// Sync reconciles the tracked set against the session's current input
// sources and updates grip/ray transforms from the latest poses. offset
// maps reference-space poses into world space (the room's translation).
func (c *Controllers) Sync(sources []xr.InputSource, offset math.Mat4) {
	present := make(map[xr.InputSource]bool, len(sources))
	for _, src := range sources {
		present[src] = true
	}
	for i := len(c.list) - 1; i >= 0; i-- {
		if !present[c.list[i].Source] {
			c.Remove(i)
		}
	}
	tracked := make(map[xr.InputSource]bool, len(c.list))
	for _, ctrl := range c.list {
		tracked[ctrl.Source] = true
	}
	for _, src := range sources {
		if !tracked[src] {
			c.Add(src)
		}
	}
	for _, ctrl := range c.list {
		pose := offset.Mul(ctrl.Source.RayPose())
		ctrl.Grip.World = pose
		ctrl.Ray.World = pose
	}
}
