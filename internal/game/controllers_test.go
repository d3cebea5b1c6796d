package game

import (
	"fmt"
	"testing"

	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
	"github.com/voxspace/roomwalk/internal/xr"
	"github.com/voxspace/roomwalk/pkg/math"
)

func TestAddBuildsGripAndRay(t *testing.T) {
	scene := scenegraph.NewNode("scene")
	c := NewControllers(scene)

	ctrl := c.Add(&xr.SimSource{Hand: "left", Pose: math.Identity()})
	if ctrl.Grip == nil || ctrl.Ray == nil {
		t.Fatal("controller missing grip or ray node")
	}
	if ctrl.Grip.AutoUpdate || ctrl.Ray.AutoUpdate {
		t.Error("pose-driven nodes must not auto-update")
	}
	if !ctrl.Ray.Mesh.Geometry.Lines {
		t.Error("ray geometry is not a line")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestRemoveDetachesAndDisposes(t *testing.T) {
	scene := scenegraph.NewNode("scene")
	c := NewControllers(scene)
	ctrl := c.Add(&xr.SimSource{Hand: "right", Pose: math.Identity()})

	c.Remove(0)
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
	if ctrl.Grip.Parent() != nil || ctrl.Ray.Parent() != nil {
		t.Error("removed nodes still attached")
	}
	if !ctrl.Grip.Mesh.Geometry.Disposed() {
		t.Error("grip geometry not disposed")
	}
	if !ctrl.Ray.Mesh.Geometry.Disposed() {
		t.Error("ray geometry not disposed")
	}
}

func TestRemoveAllForAnyCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			scene := scenegraph.NewNode("scene")
			c := NewControllers(scene)
			for i := 0; i < n; i++ {
				c.Add(&xr.SimSource{Hand: "left", Pose: math.Identity()})
			}

			c.RemoveAll()
			if c.Len() != 0 {
				t.Errorf("Len = %d, want 0", c.Len())
			}
			group := scene.Find("controllers")
			if group == nil {
				t.Fatal("controller group missing")
			}
			if got := len(group.Children()); got != 0 {
				t.Errorf("graph children = %d, want 0", got)
			}
		})
	}
}

func TestSyncAppliesOffsetToPoses(t *testing.T) {
	scene := scenegraph.NewNode("scene")
	c := NewControllers(scene)
	src := &xr.SimSource{Hand: "left", Pose: math.Translate(0, 1.5, -0.2)}

	c.Sync([]xr.InputSource{src}, math.Translate(10, 0, 0))
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	got := c.List()[0].Grip.World.Translation()
	want := math.Vec3{X: 10, Y: 1.5, Z: -0.2}
	if got != want {
		t.Errorf("grip world translation = %+v, want %+v", got, want)
	}
}
