package game

import (
	"testing"

	"github.com/voxspace/roomwalk/internal/engine/picking"
	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
	"github.com/voxspace/roomwalk/pkg/math"
)

// boxTrigger builds a unit-cube trigger centered at (x, y, z) with its
// world matrix resolved.
func boxTrigger(name string, x, y, z float32) *Trigger {
	node := scenegraph.NewMeshNode(name, &scenegraph.Mesh{
		Geometry: scenegraph.BoxGeometry(0.5, 0.5, 0.5, 1, 1, 1),
		Material: &scenegraph.Material{R: 1, G: 1, B: 1},
	})
	node.Position = math.Vec3{X: x, Y: y, Z: z}
	node.UpdateWorld(math.Identity())
	return &Trigger{Name: name, Node: node}
}

func rayAt(x, y float32) picking.Ray {
	return picking.New(math.Vec3{X: x, Y: y, Z: 5}, math.Vec3{Z: -1})
}

func TestHoverEnterAndExit(t *testing.T) {
	var hovers, exits int
	trig := boxTrigger("a", 0, 0, 0)
	trig.Caps = Capabilities{
		OnHover: func(*Trigger) { hovers++ },
		OnExit:  func(*Trigger) { exits++ },
	}
	x := NewInteractions()
	x.AddTrigger(trig)

	x.Update(rayAt(0, 0))
	if !trig.Hovered {
		t.Fatal("trigger not hovered under the ray")
	}
	if !trig.Node.Mesh.Material.Highlight {
		t.Error("material not highlighted on hover")
	}
	if hovers != 1 {
		t.Errorf("hovers = %d, want 1", hovers)
	}

	// Same intersection again: no transition.
	x.Update(rayAt(0.1, 0))
	if hovers != 1 || exits != 0 {
		t.Errorf("hovers, exits = %d, %d after repeat, want 1, 0", hovers, exits)
	}

	x.Update(rayAt(10, 10))
	if trig.Hovered {
		t.Error("trigger still hovered after ray left")
	}
	if trig.Node.Mesh.Material.Highlight {
		t.Error("material still highlighted after exit")
	}
	if exits != 1 {
		t.Errorf("exits = %d, want 1", exits)
	}
}

func TestHoverMovesBetweenTriggersExactlyOnce(t *testing.T) {
	counts := make(map[string]int)
	a := boxTrigger("a", -2, 0, 0)
	b := boxTrigger("b", 2, 0, 0)
	for _, trig := range []*Trigger{a, b} {
		trig := trig
		trig.Caps = Capabilities{
			OnHover: func(*Trigger) { counts[trig.Name+"/hover"]++ },
			OnExit:  func(*Trigger) { counts[trig.Name+"/exit"]++ },
		}
	}
	x := NewInteractions()
	x.AddTrigger(a)
	x.AddTrigger(b)

	x.Update(rayAt(-2, 0))
	x.Update(rayAt(2, 0))
	if a.Hovered {
		t.Error("a still hovered after the ray moved to b")
	}
	if !b.Hovered {
		t.Error("b not hovered")
	}
	want := map[string]int{"a/hover": 1, "a/exit": 1, "b/hover": 1}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("%s = %d, want %d", k, counts[k], v)
		}
	}
	if x.Hovered() != b {
		t.Error("dispatcher tracks wrong hovered trigger")
	}
}

func TestNearestTriggerWins(t *testing.T) {
	near := boxTrigger("near", 0, 0, 2)
	far := boxTrigger("far", 0, 0, -2)
	x := NewInteractions()
	x.AddTrigger(far)
	x.AddTrigger(near)

	x.Update(rayAt(0, 0))
	if x.Hovered() != near {
		t.Errorf("hovered = %v, want the nearer trigger", x.Hovered())
	}
}

func TestSelectAndRelease(t *testing.T) {
	var selects, releases int
	trig := boxTrigger("a", 0, 0, 0)
	trig.Caps = Capabilities{
		OnSelect:  func(*Trigger) { selects++ },
		OnRelease: func(*Trigger) { releases++ },
	}
	x := NewInteractions()
	x.AddTrigger(trig)

	x.Press(rayAt(0, 0))
	if !trig.Selected {
		t.Fatal("trigger not selected")
	}
	if selects != 1 {
		t.Errorf("selects = %d, want 1", selects)
	}

	// Release fires even if the ray has moved off the trigger.
	x.Release()
	if trig.Selected {
		t.Error("trigger still selected after release")
	}
	if releases != 1 {
		t.Errorf("releases = %d, want 1", releases)
	}

	// Second release with nothing selected is a no-op.
	x.Release()
	if releases != 1 {
		t.Errorf("releases = %d after empty release, want 1", releases)
	}
}

func TestSelectionIndependentOfHover(t *testing.T) {
	trig := boxTrigger("a", 0, 0, 0)
	x := NewInteractions()
	x.AddTrigger(trig)

	x.Update(rayAt(0, 0))
	x.Press(rayAt(0, 0))
	// Ray leaves while the button stays down.
	x.Update(rayAt(10, 10))
	if trig.Hovered {
		t.Error("still hovered after exit")
	}
	if !trig.Selected {
		t.Error("selection dropped by hover exit")
	}
}

func TestPressOffTriggerSelectsNothing(t *testing.T) {
	trig := boxTrigger("a", 0, 0, 0)
	x := NewInteractions()
	x.AddTrigger(trig)

	x.Press(rayAt(10, 10))
	if x.Selected() != nil {
		t.Error("press in empty space selected a trigger")
	}
}

func TestInvisibleTriggerIgnored(t *testing.T) {
	trig := boxTrigger("a", 0, 0, 0)
	trig.Node.Visible = false
	x := NewInteractions()
	x.AddTrigger(trig)

	x.Update(rayAt(0, 0))
	if x.Hovered() != nil {
		t.Error("invisible trigger was hovered")
	}
}

func TestClearExitsWithoutRelease(t *testing.T) {
	var exits, releases int
	trig := boxTrigger("a", 0, 0, 0)
	trig.Caps = Capabilities{
		OnExit:    func(*Trigger) { exits++ },
		OnRelease: func(*Trigger) { releases++ },
	}
	x := NewInteractions()
	x.AddTrigger(trig)
	x.Update(rayAt(0, 0))
	x.Press(rayAt(0, 0))

	x.Clear()
	if exits != 1 {
		t.Errorf("exits = %d, want 1", exits)
	}
	if releases != 0 {
		t.Errorf("releases = %d, want 0 (Clear drops silently)", releases)
	}
	if x.Hovered() != nil || x.Selected() != nil {
		t.Error("dispatcher not empty after Clear")
	}
}

func TestTriggerInvoke(t *testing.T) {
	var called bool
	trig := boxTrigger("a", 0, 0, 0)
	trig.Actions = map[string]func(){"navigate": func() { called = true }}

	trig.Invoke("missing")
	if called {
		t.Error("missing action ran something")
	}
	trig.Invoke("navigate")
	if !called {
		t.Error("registered action did not run")
	}
}
