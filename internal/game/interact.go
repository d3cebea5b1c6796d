package game

import (
	"github.com/chewxy/math32"

	"github.com/voxspace/roomwalk/internal/engine/picking"
	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
)

// Capabilities is the fixed set of optional operations a trigger
// exposes. The dispatcher invokes only the one matching the current
// transition; it never inspects scene-specific behavior.
type Capabilities struct {
	OnHover   func(*Trigger)
	OnExit    func(*Trigger)
	OnSelect  func(*Trigger)
	OnRelease func(*Trigger)
}

// Trigger is an interactive object: a named scene node plus its
// capability record and a typed table of named cross-cutting actions
// (e.g. "navigate") the scene wiring populates.
type Trigger struct {
	Name    string
	Node    *scenegraph.Node
	Caps    Capabilities
	Actions map[string]func()

	Hovered  bool
	Selected bool
}

// Invoke runs a named action if the trigger carries it.
func (t *Trigger) Invoke(action string) {
	if fn, ok := t.Actions[action]; ok {
		fn()
	}
}

// hover marks the trigger hovered, highlights its material, and runs
// its hover capability.
func (t *Trigger) hover() {
	if t.Hovered {
		return
	}
	t.Hovered = true
	if t.Node.Mesh != nil {
		t.Node.Mesh.Material.Highlight = true
	}
	if t.Caps.OnHover != nil {
		t.Caps.OnHover(t)
	}
}

// exit reverses hover.
func (t *Trigger) exit() {
	if !t.Hovered {
		return
	}
	t.Hovered = false
	if t.Node.Mesh != nil {
		t.Node.Mesh.Material.Highlight = false
	}
	if t.Caps.OnExit != nil {
		t.Caps.OnExit(t)
	}
}

// Interactions resolves pointer/controller rays against the trigger set
// and drives hover/select/release/exit transitions. At most one trigger
// is hovered and at most one selected within a room at any time; the
// two flags are independent.
type Interactions struct {
	triggers []*Trigger
	hovered  *Trigger
	selected *Trigger
}

// NewInteractions creates an empty dispatcher.
func NewInteractions() *Interactions {
	return &Interactions{}
}

// AddTrigger registers a trigger for ray queries. The dispatcher
// references the trigger; the room's interactive group owns its node.
func (x *Interactions) AddTrigger(t *Trigger) {
	x.triggers = append(x.triggers, t)
}

// Triggers returns the registered triggers.
func (x *Interactions) Triggers() []*Trigger {
	return x.triggers
}

// Hovered returns the currently hovered trigger, or nil.
func (x *Interactions) Hovered() *Trigger {
	return x.hovered
}

// Selected returns the currently selected trigger, or nil.
func (x *Interactions) Selected() *Trigger {
	return x.selected
}

// pick returns the nearest trigger the ray intersects, or nil.
func (x *Interactions) pick(ray picking.Ray) *Trigger {
	var best *Trigger
	bestDist := float32(math32.MaxFloat32)
	for _, t := range x.triggers {
		if t.Node == nil || !t.Node.Visible {
			continue
		}
		lo, hi, ok := t.Node.WorldAABB()
		if !ok {
			continue
		}
		if dist, hit := ray.IntersectAABB(lo, hi); hit && dist < bestDist {
			best = t
			bestDist = dist
		}
	}
	return best
}

// Update resolves hover/exit transitions for the current ray. Repeated
// calls with an unchanged intersection are no-ops.
func (x *Interactions) Update(ray picking.Ray) {
	hit := x.pick(ray)
	if hit == x.hovered {
		return
	}
	if x.hovered != nil {
		x.hovered.exit()
	}
	x.hovered = hit
	if hit != nil {
		hit.hover()
	}
}

// Press selects the trigger under the ray, if any. A previously
// selected trigger is deselected without an implicit exit; selection
// and hover are independent.
func (x *Interactions) Press(ray picking.Ray) {
	hit := x.pick(ray)
	if hit == nil {
		return
	}
	if x.selected != nil && x.selected != hit {
		x.selected.Selected = false
	}
	x.selected = hit
	hit.Selected = true
	if hit.Caps.OnSelect != nil {
		hit.Caps.OnSelect(hit)
	}
}

// Release releases the selected trigger, if any; afterward nothing is
// selected.
func (x *Interactions) Release() {
	if x.selected == nil {
		return
	}
	t := x.selected
	x.selected = nil
	t.Selected = false
	if t.Caps.OnRelease != nil {
		t.Caps.OnRelease(t)
	}
}

// Clear exits any hovered trigger and drops selection without firing
// release. Used on deactivation.
func (x *Interactions) Clear() {
	if x.hovered != nil {
		x.hovered.exit()
		x.hovered = nil
	}
	if x.selected != nil {
		x.selected.Selected = false
		x.selected = nil
	}
}
