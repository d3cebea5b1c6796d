package rooms

import (
	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
	"github.com/voxspace/roomwalk/internal/game"
	"github.com/voxspace/roomwalk/pkg/math"
)

// Home builds the lobby: a floor, one rotating portal per destination,
// and ambience. Portals navigate on release.
func Home(nav Navigator) game.SceneFactory {
	return func() game.Scene { return &homeScene{nav: nav} }
}

type homeScene struct {
	nav     Navigator
	portals []*scenegraph.Node
}

func (s *homeScene) Name() string { return "home" }

func (s *homeScene) Setup(r *game.Room) error {
	root := r.Root()

	floor := scenegraph.NewMeshNode("floor", &scenegraph.Mesh{
		Geometry: scenegraph.BoxGeometry(6, 0.05, 6, 0.25, 0.27, 0.3),
		Material: &scenegraph.Material{R: 0.25, G: 0.27, B: 0.3},
	})
	floor.Position = math.Vec3{Y: -0.05}
	root.Add(floor)

	s.portals = s.portals[:0]
	s.addPortal(r, "portal-planets", PlanetsPath, math.Vec3{X: -2, Y: 1.2, Z: -4}, 0.35, 0.55, 0.95)
	s.addPortal(r, "portal-gallery", GalleryPath, math.Vec3{X: 2, Y: 1.2, Z: -4}, 0.95, 0.55, 0.35)

	r.SetBounds(math.NewBox3(
		math.Vec3{X: -5.5, Y: 0, Z: -5.5},
		math.Vec3{X: 5.5, Y: 0, Z: 5.5},
	))
	queueAmbience(r, "audio/home.wav")
	return nil
}

func (s *homeScene) addPortal(r *game.Room, name, path string, pos math.Vec3, cr, cg, cb float32) {
	node := scenegraph.NewMeshNode(name, &scenegraph.Mesh{
		Geometry: scenegraph.BoxGeometry(0.4, 0.4, 0.4, cr, cg, cb),
		Material: &scenegraph.Material{R: cr, G: cg, B: cb, Emissive: 0.2},
	})
	node.Position = pos
	trig := &game.Trigger{Name: name, Node: node}
	navigateOnRelease(trig, s.nav, path)
	r.AddTrigger(trig)
	s.portals = append(s.portals, node)
}

func (s *homeScene) OnAssetsLoaded(r *game.Room) {
	playAmbience(r, "audio/home.wav")
}

func (s *homeScene) Animate(r *game.Room, dt float32) {
	for _, p := range s.portals {
		p.RotationY += dt * 0.8
	}
}
