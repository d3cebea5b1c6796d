package rooms

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
	"github.com/voxspace/roomwalk/internal/game"
	"github.com/voxspace/roomwalk/pkg/math"
)

// Gallery builds a row of exhibits. Selecting one marks it the
// favorite, raises it slightly, and the choice survives leaving and
// returning.
func Gallery(nav Navigator) game.SceneFactory {
	return func() game.Scene { return &galleryScene{nav: nav} }
}

type galleryScene struct {
	nav      Navigator
	exhibits []*scenegraph.Node
	elapsed  float32
}

func (s *galleryScene) Name() string { return "gallery" }

const exhibitCount = 5

func (s *galleryScene) Setup(r *game.Room) error {
	root := r.Root()

	floor := scenegraph.NewMeshNode("floor", &scenegraph.Mesh{
		Geometry: scenegraph.BoxGeometry(7, 0.05, 4, 0.3, 0.28, 0.26),
		Material: &scenegraph.Material{R: 0.3, G: 0.28, B: 0.26},
	})
	floor.Position = math.Vec3{Y: -0.05}
	root.Add(floor)

	s.exhibits = s.exhibits[:0]
	for i := 0; i < exhibitCount; i++ {
		name := fmt.Sprintf("exhibit-%d", i)
		hue := float32(i) / exhibitCount
		node := scenegraph.NewMeshNode(name, &scenegraph.Mesh{
			Geometry: scenegraph.BoxGeometry(0.25, 0.25, 0.25, 0.4+hue*0.5, 0.5, 0.9-hue*0.5),
			Material: &scenegraph.Material{R: 0.4 + hue*0.5, G: 0.5, B: 0.9 - hue*0.5},
		})
		node.Position = math.Vec3{X: float32(i-exhibitCount/2) * 1.2, Y: 1.1, Z: -3}
		s.exhibits = append(s.exhibits, node)

		r.AddTrigger(&game.Trigger{
			Name: name,
			Node: node,
			Caps: game.Capabilities{
				OnSelect: func(t *game.Trigger) {
					r.State()["favorite"] = name
				},
			},
		})
	}

	portal := scenegraph.NewMeshNode("portal-home", &scenegraph.Mesh{
		Geometry: scenegraph.BoxGeometry(0.3, 0.3, 0.3, 0.6, 0.9, 0.6),
		Material: &scenegraph.Material{R: 0.6, G: 0.9, B: 0.6, Emissive: 0.2},
	})
	portal.Position = math.Vec3{Y: 1, Z: 3}
	back := &game.Trigger{Name: "portal-home", Node: portal}
	navigateOnRelease(back, s.nav, HomePath)
	r.AddTrigger(back)

	r.SetBounds(math.NewBox3(
		math.Vec3{X: -6.5, Y: 0, Z: -3.5},
		math.Vec3{X: 6.5, Y: 0, Z: 3.5},
	))
	r.StateDefault("favorite", "")
	queueAmbience(r, "audio/gallery.wav")
	return nil
}

func (s *galleryScene) OnAssetsLoaded(r *game.Room) {
	playAmbience(r, "audio/gallery.wav")
}

func (s *galleryScene) Animate(r *game.Room, dt float32) {
	s.elapsed += dt
	favorite, _ := r.State()["favorite"].(string)
	for _, e := range s.exhibits {
		if e.Name == favorite {
			e.Position.Y = 1.3 + 0.05*math32.Sin(s.elapsed*2)
		} else {
			e.Position.Y = 1.1
		}
	}
}
