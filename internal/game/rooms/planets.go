package rooms

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/voxspace/roomwalk/internal/engine/physics"
	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
	"github.com/voxspace/roomwalk/internal/game"
	"github.com/voxspace/roomwalk/internal/logger"
	"github.com/voxspace/roomwalk/pkg/math"
)

// Planets builds an orrery: planets orbiting a sun, plus debris that
// falls and settles under physics. Selecting a planet remembers it in
// the room state across visits.
func Planets(nav Navigator) game.SceneFactory {
	return func() game.Scene { return &planetsScene{nav: nav} }
}

type planet struct {
	node   *scenegraph.Node
	radius float32
	speed  float32
	angle  float32
}

type debris struct {
	node *scenegraph.Node
	body *physics.Body
}

type planetsScene struct {
	nav     Navigator
	planets []*planet
	debris  []*debris

	warnedNoSun bool
}

func (s *planetsScene) Name() string { return "planets" }

func (s *planetsScene) Setup(r *game.Room) error {
	root := r.Root()

	floor := scenegraph.NewMeshNode("floor", &scenegraph.Mesh{
		Geometry: scenegraph.BoxGeometry(8, 0.05, 8, 0.1, 0.1, 0.14),
		Material: &scenegraph.Material{R: 0.1, G: 0.1, B: 0.14},
	})
	floor.Position = math.Vec3{Y: -0.05}
	root.Add(floor)

	sun := scenegraph.NewMeshNode("sun", &scenegraph.Mesh{
		Geometry: scenegraph.BoxGeometry(0.5, 0.5, 0.5, 1, 0.85, 0.3),
		Material: &scenegraph.Material{R: 1, G: 0.85, B: 0.3, Emissive: 0.8},
	})
	sun.Position = math.Vec3{Y: 2, Z: -5}
	root.Add(sun)

	s.planets = s.planets[:0]
	specs := []struct {
		name          string
		radius, speed float32
		size          float32
		cr, cg, cb    float32
	}{
		{"mercury", 1.0, 1.6, 0.08, 0.6, 0.6, 0.6},
		{"venus", 1.6, 1.1, 0.12, 0.9, 0.8, 0.6},
		{"earth", 2.3, 0.8, 0.13, 0.3, 0.5, 0.9},
		{"mars", 3.0, 0.6, 0.10, 0.9, 0.4, 0.3},
	}
	for i, sp := range specs {
		node := scenegraph.NewMeshNode(sp.name, &scenegraph.Mesh{
			Geometry: scenegraph.BoxGeometry(sp.size, sp.size, sp.size, sp.cr, sp.cg, sp.cb),
			Material: &scenegraph.Material{R: sp.cr, G: sp.cg, B: sp.cb},
		})
		p := &planet{
			node:   node,
			radius: sp.radius,
			speed:  sp.speed,
			angle:  float32(i) * math32.Pi / 2,
		}
		s.planets = append(s.planets, p)

		name := sp.name
		trig := &game.Trigger{
			Name: name,
			Node: node,
			Caps: game.Capabilities{
				OnSelect: func(t *game.Trigger) {
					r.State()["selected"] = name
				},
			},
		}
		r.AddTrigger(trig)
	}
	s.placePlanets(sun.Position)

	// Debris column over the floor; physics settles it into a pile.
	ground := physics.NewBody(math.Vec3{Y: -0.5}, math.Vec3{X: 8, Y: 0.5, Z: 8}, 0, true)
	r.Physics().AddBody(ground)

	s.debris = s.debris[:0]
	for i := 0; i < 4; i++ {
		node := scenegraph.NewMeshNode("debris", &scenegraph.Mesh{
			Geometry: scenegraph.BoxGeometry(0.15, 0.15, 0.15, 0.5, 0.45, 0.4),
			Material: &scenegraph.Material{R: 0.5, G: 0.45, B: 0.4},
		})
		root.Add(node)
		body := physics.NewBody(
			math.Vec3{X: 3, Y: 1.5 + float32(i)*0.6, Z: -3},
			math.Vec3{X: 0.15, Y: 0.15, Z: 0.15},
			1, false,
		)
		r.Physics().AddBody(body)
		s.debris = append(s.debris, &debris{node: node, body: body})
	}

	portal := scenegraph.NewMeshNode("portal-home", &scenegraph.Mesh{
		Geometry: scenegraph.BoxGeometry(0.3, 0.3, 0.3, 0.6, 0.9, 0.6),
		Material: &scenegraph.Material{R: 0.6, G: 0.9, B: 0.6, Emissive: 0.2},
	})
	portal.Position = math.Vec3{X: 0, Y: 1, Z: 5}
	back := &game.Trigger{Name: "portal-home", Node: portal}
	navigateOnRelease(back, s.nav, HomePath)
	r.AddTrigger(back)

	r.SetBounds(math.NewBox3(
		math.Vec3{X: -7.5, Y: 0, Z: -7.5},
		math.Vec3{X: 7.5, Y: 0, Z: 7.5},
	))
	r.StateDefault("selected", "")
	queueAmbience(r, "audio/planets.wav")
	return nil
}

func (s *planetsScene) placePlanets(center math.Vec3) {
	for _, p := range s.planets {
		p.node.Position = math.Vec3{
			X: center.X + p.radius*math32.Cos(p.angle),
			Y: center.Y,
			Z: center.Z + p.radius*math32.Sin(p.angle),
		}
	}
}

func (s *planetsScene) OnAssetsLoaded(r *game.Room) {
	playAmbience(r, "audio/planets.wav")
}

func (s *planetsScene) Animate(r *game.Room, dt float32) {
	for _, p := range s.planets {
		p.angle += p.speed * dt
	}
	if sun := r.Root().Find("sun"); sun != nil {
		s.placePlanets(sun.Position)
		s.warnedNoSun = false
	} else if !s.warnedNoSun {
		// Planets hold their last position until the sun reappears.
		s.warnedNoSun = true
		logger.Debug("sun node missing, orbit placement skipped",
			zap.String("room", r.Name()))
	}
	r.UpdatePhysics(dt)
	for _, d := range s.debris {
		d.node.Position = d.body.Position
	}
}
