package rooms

import (
	"os"
	"testing"
	"time"

	"github.com/voxspace/roomwalk/internal/engine/camera"
	"github.com/voxspace/roomwalk/internal/engine/picking"
	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
	"github.com/voxspace/roomwalk/internal/game"
	"github.com/voxspace/roomwalk/internal/logger"
	"github.com/voxspace/roomwalk/internal/nav"
	"github.com/voxspace/roomwalk/pkg/math"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithFileConfig("error", logger.FileConfig{}, false); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// nopRenderer satisfies the renderer interface without drawing.
type nopRenderer struct{ w, h int }

func (r *nopRenderer) Render(*scenegraph.Node, *camera.Camera) {}
func (r *nopRenderer) Clear()                                  {}
func (r *nopRenderer) ClearDepth()                             {}
func (r *nopRenderer) SetViewport(int, int, int, int)          {}
func (r *nopRenderer) SetSize(w, h int)                        { r.w, r.h = w, h }
func (r *nopRenderer) Size() (int, int)                        { return r.w, r.h }
func (r *nopRenderer) BindFramebuffer(uint32)                  {}
func (r *nopRenderer) SetAutoClear(bool)                       {}

func newRouter() (*game.Router, *game.DisplayScheduler) {
	sched := game.NewDisplayScheduler()
	deps := game.Deps{
		Renderer: &nopRenderer{w: 800, h: 600},
		Camera:   camera.New(800.0 / 600.0),
		Sched:    sched,
	}
	router := game.NewRouter(deps, nav.NewMemory(), nil)
	Register(router)
	return router, sched
}

// zRay casts toward -Z from in front of a target position.
func zRay(x, y float32) picking.Ray {
	return picking.New(math.Vec3{X: x, Y: y, Z: 0}, math.Vec3{Z: -1})
}

func TestHomePortalNavigatesToPlanets(t *testing.T) {
	router, _ := newRouter()
	if err := router.Navigate(HomePath); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	room := router.Current()
	room.Root().UpdateWorld(math.Identity())

	// portal-planets sits at (-2, 1.2, -4).
	ray := zRay(-2, 1.2)
	room.Interactions().Press(ray)
	if room.Interactions().Selected() == nil {
		t.Fatal("portal not selected")
	}
	room.Interactions().Release()

	if router.CurrentPath() != PlanetsPath {
		t.Errorf("path = %q, want %q", router.CurrentPath(), PlanetsPath)
	}
	if room.Active() {
		t.Error("home room still active after navigation")
	}
}

func TestGalleryFavoriteSurvivesRevisit(t *testing.T) {
	router, _ := newRouter()
	if err := router.Navigate(GalleryPath); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	room := router.Current()
	room.Root().UpdateWorld(math.Identity())

	// exhibit-2 sits at the row center (0, 1.1, -3).
	room.Interactions().Press(zRay(0, 1.1))
	room.Interactions().Release()
	if got := room.State()["favorite"]; got != "exhibit-2" {
		t.Fatalf("favorite = %v, want exhibit-2", got)
	}

	if err := router.Navigate(HomePath); err != nil {
		t.Fatalf("Navigate away: %v", err)
	}
	if err := router.Navigate(GalleryPath); err != nil {
		t.Fatalf("Navigate back: %v", err)
	}
	if got := router.Current().State()["favorite"]; got != "exhibit-2" {
		t.Errorf("favorite after revisit = %v, want exhibit-2", got)
	}
}

func TestPlanetsOrbitAndDebrisSettles(t *testing.T) {
	router, sched := newRouter()
	if err := router.Navigate(PlanetsPath); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	room := router.Current()
	before := room.Root().Find("earth").Position

	for i := 0; i < 100; i++ {
		if err := sched.Pump(time.Duration(i) * 100 * time.Millisecond); err != nil {
			t.Fatalf("Pump: %v", err)
		}
	}

	after := room.Root().Find("earth").Position
	if before == after {
		t.Error("earth did not orbit")
	}
	for _, b := range room.Physics().Bodies {
		if b.Static {
			continue
		}
		if b.Position.Y < 0.1 {
			t.Errorf("debris fell through the floor: y = %v", b.Position.Y)
		}
		if b.Position.Y > 3.5 {
			t.Errorf("debris never fell: y = %v", b.Position.Y)
		}
	}
}

func TestPlanetsHoldPositionWithoutSun(t *testing.T) {
	router, sched := newRouter()
	if err := router.Navigate(PlanetsPath); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	room := router.Current()

	if err := sched.Pump(0); err != nil {
		t.Fatalf("Pump: %v", err)
	}
	sun := room.Root().Find("sun")
	if sun == nil {
		t.Fatal("sun node missing at setup")
	}
	sun.Parent().Remove(sun)

	before := room.Root().Find("earth").Position
	for i := 1; i <= 5; i++ {
		if err := sched.Pump(time.Duration(i) * 100 * time.Millisecond); err != nil {
			t.Fatalf("Pump: %v", err)
		}
	}
	if after := room.Root().Find("earth").Position; after != before {
		t.Errorf("earth moved without a sun: %v -> %v", before, after)
	}
}

func TestUnknownPathLandsInLobby(t *testing.T) {
	router, _ := newRouter()
	if err := router.Navigate("/attic"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if router.CurrentPath() != HomePath {
		t.Errorf("path = %q, want fallback %q", router.CurrentPath(), HomePath)
	}
}

func TestPauseFreezesOrbit(t *testing.T) {
	router, sched := newRouter()
	if err := router.Navigate(PlanetsPath); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	room := router.Current()

	// Establish the time base, then pause.
	if err := sched.Pump(0); err != nil {
		t.Fatalf("Pump: %v", err)
	}
	room.SetPaused(true)
	before := room.Root().Find("earth").Position
	for i := 1; i <= 5; i++ {
		if err := sched.Pump(time.Duration(i) * 100 * time.Millisecond); err != nil {
			t.Fatalf("Pump: %v", err)
		}
	}
	if after := room.Root().Find("earth").Position; after != before {
		t.Error("earth moved while paused")
	}
}
