// Package renderer defines the rendering interface the frame loop
// drives and its OpenGL implementation.
package renderer

import (
	"github.com/voxspace/roomwalk/internal/engine/camera"
	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
)

// Renderer is what the frame loop needs from a rendering backend. The
// GL implementation lives in this package; tests substitute a recorder.
type Renderer interface {
	// Render draws the graph rooted at root with cam. When autoClear is
	// enabled the frame is cleared first.
	Render(root *scenegraph.Node, cam *camera.Camera)
	// Clear clears color and depth.
	Clear()
	// ClearDepth clears the depth buffer only (between per-eye passes).
	ClearDepth()
	// SetViewport restricts drawing to a sub-rectangle.
	SetViewport(x, y, w, h int)
	// SetSize resizes the drawing surface and resets the viewport.
	SetSize(w, h int)
	// Size returns the current drawing surface size.
	Size() (w, h int)
	// BindFramebuffer targets subsequent draws at fb (0 = default).
	BindFramebuffer(fb uint32)
	// SetAutoClear controls whether Render clears first. The XR path
	// turns it off and clears explicitly per framebuffer.
	SetAutoClear(on bool)
}
