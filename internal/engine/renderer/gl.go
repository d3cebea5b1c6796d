package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/voxspace/roomwalk/internal/engine/camera"
	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
	"github.com/voxspace/roomwalk/internal/logger"
	"github.com/voxspace/roomwalk/pkg/math"
)

// Config holds GL renderer configuration.
type Config struct {
	Width  int
	Height int
}

// glBuffers are the GPU handles for one uploaded geometry.
type glBuffers struct {
	vao   uint32
	vbo   uint32
	count int32
	lines bool
}

// GL renders the scene graph through OpenGL 4.1 core.
// Must be created AFTER the GL context exists.
type GL struct {
	width, height int
	autoClear     bool

	program  uint32
	uMVP     int32
	uTint    int32
	uploaded map[*scenegraph.Geometry]*glBuffers
}

// NewGL creates the OpenGL renderer.
func NewGL(cfg Config) (*GL, error) {
	r := &GL{
		width:     cfg.Width,
		height:    cfg.Height,
		autoClear: true,
		uploaded:  make(map[*scenegraph.Geometry]*glBuffers),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	name := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", name),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.05, 0.05, 0.08, 1.0)

	var err error
	r.program, err = createProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.uMVP = gl.GetUniformLocation(r.program, gl.Str("uMVP\x00"))
	r.uTint = gl.GetUniformLocation(r.program, gl.Str("uTint\x00"))

	return r, nil
}

// Close releases the shader program and any geometry still uploaded.
func (r *GL) Close() {
	logger.Info("closing renderer")
	for geo, buf := range r.uploaded {
		gl.DeleteVertexArrays(1, &buf.vao)
		gl.DeleteBuffers(1, &buf.vbo)
		delete(r.uploaded, geo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// SetSize resizes the drawing surface and resets the viewport.
func (r *GL) SetSize(w, h int) {
	r.width = w
	r.height = h
	gl.Viewport(0, 0, int32(w), int32(h))
}

// Size returns the current drawing surface size.
func (r *GL) Size() (int, int) {
	return r.width, r.height
}

// SetViewport restricts drawing to a sub-rectangle.
func (r *GL) SetViewport(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

// Clear clears color and depth.
func (r *GL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ClearDepth clears the depth buffer only.
func (r *GL) ClearDepth() {
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// BindFramebuffer targets subsequent draws at fb (0 = default).
func (r *GL) BindFramebuffer(fb uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
}

// SetAutoClear controls whether Render clears first.
func (r *GL) SetAutoClear(on bool) {
	r.autoClear = on
}

// Render draws the graph rooted at root with cam.
func (r *GL) Render(root *scenegraph.Node, cam *camera.Camera) {
	if root.AutoUpdate {
		root.UpdateWorld(math.Identity())
	}
	if r.autoClear {
		r.Clear()
	}

	gl.UseProgram(r.program)
	vp := cam.ViewProjection()

	root.TraverseVisible(func(n *scenegraph.Node) {
		if n.Mesh == nil {
			return
		}
		buf := r.ensureUploaded(n.Mesh.Geometry)

		mvp := vp.Mul(n.World)
		gl.UniformMatrix4fv(r.uMVP, 1, false, mvp.Ptr())

		mat := n.Mesh.Material
		tint := [4]float32{mat.R, mat.G, mat.B, mat.Emissive}
		if mat.Highlight {
			// Hovered objects brighten.
			tint[3] = 0.35
		}
		gl.Uniform4fv(r.uTint, 1, &tint[0])

		gl.BindVertexArray(buf.vao)
		mode := uint32(gl.TRIANGLES)
		if buf.lines {
			mode = gl.LINES
		}
		gl.DrawArrays(mode, 0, buf.count)
		gl.BindVertexArray(0)
	})
}

// ensureUploaded uploads the geometry on first use and hooks its
// Dispose to free the GPU copy.
func (r *GL) ensureUploaded(geo *scenegraph.Geometry) *glBuffers {
	if buf, ok := r.uploaded[geo]; ok {
		return buf
	}

	buf := &glBuffers{
		count: int32(len(geo.Vertices) / 6),
		lines: geo.Lines,
	}

	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(geo.Vertices)*4, unsafe.Pointer(&geo.Vertices[0]), gl.STATIC_DRAW)

	// Position (location = 0), color (location = 1).
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.uploaded[geo] = buf
	geo.OnRelease(func() {
		gl.DeleteVertexArrays(1, &buf.vao)
		gl.DeleteBuffers(1, &buf.vbo)
		delete(r.uploaded, geo)
	})

	return buf
}

// createProgram compiles and links the scene shader.
func createProgram() (uint32, error) {
	vertexSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aColor;

		uniform mat4 uMVP;

		out vec3 vertexColor;

		void main() {
			gl_Position = uMVP * vec4(aPos, 1.0);
			vertexColor = aColor;
		}
	` + "\x00"

	fragmentSource := `
		#version 410 core

		in vec3 vertexColor;
		uniform vec4 uTint;
		out vec4 FragColor;

		void main() {
			vec3 base = vertexColor * uTint.rgb;
			FragColor = vec4(base + vec3(uTint.a), 1.0);
		}
	` + "\x00"

	vertex, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertex)

	fragment, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragment)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("link failed: %s", infoLog)
	}

	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("compile failed: %s", infoLog)
	}

	return shader, nil
}
