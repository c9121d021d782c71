// Package opengl provides an OpenGL 4.1 backend for the dnd engine: a GLFW
// input adapter that produces gesture events and a flat-color rectangle
// renderer for list rows, placeholders and drag previews.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/dnd"
)

// Vertex is one renderer vertex: position plus packed RGBA color.
type Vertex struct {
	Pos   [2]float32
	Color uint32
}

// batch is a run of vertices sharing one scissor rectangle.
type batch struct {
	clip  dnd.Rect
	first int32
	count int32
}

// Renderer draws solid rectangles in screen space. Rows are clipped to their
// container's bounds via scissor batches; the drag preview is drawn last,
// unclipped, so it can cross container edges.
type Renderer struct {
	shader   uint32
	vao, vbo uint32
	projLoc  int32
	width    int
	height   int

	verts   []Vertex
	batches []batch
	clip    dnd.Rect
	clipped bool
}

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    Color = aColor;
}
` + "\x00"

const fragmentShaderSource = `
#version 410 core
in vec4 Color;

out vec4 FragColor;

void main() {
    FragColor = Color;
}
` + "\x00"

// NewRenderer creates the renderer for an initial viewport size. Requires a
// current OpenGL 4.1 context.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height}

	var err error
	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(unsafe.Sizeof(Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(Vertex{}.Color))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return r, nil
}

// Resize updates the viewport size used for projection and scissoring.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Begin starts a new frame of rectangles.
func (r *Renderer) Begin() {
	r.verts = r.verts[:0]
	r.batches = r.batches[:0]
	r.clipped = false
}

// SetClip scissors subsequent rectangles to the given screen-space rect.
func (r *Renderer) SetClip(clip dnd.Rect) {
	r.clip = clip
	r.clipped = true
}

// ClearClip removes the scissor for subsequent rectangles.
func (r *Renderer) ClearClip() {
	r.clipped = false
}

// FillRect queues one solid rectangle. Color is packed RGBA, 0xRRGGBBAA.
func (r *Renderer) FillRect(rect dnd.Rect, rgba uint32) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	c := packColor(rgba)
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.W, rect.Y+rect.H

	first := int32(len(r.verts))
	r.verts = append(r.verts,
		Vertex{Pos: [2]float32{x0, y0}, Color: c},
		Vertex{Pos: [2]float32{x1, y0}, Color: c},
		Vertex{Pos: [2]float32{x1, y1}, Color: c},
		Vertex{Pos: [2]float32{x0, y0}, Color: c},
		Vertex{Pos: [2]float32{x1, y1}, Color: c},
		Vertex{Pos: [2]float32{x0, y1}, Color: c},
	)

	clip := dnd.Rect{W: float32(r.width), H: float32(r.height)}
	if r.clipped {
		clip = r.clip
	}
	if n := len(r.batches); n > 0 && r.batches[n-1].clip == clip {
		r.batches[n-1].count += 6
		return
	}
	r.batches = append(r.batches, batch{clip: clip, first: first, count: 6})
}

// StrokeRect queues a rectangle outline built from four fills.
func (r *Renderer) StrokeRect(rect dnd.Rect, thickness float32, rgba uint32) {
	t := thickness
	r.FillRect(dnd.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: t}, rgba)
	r.FillRect(dnd.Rect{X: rect.X, Y: rect.Y + rect.H - t, W: rect.W, H: t}, rgba)
	r.FillRect(dnd.Rect{X: rect.X, Y: rect.Y + t, W: t, H: rect.H - 2*t}, rgba)
	r.FillRect(dnd.Rect{X: rect.X + rect.W - t, Y: rect.Y + t, W: t, H: rect.H - 2*t}, rgba)
}

// Flush uploads and draws the queued rectangles, then restores the GL state
// it touched.
func (r *Renderer) Flush() error {
	if len(r.verts) == 0 {
		return nil
	}

	var lastProgram int32
	var lastScissorBox [4]int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])
	blendEnabled := gl.IsEnabled(gl.BLEND)
	scissorEnabled := gl.IsEnabled(gl.SCISSOR_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.shader)
	proj := orthoMatrix(0, float32(r.width), float32(r.height), 0, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.verts)*int(unsafe.Sizeof(Vertex{})),
		gl.Ptr(r.verts), gl.STREAM_DRAW)

	for _, b := range r.batches {
		// Scissor is specified bottom-up in GL.
		clipX := int32(b.clip.X)
		clipY := int32(float32(r.height) - b.clip.Y - b.clip.H)
		clipW := int32(b.clip.W)
		clipH := int32(b.clip.H)
		if clipX < 0 {
			clipW += clipX
			clipX = 0
		}
		if clipY < 0 {
			clipH += clipY
			clipY = 0
		}
		if clipW <= 0 || clipH <= 0 {
			continue
		}
		gl.Scissor(clipX, clipY, clipW, clipH)
		gl.DrawArrays(gl.TRIANGLES, b.first, b.count)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(uint32(lastProgram))
	if !blendEnabled {
		gl.Disable(gl.BLEND)
	}
	if !scissorEnabled {
		gl.Disable(gl.SCISSOR_TEST)
	}
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])

	return nil
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

// packColor converts 0xRRGGBBAA to the little-endian ABGR layout the vertex
// attribute expects.
func packColor(rgba uint32) uint32 {
	red := (rgba >> 24) & 0xFF
	green := (rgba >> 16) & 0xFF
	blue := (rgba >> 8) & 0xFF
	alpha := rgba & 0xFF
	return alpha<<24 | blue<<16 | green<<8 | red
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader compilation failed: %w", err)
	}
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment shader compilation failed: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}

	// Shaders are linked into the program now.
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		return 0, fmt.Errorf("%s", string(log))
	}
	return shader, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
