// Package renderer draws meshes with OpenGL 4.1 core.
package renderer

import (
	_ "embed"
	"fmt"
	gomath "math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/debug"
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/engine/shader"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

//go:embed shaders/mesh.vert
var meshVertSrc string

//go:embed shaders/mesh.frag
var meshFragSrc string

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	FOV        float32 // vertical, degrees
	Background [3]float32
	Wireframe  bool
	Mipmaps    bool
	Linear     bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program    *shader.Program
	lit        bool
	showBounds bool

	// lightDir points towards the light in view space.
	lightDir mgl32.Vec3
}

// Model is a mesh resident on the GPU.
type Model struct {
	vao, vbo, ebo uint32
	batches       []batch
	textures      map[*formats.TextureMap]uint32

	boundsVAO, boundsVBO uint32

	// Transform is the model matrix; Upload sets it to fit the mesh into
	// the cube [-1, 1].
	Transform math.Mat4
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		lit:      true,
		lightDir: mgl32.Vec3{0.4, 0.6, 1}.Normalize(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.CompileProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Debug("closing renderer")
	r.program.Delete()
}

// Resize sets the viewport to the framebuffer size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ToggleWireframe switches between filled and line rasterization.
func (r *Renderer) ToggleWireframe() {
	r.config.Wireframe = !r.config.Wireframe
}

// ToggleLighting switches between lit and flat shading.
func (r *Renderer) ToggleLighting() {
	r.lit = !r.lit
}

// ToggleBounds shows or hides the bounding box overlay.
func (r *Renderer) ToggleBounds() {
	r.showBounds = !r.showBounds
}

// SetLightDirection sets the direction towards the light, in view space.
func (r *Renderer) SetLightDirection(dir math.Vec3) {
	r.lightDir = mgl32.Vec3(dir.Array()).Normalize()
}

// ReadPixels returns the framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Projection returns the perspective matrix for the current viewport.
func (r *Renderer) Projection() math.Mat4 {
	aspect := float32(1)
	if r.config.Height > 0 {
		aspect = float32(r.config.Width) / float32(r.config.Height)
	}
	fov := r.config.FOV * gomath.Pi / 180
	return math.Perspective(fov, aspect, 0.01, 200)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// Upload copies a mesh and its textures to the GPU. Textures shared by
// several materials are uploaded once.
func (r *Renderer) Upload(mesh *model.Mesh, obj *formats.OBJ) (*Model, error) {
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("mesh has no triangles")
	}

	m := &Model{
		batches:   buildBatches(mesh, obj),
		textures:  make(map[*formats.TextureMap]uint32),
		Transform: mesh.NormalizeMatrix(),
	}

	vertices := mesh.Vertices()
	indices := mesh.Indices()

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(model.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.uploadBounds(m, mesh.Bounds)

	for _, tex := range textureSet(m.batches) {
		if tex.Width <= 0 || tex.Height <= 0 || len(tex.Pixels) < tex.Width*tex.Height*4 {
			r.log.Warn("skipping empty texture", zap.String("path", tex.Path))
			continue
		}
		m.textures[tex] = r.uploadTexture(tex)
	}

	r.log.Info("mesh uploaded",
		zap.Int("vertices", len(vertices)),
		zap.Int("triangles", len(mesh.Triangles)),
		zap.Int("batches", len(m.batches)),
		zap.Int("textures", len(m.textures)),
	)
	return m, nil
}

func (r *Renderer) uploadBounds(m *Model, b model.Bounds) {
	lines := debug.BBoxWireframeVertices(b.Min, b.Max)

	gl.GenVertexArrays(1, &m.boundsVAO)
	gl.BindVertexArray(m.boundsVAO)
	gl.GenBuffers(1, &m.boundsVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.boundsVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(lines)*4, unsafe.Pointer(&lines[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

func (r *Renderer) uploadTexture(tex *formats.TextureMap) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(tex.Width), int32(tex.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&tex.Pixels[0]))

	minFilter, magFilter := int32(gl.NEAREST), int32(gl.NEAREST)
	if r.config.Linear {
		minFilter, magFilter = gl.LINEAR, gl.LINEAR
	}
	if r.config.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		minFilter = gl.NEAREST_MIPMAP_NEAREST
		if r.config.Linear {
			minFilter = gl.LINEAR_MIPMAP_LINEAR
		}
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.log.Debug("texture uploaded",
		zap.String("path", tex.Path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return id
}

// Draw renders a model with the given view matrix.
func (r *Renderer) Draw(m *Model, view math.Mat4) {
	p := r.program
	p.Use()

	proj := r.Projection()
	modelView := view.Mul(m.Transform)
	normalMatrix := mgl32.Mat4(modelView).Mat3().Inv().Transpose()

	gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, &m.Transform[0])
	gl.UniformMatrix4fv(p.Uniform("uView"), 1, false, &view[0])
	gl.UniformMatrix4fv(p.Uniform("uProjection"), 1, false, &proj[0])
	gl.UniformMatrix3fv(p.Uniform("uNormalMatrix"), 1, false, &normalMatrix[0])
	gl.Uniform3fv(p.Uniform("uLightDir"), 1, &r.lightDir[0])
	gl.Uniform1i(p.Uniform("uLit"), boolToInt(r.lit))
	gl.Uniform1i(p.Uniform("uDiffuseMap"), 0)

	gl.BindVertexArray(m.vao)
	gl.ActiveTexture(gl.TEXTURE0)

	blending := false
	for _, b := range m.batches {
		if b.transparent() && !blending {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			gl.DepthMask(false)
			blending = true
		}
		r.applyMaterial(m, b.Material)
		gl.DrawElementsWithOffset(gl.TRIANGLES, b.IndexCount, gl.UNSIGNED_INT, uintptr(b.FirstIndex*4))
	}
	if blending {
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	if r.showBounds {
		r.drawBounds(m)
	}

	gl.BindVertexArray(0)
}

// drawBounds outlines the box with the mesh program, unlit and untextured.
// The program and matrices from Draw are still bound.
func (r *Renderer) drawBounds(m *Model) {
	p := r.program
	gl.Uniform1i(p.Uniform("uLit"), 0)
	r.applyMaterial(m, boundsMaterial)

	gl.BindVertexArray(m.boundsVAO)
	gl.DrawArrays(gl.LINES, 0, debug.BBoxWireframeVertexCount)
}

func (r *Renderer) applyMaterial(m *Model, mat materialUniforms) {
	p := r.program
	gl.Uniform3fv(p.Uniform("uAmbient"), 1, &mat.Ambient[0])
	gl.Uniform3fv(p.Uniform("uDiffuse"), 1, &mat.Diffuse[0])
	gl.Uniform3fv(p.Uniform("uSpecular"), 1, &mat.Specular[0])
	gl.Uniform3fv(p.Uniform("uEmissive"), 1, &mat.Emissive[0])
	gl.Uniform1f(p.Uniform("uShininess"), mat.Shininess)
	gl.Uniform1f(p.Uniform("uOpacity"), mat.Opacity)
	gl.Uniform1i(p.Uniform("uSpecularOn"), boolToInt(mat.SpecularOn))

	id, ok := m.textures[mat.DiffuseMap]
	gl.Uniform1i(p.Uniform("uHasDiffuseMap"), boolToInt(ok))
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// DeleteModel frees a model's GPU buffers and textures.
func (r *Renderer) DeleteModel(m *Model) {
	for _, id := range m.textures {
		gl.DeleteTextures(1, &id)
	}
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.boundsVBO)
	gl.DeleteVertexArrays(1, &m.boundsVAO)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
