// Package viewer implements the interactive mesh viewer loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/engine/debug"
	"github.com/Faultbox/objview/internal/engine/input"
	"github.com/Faultbox/objview/internal/engine/lighting"
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/engine/renderer"
	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/internal/engine/window"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/formats"
)

// Viewer owns the window, the GPU model and the camera for one OBJ file.
type Viewer struct {
	cfg   *config.Config
	log   *zap.Logger
	title string

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	model    *renderer.Model
	shots    *debug.ScreenshotCapture
}

// Scene is a loaded OBJ file ready for upload.
type Scene struct {
	Mesh    *model.Mesh
	OBJ     *formats.OBJ
	Library *formats.MaterialLibrary
}

// LoadScene parses the OBJ file at path with the texture and mesh settings
// from cfg.
func LoadScene(cfg *config.Config, path string) (*Scene, error) {
	lib := formats.NewMaterialLibrary(
		&texture.Decoder{MaxSize: cfg.Textures.MaxSize},
		formats.WithLogger(logger.Named("formats")),
	)
	mesh, obj, err := model.LoadFile(path, lib, model.BuildOptions{
		GenerateNormals: cfg.Viewer.GenerateNormals,
	})
	if err != nil {
		return nil, err
	}
	return &Scene{Mesh: mesh, OBJ: obj, Library: lib}, nil
}

// New loads path and opens a window showing it.
func New(cfg *config.Config, path string) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		log:    logger.Named("viewer"),
		title:  "objview - " + filepath.Base(path),
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		shots:  debug.NewScreenshotCapture(cfg.Viewer.ScreenshotDir, "objview"),
	}
	v.camera.DragSensitivity = cfg.Viewer.OrbitSpeed
	v.camera.ZoomSensitivity = cfg.Viewer.ZoomSpeed

	start := time.Now()
	scene, err := LoadScene(cfg, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	hits, misses := scene.Library.CacheStats()
	v.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", scene.Mesh.VertexCount()),
		zap.Int("triangles", len(scene.Mesh.Triangles)),
		zap.Int("materials", len(scene.Library.Materials())),
		zap.Int("textures", scene.Library.TextureCount()),
		zap.Int("texture_cache_hits", hits),
		zap.Int("texture_cache_misses", misses),
		zap.Duration("elapsed", time.Since(start)),
	)

	// The window also creates the OpenGL context.
	v.window, err = window.New(window.Config{
		Title:      v.title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		MSAA:       cfg.Window.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		FOV:        cfg.Viewer.FOV,
		Background: cfg.Viewer.Background,
		Wireframe:  cfg.Viewer.Wireframe,
		Mipmaps:    cfg.Textures.Mipmaps,
		Linear:     cfg.Textures.Linear,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.SetLightDirection(lighting.Direction(cfg.Viewer.LightAzimuth, cfg.Viewer.LightElevation))
	if cfg.Viewer.ShowBounds {
		v.renderer.ToggleBounds()
	}

	v.model, err = v.renderer.Upload(scene.Mesh, scene.OBJ)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to upload %s: %w", path, err)
	}

	return v, nil
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Debug("starting render loop")

	for {
		if v.input.Update() {
			return nil
		}
		for _, event := range v.input.Events() {
			v.handle(event)
		}

		v.renderer.Begin()
		v.renderer.Draw(v.model, v.camera.ViewMatrix())
		v.renderer.End()
		v.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s (%d fps)", v.title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (v *Viewer) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		v.renderer.Resize(v.window.DrawableSize())
	case input.EventDrag:
		v.camera.HandleDrag(event.DX, event.DY)
	case input.EventPan:
		v.camera.HandlePan(event.DX, event.DY)
	case input.EventZoom:
		v.camera.HandleZoom(event.Wheel)
	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_F:
			v.renderer.ToggleWireframe()
		case sdl.SCANCODE_L:
			v.renderer.ToggleLighting()
		case sdl.SCANCODE_B:
			v.renderer.ToggleBounds()
		case sdl.SCANCODE_R:
			v.camera.Reset()
		case sdl.SCANCODE_P:
			v.screenshot()
		}
	}
}

// screenshot saves the last presented frame.
func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Debug("closing viewer")

	if v.renderer != nil {
		if v.model != nil {
			v.renderer.DeleteModel(v.model)
		}
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
