// Package app wires the window, renderer, camera and attic scene into the
// interactive viewer loop.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/attic3d/internal/assets"
	"github.com/Faultbox/attic3d/internal/config"
	"github.com/Faultbox/attic3d/internal/engine/camera"
	"github.com/Faultbox/attic3d/internal/engine/debug"
	"github.com/Faultbox/attic3d/internal/engine/input"
	"github.com/Faultbox/attic3d/internal/engine/renderer"
	"github.com/Faultbox/attic3d/internal/engine/scene"
	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/internal/engine/shader/shaders"
	"github.com/Faultbox/attic3d/internal/engine/window"
	"github.com/Faultbox/attic3d/internal/logger"
	"github.com/Faultbox/attic3d/internal/watch"
)

// Title is the window title.
const Title = "Attic"

// App is the interactive viewer.
type App struct {
	cfg     *config.Config
	running bool
	start   time.Time

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	program  *shader.Program
	assets   *assets.Manager
	scene    *scene.Manager
	camera   *camera.CameraState
	shots    *debug.ScreenshotCapture
	watcher  *watch.Watcher

	log *zap.Logger
}

// New creates the window, GL state and scene. On error everything created
// so far is released.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, log: logger.Named("app")}
	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init() error {
	cfg := a.cfg
	var err error

	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:        Title,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		CaptureMouse: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		ClearColor: renderer.DefaultClearColor,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	vert, frag := shaders.SceneVertexShader, shaders.SceneFragmentShader
	if cfg.Dev.WatchShaders {
		if v, f, loadErr := shaders.LoadScene(cfg.Dev.ShaderDir); loadErr == nil {
			vert, frag = v, f
		} else {
			a.log.Warn("using embedded shaders", zap.Error(loadErr))
		}
	}
	a.program, err = shader.NewProgram(vert, frag)
	if err != nil {
		return fmt.Errorf("failed to build scene program: %w", err)
	}

	a.assets = assets.NewManager(cfg.Assets.Roots...)
	a.scene, err = scene.New(scene.Config{
		ShadowResolution: cfg.Shadows.Resolution,
		ShadowsEnabled:   cfg.Shadows.Enabled,
		GlobalAmbient:    cfg.Lighting.GlobalAmbient,
		DeskLamp:         cfg.Lighting.DeskLamp,
		DecodeWorkers:    cfg.Assets.DecodeWorkers,
	}, a.assets.Load)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	if prepErr := a.scene.Prepare(context.Background()); prepErr != nil {
		a.log.Warn("scene prepared with missing textures",
			zap.Strings("roots", a.assets.Roots()),
			zap.Error(prepErr),
		)
	}

	a.camera = camera.Default()
	a.camera.Zoom = cfg.Camera.FOV
	a.camera.Speed = cfg.Camera.Speed
	a.camera.Sensitivity = cfg.Camera.Sensitivity
	a.camera.Near, a.camera.Far = cfg.Camera.Near, cfg.Camera.Far
	a.camera.OrthoSize = cfg.Camera.OrthoSize

	format, fmtErr := debug.ParseFormat(cfg.Screenshots.Format)
	if fmtErr != nil {
		a.log.Warn("screenshots fall back to PNG", zap.Error(fmtErr))
		format = debug.PNG
	}
	a.shots = debug.NewScreenshotCapture(cfg.Screenshots.Dir, "attic", format)

	if cfg.Dev.WatchShaders {
		a.watcher, err = watch.Dir(cfg.Dev.ShaderDir, []string{".vert", ".frag"}, a.log.Named("watch"))
		if err != nil {
			a.log.Warn("shader hot reload disabled", zap.Error(err))
			a.watcher = nil
		}
	}

	a.input = input.New()

	a.log.Info("viewer initialized")
	return nil
}

// Run starts the main loop and returns when the window closes or Esc is
// pressed.
func (a *App) Run() error {
	a.running = true
	a.start = time.Now()

	lastTime := a.start
	frameCount := 0
	fpsTimer := a.start

	a.log.Info("starting render loop")

	for a.running {
		// Calculate delta time
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}

		screenshot := false
		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.renderer.Resize(a.window.DrawableSize())
			case input.EventKeyDown:
				switch event.Key {
				case keyQuit:
					a.running = false
				case keyScreenshot:
					screenshot = true
				}
			}
		}

		// 2. Update camera and pending shader edits
		camera.Update(a.camera, cameraInput(a.input, true), dt)
		a.reloadShaders()

		// 3. Render
		a.render(now.Sub(a.start))
		if screenshot {
			a.screenshot()
		}

		// 4. Present (swap buffers)
		a.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			if a.cfg.Graphics.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s - %d fps", Title, frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// render draws one frame: camera uniforms, then both scene passes.
func (a *App) render(elapsed time.Duration) {
	a.program.Use()
	camera.Apply(a.program, a.camera, a.renderer.Aspect())
	a.scene.Render(a.program, a.renderer, elapsed)
}

func (a *App) screenshot() {
	pix, w, h := a.renderer.ReadPixels()
	name, err := a.shots.CaptureFromPixels(pix, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", name))
}

// reloadShaders rebuilds the program when the watcher has seen an edit.
// A broken edit keeps the running program.
func (a *App) reloadShaders() {
	if a.watcher == nil {
		return
	}
	changed := a.watcher.Pending()
	if len(changed) == 0 {
		return
	}
	vert, frag, err := shaders.LoadScene(a.cfg.Dev.ShaderDir)
	if err == nil {
		err = a.program.Reload(vert, frag)
	}
	if err != nil {
		a.log.Error("shader reload failed", zap.Strings("changed", changed), zap.Error(err))
	}
}

// Close releases everything in reverse creation order.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.assets != nil {
		a.assets.Close()
	}
	if a.program != nil {
		a.program.Delete()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
