package game

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"solarsystem/internal/assets"
	"solarsystem/internal/config"
	"solarsystem/internal/solar"
	"solarsystem/internal/ui"
)

// loadScene reads the body table and builds the scene graph and clock.
func loadScene(cfg config.Config) (*solar.SolarSystemScene, *solar.Clock, error) {
	var (
		cat solar.Catalog
		err error
	)
	if cfg.Assets.Bodies != "" {
		cat, err = solar.LoadCatalog(cfg.Assets.Bodies)
	} else {
		cat, err = solar.DefaultCatalog()
	}
	if err != nil {
		return nil, nil, err
	}
	scene, err := solar.Build(cat, cfg.Display)
	if err != nil {
		return nil, nil, err
	}
	clock, err := solar.NewClock(scene, cfg.Rates)
	if err != nil {
		return nil, nil, err
	}
	return scene, clock, nil
}

func RunDesktop() {
	runtime.LockOSThread()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := cfg.Logger(os.Stderr)

	scene, clock, err := loadScene(cfg)
	if err != nil {
		var be *solar.BuildError
		if errors.As(err, &be) {
			log.Error("invalid body table", "body", be.Body, "field", be.Field, "reason", be.Reason)
		} else {
			log.Error("load scene", "err", err)
		}
		os.Exit(1)
	}
	log.Info("scene built", "bodies", len(scene.Bodies()), "reference", scene.Reference().ID())

	window, err := initWindow(cfg.Window)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}
	log.Debug("gl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	store := assets.Store{Root: cfg.Assets.Root}

	// Audio is optional; the controller falls back to silence.
	var ambient solar.AmbientPlayer
	var audio *AudioSystem
	if cfg.Audio.Enabled {
		audio, err = InitAudio(store, cfg.Audio.Volume, log)
		if err != nil {
			log.Warn("audio init failed, continuing without sound", "err", err)
		} else {
			ambient = audio
			defer audio.Close()
		}
	}

	params := cfg.Simulation
	cam := solar.NewCamera(cfg.Camera)
	bus := solar.NewEventBus()

	names := make([]string, 0, len(scene.Bodies()))
	for _, b := range scene.Bodies() {
		names = append(names, b.Desc.Name)
	}
	hud := &HUD{Panel: &ui.Panel{}, Toast: &ui.Toast{}}

	focus, err := solar.NewFocusController(scene, cam, cfg.Camera, hud.Panel, ambient, bus, log)
	if err != nil {
		panic(fmt.Errorf("focus controller: %w", err))
	}

	bus.Subscribe(solar.EventSelectionRejected, func(e solar.Event) {
		hud.Toast.Show("No such body", ToastDuration)
	})
	bus.Subscribe(solar.EventHighlightToggled, func(e solar.Event) {
		if e.On {
			hud.Toast.Show("Orbit highlight on", ToastDuration)
		} else {
			hud.Toast.Show("Orbit highlight off", ToastDuration)
		}
	})
	if audio != nil && cfg.Audio.Click {
		bus.Subscribe(solar.EventFocusChanged, func(solar.Event) { audio.PlayClick() })
		bus.Subscribe(solar.EventOverviewRequested, func(solar.Event) { audio.PlayClick() })
	}

	// Renderer.
	loader := assets.NewLoader(store, cfg.Assets.MaxDecoders, MaxTextureSize, TextureQueueDepth, log)
	textures := NewTextureCache(loader, log)
	defer textures.Destroy()
	rend, err := NewRenderer(textures, cfg.Assets.Background)
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		panic(fmt.Errorf("font: %w", err))
	}

	// Queue every texture up front so they stream in while the scene runs.
	loader.Request(cfg.Assets.Background)
	scene.Root.Walk(func(n *solar.Node) bool {
		if rd := n.Render; rd != nil {
			loader.Request(rd.Texture)
			loader.Request(rd.BumpMap)
			loader.Request(rd.AlphaMap)
		}
		return true
	})

	fbW, fbH := window.GetFramebufferSize()
	cam.SetViewport(fbW, fbH)
	hud.Relayout(fbW, fbH, names)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		cam.SetViewport(w, h)
		if w > 0 && h > 0 {
			hud.Relayout(w, h, names)
		}
	})

	input := NewInput(window)

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > MaxFrameDelta {
			dt = MaxFrameDelta
		}

		glfw.PollEvents()
		if input.JustPressed(window, glfw.KeyEscape) {
			window.SetShouldClose(true)
		}
		fbW, fbH = window.GetFramebufferSize()

		handleKeys(window, input, focus, &params, cam, dt)
		handlePointer(window, input, hud, focus, &params, cam, cfg.Camera, fbW, fbH)

		if err := clock.Advance(dt, params.Speed); err != nil {
			panic(fmt.Errorf("clock: %w", err))
		}
		scene.SetLightIntensity(float32(params.LightIntensity))
		scene.UpdateWorld()
		focus.Update(dt)
		cam.UpdateMatrix()
		hud.Toast.Update(dt)

		textures.Upload(UploadsPerFrame)
		if fbW > 0 && fbH > 0 {
			rend.DrawScene(scene, cam, fbW, fbH)
			RenderHUD(rend, hud, scene, focus.State(), &params, fbW, fbH)
		}

		window.SwapBuffers()
	}
	log.Info("exit", "simulated_seconds", clock.Elapsed())
}

var digitKeys = [10]glfw.Key{
	glfw.Key0, glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4,
	glfw.Key5, glfw.Key6, glfw.Key7, glfw.Key8, glfw.Key9,
}

func handleKeys(window *glfw.Window, input *Input, focus *solar.FocusController, params *solar.Parameters, cam *solar.Camera, dt float64) {
	for i, k := range digitKeys {
		if input.JustPressed(window, k) {
			// Rejections are logged and toasted by the controller.
			_ = focus.Select(i)
		}
	}
	if input.JustPressed(window, glfw.KeyO) {
		focus.ViewOverview()
	}
	if input.JustPressed(window, glfw.KeyH) {
		focus.ToggleOrbitHighlight()
	}
	if input.JustPressed(window, glfw.KeyMinus) {
		params.NudgeSpeed(-1)
	}
	if input.JustPressed(window, glfw.KeyEqual) {
		params.NudgeSpeed(1)
	}
	if input.JustPressed(window, glfw.KeyLeftBracket) {
		params.NudgeLight(-1)
	}
	if input.JustPressed(window, glfw.KeyRightBracket) {
		params.NudgeLight(1)
	}

	if focus.Active() != nil {
		return
	}
	step := float32(KeyOrbitDegPerSec * dt)
	if input.Held(window, glfw.KeyLeft) {
		cam.Orbit(step, 0)
	}
	if input.Held(window, glfw.KeyRight) {
		cam.Orbit(-step, 0)
	}
	if input.Held(window, glfw.KeyUp) {
		cam.Orbit(0, step)
	}
	if input.Held(window, glfw.KeyDown) {
		cam.Orbit(0, -step)
	}
}

// handlePointer routes the mouse to the HUD first; presses that miss it
// drag the camera around its target, and the wheel zooms.
func handlePointer(window *glfw.Window, input *Input, hud *HUD, focus *solar.FocusController, params *solar.Parameters, cam *solar.Camera, camCfg solar.CameraConfig, fbW, fbH int) {
	x, y, dx, dy := input.Cursor(window, fbW, fbH)
	fx, fy := float32(x), float32(y)
	hud.Hover = hud.Layout.HitTest(fx, fy)

	down := window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	switch {
	case input.JustClicked(window, glfw.MouseButtonLeft):
		h := hud.Pointer.Press(hud.Layout, fx, fy)
		switch h.Kind {
		case ui.HitBody:
			_ = focus.Select(h.Index)
		case ui.HitOverview:
			focus.ViewOverview()
		case ui.HitHighlight:
			focus.ToggleOrbitHighlight()
		}
	case !down:
		hud.Pointer.Release()
	}

	if i, ok := hud.Pointer.Dragging(); ok {
		v := hud.Layout.Sliders[i].ValueAt(fx)
		switch i {
		case ui.SliderSpeed:
			params.SetSpeed(v)
		case ui.SliderLight:
			params.SetLightIntensity(v)
		}
		return
	}

	if focus.Active() != nil {
		input.TakeScroll()
		return
	}
	if down && hud.Hover.Kind == ui.HitNone && (dx != 0 || dy != 0) {
		cam.Orbit(-float32(dx)*camCfg.OrbitSpeed, float32(dy)*camCfg.OrbitSpeed)
	}
	if s := input.TakeScroll(); s != 0 && hud.Hover.Kind == ui.HitNone {
		cam.Zoom(-float32(s) * camCfg.ZoomSpeed / ScrollZoomStep)
	}
}
