package solar

import (
	"fmt"
	"log/slog"

	"github.com/goki/mat32"
)

type FocusMode int

const (
	Overview FocusMode = iota
	Focused
)

func (m FocusMode) String() string {
	if m == Focused {
		return "focused"
	}
	return "overview"
}

// FocusState is the controller's camera state; BodyID is empty in Overview.
type FocusState struct {
	Mode   FocusMode
	BodyID string
}

// InfoDisplay presents a body's descriptor to the user.
type InfoDisplay interface {
	ShowDescriptor(d *Descriptor)
	Hide()
}

// AmbientPlayer plays one looping sound at a time.
type AmbientPlayer interface {
	PlayLoop(ref string) error
	Stop()
}

type nopInfo struct{}

func (nopInfo) ShowDescriptor(*Descriptor) {}
func (nopInfo) Hide()                      {}

type nopAudio struct{}

func (nopAudio) PlayLoop(string) error { return nil }
func (nopAudio) Stop()                 {}

// Transition is an in-flight camera move. BodyID is empty when heading
// to the overview pose.
type Transition struct {
	BodyID   string
	Position Tween
	Target   Tween
}

// FocusController runs the Overview/Focused state machine and moves the
// camera between poses.
type FocusController struct {
	scene *SolarSystemScene
	cam   *Camera
	cfg   CameraConfig
	ease  Easing
	info  InfoDisplay
	audio AmbientPlayer
	bus   *EventBus
	log   *slog.Logger

	state  FocusState
	active *Transition
	last   mat32.Vec3 // focused body centre at the previous update
}

// NewFocusController wires a controller; nil collaborators are replaced
// with no-ops.
func NewFocusController(scene *SolarSystemScene, cam *Camera, cfg CameraConfig, info InfoDisplay, audio AmbientPlayer, bus *EventBus, log *slog.Logger) (*FocusController, error) {
	ease, err := EasingByName(cfg.Easing)
	if err != nil {
		return nil, fmt.Errorf("camera config: %w", err)
	}
	if info == nil {
		info = nopInfo{}
	}
	if audio == nil {
		audio = nopAudio{}
	}
	if bus == nil {
		bus = NewEventBus()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &FocusController{
		scene: scene,
		cam:   cam,
		cfg:   cfg,
		ease:  ease,
		info:  info,
		audio: audio,
		bus:   bus,
		log:   log,
	}, nil
}

func (fc *FocusController) State() FocusState { return fc.state }

// Active returns the in-flight transition, or nil once it has completed.
func (fc *FocusController) Active() *Transition { return fc.active }

// FocusPose returns where the camera sits and looks when focused on b.
func (fc *FocusController) FocusPose(b *Body) (pos, target mat32.Vec3) {
	target = b.WorldPos()
	off := fc.cfg.FocusOffset.MulScalar(float32(b.DisplayRadius) * fc.cfg.FocusOffsetFactor)
	return target.Add(off), target
}

// Focus starts a transition toward the body with the given id, replacing
// any transition in flight. An unknown id leaves the state unchanged.
func (fc *FocusController) Focus(id string) error {
	b, ok := fc.scene.Body(id)
	if !ok {
		fc.log.Warn("selection rejected", "body", id)
		fc.bus.Emit(Event{Type: EventSelectionRejected, BodyID: id})
		return fmt.Errorf("focus %q: %w", id, ErrInvalidSelection)
	}

	dur := fc.cfg.FocusDuration
	if b.IsPrimary() {
		dur = fc.cfg.StarFocusDuration
	}
	pos, target := fc.FocusPose(b)
	fc.active = &Transition{
		BodyID:   id,
		Position: NewTween(fc.cam.Pos, pos, dur, fc.ease),
		Target:   NewTween(fc.cam.Target, target, dur, fc.ease),
	}
	fc.state = FocusState{Mode: Focused, BodyID: id}
	fc.last = target

	fc.audio.Stop()
	if ref := b.Desc.Sound; ref != "" {
		if err := fc.audio.PlayLoop(ref); err != nil {
			fc.log.Warn("ambient sound unavailable", "body", id, "err", err)
		}
	}
	fc.info.ShowDescriptor(b.Desc)
	fc.log.Debug("focus", "body", id, "duration", dur)
	fc.bus.Emit(Event{Type: EventFocusChanged, BodyID: id})
	return nil
}

// Select focuses the body at index in selection order.
func (fc *FocusController) Select(index int) error {
	bodies := fc.scene.Bodies()
	if index < 0 || index >= len(bodies) {
		fc.log.Warn("selection rejected", "index", index)
		fc.bus.Emit(Event{Type: EventSelectionRejected})
		return fmt.Errorf("select %d: %w", index, ErrInvalidSelection)
	}
	return fc.Focus(bodies[index].ID())
}

// ViewOverview returns the camera to the overview pose and silences the
// ambient sound.
func (fc *FocusController) ViewOverview() {
	fc.audio.Stop()
	fc.info.Hide()
	fc.active = &Transition{
		Position: NewTween(fc.cam.Pos, fc.cfg.OverviewPosition, fc.cfg.OverviewDuration, fc.ease),
		Target:   NewTween(fc.cam.Target, fc.cfg.OverviewTarget, fc.cfg.OverviewDuration, fc.ease),
	}
	fc.state = FocusState{Mode: Overview}
	fc.log.Debug("overview", "duration", fc.cfg.OverviewDuration)
	fc.bus.Emit(Event{Type: EventOverviewRequested})
}

// Update steps the active transition by dt. While focused the transition
// end points track the body, and once it completes the camera keeps its
// offset from the moving body.
func (fc *FocusController) Update(dt float64) {
	var center mat32.Vec3
	var body *Body
	if fc.state.Mode == Focused {
		body, _ = fc.scene.Body(fc.state.BodyID)
		center = body.WorldPos()
	}

	if a := fc.active; a != nil {
		if body != nil {
			a.Position.To, a.Target.To = fc.FocusPose(body)
		}
		fc.cam.Pos = a.Position.Step(dt)
		target := a.Target.Step(dt)
		if a.Position.Done() && a.Target.Done() {
			fc.active = nil
		}
		fc.cam.LookAt(target, fc.cam.Up)
		fc.last = center
		return
	}

	if body != nil {
		fc.cam.Pos.SetAdd(center.Sub(fc.last))
		fc.cam.LookAt(center, fc.cam.Up)
		fc.last = center
	}
}

// SetOrbitHighlight recolours the orbit paths; focus is unaffected.
func (fc *FocusController) SetOrbitHighlight(on bool) {
	fc.scene.SetOrbitHighlight(on)
	fc.bus.Emit(Event{Type: EventHighlightToggled, On: on})
}

func (fc *FocusController) ToggleOrbitHighlight() {
	fc.SetOrbitHighlight(!fc.scene.OrbitHighlight())
}
