package engine

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/vetrina/engine/animation"
	"github.com/spaghettifunk/vetrina/engine/assets"
	"github.com/spaghettifunk/vetrina/engine/core"
	"github.com/spaghettifunk/vetrina/engine/decoder"
	"github.com/spaghettifunk/vetrina/engine/platform"
	"github.com/spaghettifunk/vetrina/engine/systems"
)

type Stage uint8

const (
	// Viewer is in an uninitialized state
	ViewerStageUninitialized Stage = iota
	// Viewer is currently initializing
	ViewerStageInitializing
	// Viewer initialization is complete
	ViewerStageInitialized
	// Viewer is currently running
	ViewerStageRunning
	// Viewer is in the process of shutting down
	ViewerStageShuttingDown
)

/**
 * @brief Viewer wires the core together for the demo application: the
 * decoder binding feeds the load controller, the controller publishes to
 * the animation driver, and the window loop advances the driver once per
 * frame. The asset watcher supplies the raw bytes.
 */
type Viewer struct {
	currentStage Stage
	config       *ViewerConfig
	platform     *platform.Platform
	driver       *animation.Driver
	controller   *systems.LoadController
	watcher      *assets.Watcher
	clock        *core.Clock
	results      <-chan systems.PublishedResult
	lastTime     float64
	isRunning    bool
}

func New(config *ViewerConfig, codec decoder.Codec) (*Viewer, error) {
	p, err := platform.New()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	binding, err := decoder.NewBinding(codec, decoder.Config{
		DecompressorEndpoint: config.Decoder.DecompressorEndpoint,
		Timeout:              time.Duration(config.Decoder.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	driver := animation.NewDriver()
	disposer := systems.NewDisposer(systems.BasicMaterialReleaser{})
	controller, err := systems.NewLoadController(systems.LoadControllerConfig{
		DecodeWorkers: config.Decoder.Workers,
		QueueSize:     config.Decoder.QueueSize,
	}, binding, disposer, driver)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	watcher, err := assets.NewWatcher(config.Asset.Path, controller)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Viewer{
		currentStage: ViewerStageUninitialized,
		config:       config,
		platform:     p,
		driver:       driver,
		controller:   controller,
		watcher:      watcher,
		clock:        core.NewClock(),
		isRunning:    true,
	}, nil
}

// Controller exposes the load controller so hosts embedding the viewer can
// submit bytes directly instead of going through the file watcher.
func (v *Viewer) Controller() *systems.LoadController {
	return v.controller
}

// Driver exposes the animation driver for external render loops.
func (v *Viewer) Driver() *animation.Driver {
	return v.driver
}

func (v *Viewer) Initialize() error {
	v.currentStage = ViewerStageInitializing

	core.SetLogLevel(v.config.ParsedLogLevel())

	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, v, v.onQuit)

	if err := v.platform.Startup(v.config.Name,
		v.config.Window.PosX,
		v.config.Window.PosY,
		v.config.Window.Width,
		v.config.Window.Height); err != nil {
		return err
	}

	// Registered before the watcher's initial load so the first publish is
	// not missed.
	v.results = v.controller.Watch()

	if err := v.watcher.Start(); err != nil {
		return err
	}

	v.currentStage = ViewerStageInitialized
	return nil
}

// Run drives the frame loop: pump window events, advance the mixer by the
// frame delta, track frame metrics. Blocks until the window closes or a
// quit event fires.
func (v *Viewer) Run() error {
	v.currentStage = ViewerStageRunning
	v.clock.Start()
	v.clock.Update()
	v.lastTime = v.clock.Elapsed()

	for v.isRunning && v.platform.PumpMessages() {
		v.clock.Update()
		now := v.clock.Elapsed()
		delta := now - v.lastTime
		v.lastTime = now

		v.driver.Advance(float32(delta))
		core.MetricsUpdate(delta)
		v.drainResults()

		// No renderer is attached in the demo loop; cap the tick rate.
		time.Sleep(8 * time.Millisecond)
	}

	return v.Shutdown()
}

// drainResults applies published-result changes that must happen on the
// main thread, like the window title.
func (v *Viewer) drainResults() {
	for {
		select {
		case result, ok := <-v.results:
			if !ok {
				return
			}
			if result.Empty() {
				v.platform.SetTitle(v.config.Name)
				continue
			}
			title := fmt.Sprintf("%s | %d mesh(es)", v.config.Name, len(result.Meshes))
			if result.Mixer != nil {
				title += " ▶"
			}
			v.platform.SetTitle(title)
		default:
			return
		}
	}
}

func (v *Viewer) Shutdown() error {
	if v.currentStage == ViewerStageShuttingDown {
		return nil
	}
	v.currentStage = ViewerStageShuttingDown
	v.isRunning = false

	if err := v.watcher.Close(); err != nil {
		core.LogError(err.Error())
	}
	if err := v.controller.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := core.EventSystemShutdown(); err != nil {
		core.LogError(err.Error())
	}
	return v.platform.Shutdown()
}

func (v *Viewer) onQuit(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	core.LogInfo("quit requested")
	v.isRunning = false
	return true
}
