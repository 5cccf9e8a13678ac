package systems

import (
	"context"
	"errors"
	"sync"

	"github.com/spaghettifunk/vetrina/engine/animation"
	"github.com/spaghettifunk/vetrina/engine/core"
	"github.com/spaghettifunk/vetrina/engine/decoder"
	"github.com/spaghettifunk/vetrina/engine/math"
	"github.com/spaghettifunk/vetrina/engine/scene"
)

type LoadState uint8

const (
	// No input has been submitted yet.
	StateIdle LoadState = iota
	// A decode for the current generation is in flight.
	StateLoading
	// A result (possibly empty) is published for the current generation.
	StatePublished
	// The controller has been shut down. No further transitions occur.
	StateDisposed
)

var ErrControllerDisposed = errors.New("load controller has been disposed")

/**
 * @brief The only state visible outside the controller: the published scene
 * (nil when empty), its mesh nodes in traversal order, and the mixer handle
 * (nil when the scene carries no animation clips).
 */
type PublishedResult struct {
	Scene  *scene.Scene
	Meshes []*scene.Node
	Mixer  *animation.Mixer
}

// Empty reports whether nothing is published.
func (r PublishedResult) Empty() bool {
	return r.Scene == nil
}

/** @brief The configuration for the load controller. */
type LoadControllerConfig struct {
	/** @brief Number of decode workers. Defaults to 1. */
	DecodeWorkers int
	/** @brief Decode queue depth. Defaults to 4. */
	QueueSize int
}

/**
 * @brief LoadController owns the load/transform/dispose lifecycle of one
 * viewable asset. New input supersedes whatever is in flight or published:
 * the previous generation's resources are torn down before the next load
 * starts, and decode completions for superseded generations are discarded
 * unused. All transitions run under one mutex, so no two of them interleave
 * mid-step.
 */
type LoadController struct {
	decoder  decoder.Decoder
	disposer *Disposer
	driver   *animation.Driver
	jobs     *JobSystem

	// cancelled on shutdown so an in-flight decode against the network
	// service can unblock.
	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      LoadState
	generation uint64
	published  PublishedResult
	watchers   []chan PublishedResult
}

func NewLoadController(config LoadControllerConfig, dec decoder.Decoder, disposer *Disposer, driver *animation.Driver) (*LoadController, error) {
	if dec == nil {
		return nil, errors.New("load controller requires a decoder")
	}
	if disposer == nil {
		return nil, errors.New("load controller requires a disposer")
	}
	if driver == nil {
		return nil, errors.New("load controller requires an animation driver")
	}

	workers := config.DecodeWorkers
	if workers <= 0 {
		workers = 1
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 4
	}
	jobs, err := NewJobSystem(workers, queueSize)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &LoadController{
		decoder:  dec,
		disposer: disposer,
		driver:   driver,
		jobs:     jobs,
		ctx:      ctx,
		cancel:   cancel,
		state:    StateIdle,
	}, nil
}

func (lc *LoadController) State() LoadState {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.state
}

func (lc *LoadController) Generation() uint64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.generation
}

// Result returns a snapshot of the currently published result.
func (lc *LoadController) Result() PublishedResult {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.snapshotLocked()
}

// Watch returns a channel receiving a snapshot after every publish and
// every teardown-to-empty. The channel is buffered; a slow consumer misses
// intermediate snapshots rather than blocking the controller. It is closed
// on shutdown.
func (lc *LoadController) Watch() <-chan PublishedResult {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	ch := make(chan PublishedResult, 8)
	lc.watchers = append(lc.watchers, ch)
	return ch
}

// Submit feeds new raw asset bytes to the controller, superseding whatever
// was loading or published. Empty or absent input publishes the empty
// result synchronously without invoking the decoder.
func (lc *LoadController) Submit(data []byte) error {
	lc.mu.Lock()
	if lc.state == StateDisposed {
		lc.mu.Unlock()
		return ErrControllerDisposed
	}

	lc.teardownLocked()

	lc.generation++
	generation := lc.generation

	if len(data) == 0 {
		lc.state = StatePublished
		lc.notifyLocked()
		lc.mu.Unlock()
		core.LogDebug("generation %d: empty input, published empty result", generation)
		return nil
	}

	lc.state = StateLoading
	lc.mu.Unlock()

	// Enqueued outside the lock: a full queue must not block decode
	// completions, which need the lock to publish or discard.
	core.LogDebug("generation %d: decoding %d bytes", generation, len(data))
	queued := lc.jobs.Submit(lc.ctx, DecodeTask{
		OnStart: func(ctx context.Context) (*scene.Scene, error) {
			return lc.decoder.Decode(ctx, data)
		},
		OnComplete: func(result *scene.Scene) {
			lc.completeDecode(generation, result)
		},
		OnFailure: func(err error) {
			lc.failDecode(generation, err)
		},
	})
	if !queued {
		core.LogDebug("generation %d: controller shut down before decode started", generation)
		return ErrControllerDisposed
	}
	return nil
}

// Shutdown tears down whatever was last published and stops the decode
// workers. The controller accepts no input afterwards. Safe to call twice.
func (lc *LoadController) Shutdown() error {
	lc.mu.Lock()
	if lc.state == StateDisposed {
		lc.mu.Unlock()
		return nil
	}
	lc.teardownLocked()
	lc.state = StateDisposed
	generations := lc.generation
	for _, ch := range lc.watchers {
		close(ch)
	}
	lc.watchers = nil
	lc.mu.Unlock()

	lc.cancel()
	if err := lc.jobs.Shutdown(); err != nil {
		return err
	}
	core.LogInfo("load controller shut down after %d generation(s)", generations)
	return nil
}

// completeDecode publishes the decoded scene for the given generation, or
// discards it silently when a newer input has superseded it.
func (lc *LoadController) completeDecode(generation uint64, s *scene.Scene) {
	lc.mu.Lock()
	if lc.staleLocked(generation) {
		lc.mu.Unlock()
		core.LogDebug("discarding stale decode for generation %d", generation)
		return
	}

	meshes := postProcess(s)

	var mixer *animation.Mixer
	if len(s.Clips) > 0 {
		mixer = animation.NewMixer(s)
		mixer.PlayAll()
	}

	lc.published = PublishedResult{
		Scene:  s,
		Meshes: meshes,
		Mixer:  mixer,
	}
	lc.driver.Set(mixer)
	lc.state = StatePublished
	lc.notifyLocked()
	lc.mu.Unlock()

	core.LogInfo("generation %d: published scene %s with %d mesh(es), %d clip(s)",
		generation, s.ID, len(meshes), len(s.Clips))

	eventContext := core.EventContext{}
	eventContext.Data.C[0] = s.ID.String()
	eventContext.Data.U32[0] = uint32(len(meshes))
	if mixer != nil {
		eventContext.Data.U32[1] = 1
	}
	core.EventFire(core.EVENT_CODE_SCENE_PUBLISHED, lc, eventContext)
}

// failDecode reports a decode failure for the given generation and publishes
// the empty result. Stale failures are discarded like stale completions.
func (lc *LoadController) failDecode(generation uint64, err error) {
	lc.mu.Lock()
	if lc.staleLocked(generation) {
		lc.mu.Unlock()
		core.LogDebug("discarding stale decode failure for generation %d", generation)
		return
	}
	lc.state = StatePublished
	lc.notifyLocked()
	lc.mu.Unlock()

	core.LogError("generation %d: %v", generation, err)

	eventContext := core.EventContext{}
	eventContext.Data.C[0] = err.Error()
	eventContext.Data.U64[0] = generation
	core.EventFire(core.EVENT_CODE_DECODE_FAILED, lc, eventContext)
}

// staleLocked reports whether a decode outcome for the given generation has
// been superseded by newer input or by shutdown.
func (lc *LoadController) staleLocked(generation uint64) bool {
	return lc.state != StateLoading || generation != lc.generation
}

// teardownLocked releases the published generation completely, in order:
// the mixer handle is cleared first, synchronously, so a concurrent frame
// tick cannot advance into a scene mid-teardown; then all clip actions are
// stopped; then every mesh reachable from the scene root is disposed; then
// the result is cleared to empty.
func (lc *LoadController) teardownLocked() {
	lc.driver.Clear()
	if lc.published.Mixer != nil {
		lc.published.Mixer.StopAll()
	}
	if lc.published.Scene != nil {
		lc.disposer.DisposeTree(lc.published.Scene.Root)
		core.LogDebug("generation %d: disposed scene %s", lc.generation, lc.published.Scene.ID)
		lc.published = PublishedResult{}
		lc.notifyLocked()
	}
}

func (lc *LoadController) snapshotLocked() PublishedResult {
	snapshot := PublishedResult{
		Scene: lc.published.Scene,
		Mixer: lc.published.Mixer,
	}
	if len(lc.published.Meshes) > 0 {
		snapshot.Meshes = make([]*scene.Node, len(lc.published.Meshes))
		copy(snapshot.Meshes, lc.published.Meshes)
	}
	return snapshot
}

func (lc *LoadController) notifyLocked() {
	snapshot := lc.snapshotLocked()
	for _, ch := range lc.watchers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// postProcess prepares a freshly decoded scene for publication: normals and
// bounding volumes are recomputed for every mesh, and every material is
// flipped to render both faces (the viewer stands inside the asset, so
// back-face culling must be off) and marked for a renderer-side refresh.
// Returns the mesh nodes in traversal order.
func postProcess(s *scene.Scene) []*scene.Node {
	meshes := s.Meshes()
	for _, node := range meshes {
		geometry := node.Mesh.Geometry
		if geometry == nil {
			continue
		}
		math.GeometryGenerateNormals(uint32(len(geometry.Vertices)), geometry.Vertices,
			uint32(len(geometry.Indices)), geometry.Indices)
		geometry.Extents, geometry.Center = math.GeometryGenerateExtents(geometry.Vertices)
		geometry.Generation++

		for _, material := range node.Mesh.Materials {
			if material == nil {
				continue
			}
			material.DoubleSided = true
			material.MarkDirty()
		}
	}
	return meshes
}
