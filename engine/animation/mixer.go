package animation

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/vetrina/engine/core"
	"github.com/spaghettifunk/vetrina/engine/math"
	"github.com/spaghettifunk/vetrina/engine/scene"
)

/**
 * @brief The runtime state of one clip on one mixer: elapsed time, play
 * flag and the track targets resolved against the bound scene.
 */
type Action struct {
	Clip     *scene.AnimationClip
	time     float32
	playing  bool
	bindings []trackBinding
}

type trackBinding struct {
	track *scene.KeyframeTrack
	node  *scene.Node
}

func (a *Action) Playing() bool {
	return a.playing
}

func (a *Action) Play() {
	a.playing = true
}

func (a *Action) Stop() {
	a.playing = false
	a.time = 0
}

/**
 * @brief Mixer binds the animation clips of exactly one decoded scene to
 * runtime actions. Created when a scene with clips is published, torn down
 * when that scene is superseded or the controller shuts down. A mixer never
 * outlives the scene it is bound to.
 */
type Mixer struct {
	/** @brief The handle identity, unique per publish. */
	Handle  uuid.UUID
	sc      *scene.Scene
	actions []*Action
}

// NewMixer resolves every clip track against the scene's nodes. Tracks whose
// target node cannot be found are skipped with a warning; the remaining
// tracks of the clip still play.
func NewMixer(s *scene.Scene) *Mixer {
	m := &Mixer{
		Handle: uuid.New(),
		sc:     s,
	}
	for _, clip := range s.Clips {
		action := &Action{Clip: clip}
		for _, track := range clip.Tracks {
			node := s.FindNode(track.TargetNode)
			if node == nil {
				core.LogWarn("animation clip '%s': no node named '%s', track skipped", clip.Name, track.TargetNode)
				continue
			}
			action.bindings = append(action.bindings, trackBinding{track: track, node: node})
		}
		m.actions = append(m.actions, action)
	}
	return m
}

// Scene returns the scene this mixer is bound to.
func (m *Mixer) Scene() *scene.Scene {
	return m.sc
}

func (m *Mixer) Actions() []*Action {
	return m.actions
}

// PlayAll starts every action from the beginning.
func (m *Mixer) PlayAll() {
	for _, a := range m.actions {
		a.time = 0
		a.playing = true
	}
}

// StopAll halts every action and rewinds it.
func (m *Mixer) StopAll() {
	for _, a := range m.actions {
		a.Stop()
	}
}

// Advance moves every playing action forward by deltaTime seconds, looping
// at the clip duration, and writes the sampled values into the target node
// transforms. Callers must not advance a mixer whose scene has been torn
// down; the animation driver enforces this.
func (m *Mixer) Advance(deltaTime float32) {
	for _, a := range m.actions {
		if !a.playing {
			continue
		}
		a.time += deltaTime
		if a.Clip.Duration > 0 {
			for a.time > a.Clip.Duration {
				a.time -= a.Clip.Duration
			}
		}
		for _, b := range a.bindings {
			sampleTrack(b.track, a.time, &b.node.Transform)
		}
	}
}

func sampleTrack(track *scene.KeyframeTrack, t float32, out *math.Transform) {
	if len(track.Times) == 0 || len(track.Times) != len(track.Values) {
		return
	}

	// Locate the keyframe interval containing t. Tracks are short enough
	// that a linear scan beats keeping per-action cursors in sync.
	last := len(track.Times) - 1
	i := 0
	for i < last && track.Times[i+1] < t {
		i++
	}
	j := i
	if i < last {
		j = i + 1
	}

	factor := float32(0)
	if span := track.Times[j] - track.Times[i]; span > 0 {
		factor = math.Clamp((t-track.Times[i])/span, 0, 1)
	}

	v0 := track.Values[i]
	v1 := track.Values[j]
	switch track.Property {
	case scene.TrackPropertyPosition:
		a := math.Vec3{X: v0.X, Y: v0.Y, Z: v0.Z}
		b := math.Vec3{X: v1.X, Y: v1.Y, Z: v1.Z}
		out.Position = a.Lerp(b, factor)
	case scene.TrackPropertyRotation:
		q0 := math.Quaternion(v0)
		q1 := math.Quaternion(v1)
		out.Rotation = q0.Nlerp(q1, factor)
	case scene.TrackPropertyScale:
		a := math.Vec3{X: v0.X, Y: v0.Y, Z: v0.Z}
		b := math.Vec3{X: v1.X, Y: v1.Y, Z: v1.Z}
		out.Scale = a.Lerp(b, factor)
	}
}
