package scene

import "github.com/spaghettifunk/vetrina/engine/math"

/** @brief The node property a keyframe track animates. */
type TrackProperty uint8

const (
	TrackPropertyPosition TrackProperty = iota
	TrackPropertyRotation
	TrackPropertyScale
)

/**
 * @brief An ordered set of keyframes animating one property of one node.
 * Times are strictly increasing. Values are Vec4s; position and scale tracks
 * use XYZ only, rotation tracks interpret the value as a quaternion.
 */
type KeyframeTrack struct {
	/** @brief The name of the node this track animates. */
	TargetNode string
	/** @brief The animated property. */
	Property TrackProperty
	/** @brief Keyframe times in seconds. */
	Times []float32
	/** @brief One value per keyframe time. */
	Values []math.Vec4
}

/**
 * @brief A named set of keyframe tracks. Zero or more per decoded scene.
 */
type AnimationClip struct {
	/** @brief The clip name. */
	Name string
	/** @brief The clip length in seconds. */
	Duration float32
	/** @brief The keyframe tracks making up the clip. */
	Tracks []*KeyframeTrack
}
