package math

import "github.com/chewxy/math32"

func (q Quaternion) Dot(o Quaternion) float32 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quaternion) Normalized() Quaternion {
	l := math32.Sqrt(q.Dot(q))
	if l == 0 {
		return NewQuatIdentity()
	}
	return Quaternion{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Nlerp performs a normalized linear interpolation between q and o by t,
// taking the shortest arc. Good enough for dense keyframe tracks where
// neighbouring rotations are close together.
func (q Quaternion) Nlerp(o Quaternion, t float32) Quaternion {
	// Flip one input when the dot is negative so we do not spin the long
	// way around.
	if q.Dot(o) < 0 {
		o = Quaternion{-o.X, -o.Y, -o.Z, -o.W}
	}
	out := Quaternion{
		q.X + (o.X-q.X)*t,
		q.Y + (o.Y-q.Y)*t,
		q.Z + (o.Z-q.Z)*t,
		q.W + (o.W-q.W)*t,
	}
	return out.Normalized()
}
