// Package camera provides the fixed perspective rig over the wound plane
// and screen-to-world ray picking.
package camera

import "math"

// Vec3 is a world-space vector.
type Vec3 struct {
	X, Y, Z float32
}

// Ray is a world-space ray with unit direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// Rig is a fixed perspective camera looking down at the wound plane. The
// rig never moves during a session; it exists so aim picking and rendering
// share one set of view parameters.
type Rig struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	FovYDeg  float32

	ViewportW, ViewportH float32

	// Orthonormal basis derived from Position/Target/Up
	forward, right, up Vec3
}

// New creates a rig at the given position looking at the target.
func New(position, target Vec3, fovYDeg, viewportW, viewportH float32) *Rig {
	r := &Rig{
		Position:  position,
		Target:    target,
		Up:        Vec3{Y: 1},
		FovYDeg:   fovYDeg,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
	r.rebuild()
	return r
}

// Resize updates viewport dimensions.
func (r *Rig) Resize(viewportW, viewportH float32) {
	r.ViewportW = viewportW
	r.ViewportH = viewportH
}

// rebuild derives the view basis from position, target, and up.
func (r *Rig) rebuild() {
	r.forward = normalize(sub(r.Target, r.Position))
	r.right = normalize(cross(r.forward, r.Up))
	r.up = cross(r.right, r.forward)
}

// ScreenRay unprojects a screen-pixel position into a world-space ray
// through the camera frustum.
func (r *Rig) ScreenRay(sx, sy float32) Ray {
	// Normalized device coordinates, y flipped so screen-down is ndc-down.
	ndcX := 2*sx/r.ViewportW - 1
	ndcY := 1 - 2*sy/r.ViewportH

	halfH := float32(math.Tan(float64(r.FovYDeg) * math.Pi / 360))
	halfW := halfH * r.ViewportW / r.ViewportH

	dir := add(
		r.forward,
		add(
			scale(r.right, ndcX*halfW),
			scale(r.up, ndcY*halfH),
		),
	)
	return Ray{Origin: r.Position, Direction: normalize(dir)}
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
// Returns the hit point and false when the ray is parallel to the plane or
// points away from it.
func (ray Ray) IntersectPlaneY(planeY float32) (Vec3, bool) {
	const eps = 1e-7
	if ray.Direction.Y > -eps && ray.Direction.Y < eps {
		return Vec3{}, false
	}
	t := (planeY - ray.Origin.Y) / ray.Direction.Y
	if t < 0 {
		return Vec3{}, false
	}
	return add(ray.Origin, scale(ray.Direction, t)), true
}

func sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func scale(v Vec3, s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func normalize(v Vec3) Vec3 {
	m := float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
	if m == 0 {
		return v
	}
	return Vec3{v.X / m, v.Y / m, v.Z / m}
}
