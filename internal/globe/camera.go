package globe

import "github.com/go-gl/mathgl/mgl32"

// Rect is the render surface in window pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the window point (x, y) lies on the surface.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// NDC converts a window point to normalized device coordinates relative to the surface:
// x in [-1, 1] left to right, y in [-1, 1] bottom to top.
func (r Rect) NDC(x, y float32) (float32, float32) {
	if r.Width == 0 || r.Height == 0 {
		return 0, 0
	}
	nx := (x-r.X)/r.Width*2 - 1
	ny := -(y-r.Y)/r.Height*2 + 1
	return nx, ny
}

// Camera is a perspective camera on the +Z axis looking at the globe centre.
type Camera struct {
	FovY     float32 // degrees
	Aspect   float32
	Near     float32
	Far      float32
	Distance float32
}

// Position returns the camera's world position.
func (c Camera) Position() mgl32.Vec3 {
	return mgl32.Vec3{0, 0, c.Distance}
}

// View returns the view matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection matrix.
func (c Camera) Projection() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RayThrough casts a ray from the camera through the given NDC point.
func (c Camera) RayThrough(ndcX, ndcY float32) Ray {
	inv := c.Projection().Mul4(c.View()).Inv()
	far := unproject(inv, mgl32.Vec4{ndcX, ndcY, 1, 1})
	origin := c.Position()
	return Ray{Origin: origin, Direction: far.Sub(origin).Normalize()}
}

func unproject(inv mgl32.Mat4, clip mgl32.Vec4) mgl32.Vec3 {
	p := inv.Mul4x1(clip)
	if p.W() == 0 {
		return p.Vec3()
	}
	return p.Vec3().Mul(1 / p.W())
}

// intersectQuad intersects r with a unit quad (x, y in [-0.5, 0.5], z = 0) placed in the
// world by model. Both faces count. It returns the distance along r.
func intersectQuad(r Ray, model mgl32.Mat4) (float32, bool) {
	inv := model.Inv()
	o := inv.Mul4x1(r.Origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(r.Direction.Vec4(0)).Vec3()
	if d.Z() > -1e-7 && d.Z() < 1e-7 {
		return 0, false
	}
	t := -o.Z() / d.Z()
	if t < 0 {
		return 0, false
	}
	hit := o.Add(d.Mul(t))
	if hit.X() < -0.5 || hit.X() > 0.5 || hit.Y() < -0.5 || hit.Y() > 0.5 {
		return 0, false
	}
	return t, true
}
