package geo

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// degToRad converts degrees to radians.
func degToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// LatLngToVector3 projects a geographic coordinate onto a sphere of the given radius.
// Longitude is negated before projection so the point lines up with the globe texture's
// UV layout (the equirectangular map is authored for that orientation).
// (0,0) lands on +X and the north pole on +Y.
func LatLngToVector3(lat, lng, radius float32) mgl32.Vec3 {
	phi := degToRad(90 - lat)
	theta := degToRad(-lng + 180)
	sinPhi, cosPhi := math32.Sincos(phi)
	sinTheta, cosTheta := math32.Sincos(theta)
	return mgl32.Vec3{
		-radius * sinPhi * cosTheta,
		radius * cosPhi,
		radius * sinPhi * sinTheta,
	}
}

// SurfaceNormal returns the outward unit normal of a sphere centred at the origin at p.
// The origin itself has no normal; +Y is returned so callers never see NaN.
func SurfaceNormal(p mgl32.Vec3) mgl32.Vec3 {
	if p.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return p.Normalize()
}

// OutwardLookAt returns the rotation that turns a plane facing +Z to face away from the
// sphere centre at p. It matches an object "looking at" the point 2p: the local +Z axis
// points from p towards 2p.
func OutwardLookAt(p mgl32.Vec3) mgl32.Mat4 {
	target := p.Mul(2)
	z := target.Sub(p)
	if z.Len() == 0 {
		z = mgl32.Vec3{0, 0, 1}
	}
	z = z.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	x := up.Cross(z)
	if x.Len() == 0 {
		// p sits on the Y axis; nudge z off the up vector.
		z = mgl32.Vec3{z.X(), z.Y(), z.Z() + 0.0001}.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)
	return mgl32.Mat4{
		x.X(), x.Y(), x.Z(), 0,
		y.X(), y.Y(), y.Z(), 0,
		z.X(), z.Y(), z.Z(), 0,
		0, 0, 0, 1,
	}
}

// EulerXY returns the rotation for Euler angles (rx, ry, 0) in XYZ order.
func EulerXY(rx, ry float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(rx).Mul4(mgl32.HomogRotate3DY(ry))
}
