package portal

import (
	"portalgun/internal/camera"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// parallelEpsilon bounds how close to +/-1 the dot product of a normal and the
// forward axis may get before the shortest-arc rotation loses its axis.
const parallelEpsilon = 1e-6

// flip turns an entering orientation into an exiting one.
var flip = rl.QuaternionFromAxisAngle(camera.Up, math32.Pi)

// SurfaceRotation rotates camera.Forward onto normal. A normal facing -Z
// rotates half a turn about world up; one facing +Z is the identity.
func SurfaceRotation(normal rl.Vector3) rl.Quaternion {
	n := rl.Vector3Normalize(normal)
	d := rl.Vector3DotProduct(camera.Forward, n)
	if d < -1+parallelEpsilon {
		return flip
	}
	if d > 1-parallelEpsilon {
		return rl.QuaternionIdentity()
	}
	return rl.QuaternionFromVector3ToVector3(camera.Forward, n)
}

// Transform maps directions entering src onto directions leaving dst:
// dst * flip * inverse(src).
func Transform(src, dst Portal) rl.Quaternion {
	srcQuat := SurfaceRotation(src.Normal)
	dstQuat := SurfaceRotation(dst.Normal)
	return rl.QuaternionMultiply(dstQuat, rl.QuaternionMultiply(flip, rl.QuaternionInvert(srcQuat)))
}

// VirtualCamera is the pose that sees, through src, what lies beyond dst.
func VirtualCamera(viewer camera.Pose, src, dst Portal) camera.Pose {
	q := Transform(src, dst)

	up := viewer.Up
	if rl.Vector3Length(up) == 0 {
		up = camera.Up
	}

	rel := rl.Vector3Subtract(viewer.Position, src.Anchor)
	return camera.Pose{
		Position: rl.Vector3Add(dst.Anchor, rl.Vector3RotateByQuaternion(rel, q)),
		Forward:  rl.Vector3RotateByQuaternion(viewer.Forward, q),
		Up:       rl.Vector3RotateByQuaternion(up, q),
	}
}

// Muzzle is where aim rays start, in view space: right, up, forward.
var Muzzle = rl.Vector3{X: 0.2, Y: -0.3, Z: 1.2}

// AimRay returns the origin and direction of a placement ray fired from the
// gun held in view.
func AimRay(view camera.Pose) (origin, direction rl.Vector3) {
	forward := rl.Vector3Normalize(view.Forward)
	up := view.Up
	if rl.Vector3Length(up) == 0 {
		up = camera.Up
	}
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, up))
	if rl.Vector3Length(right) == 0 {
		_, right = camera.FlatDirections(0)
	}
	trueUp := rl.Vector3CrossProduct(right, forward)

	origin = view.Position
	origin = rl.Vector3Add(origin, rl.Vector3Scale(right, Muzzle.X))
	origin = rl.Vector3Add(origin, rl.Vector3Scale(trueUp, Muzzle.Y))
	origin = rl.Vector3Add(origin, rl.Vector3Scale(forward, Muzzle.Z))
	return origin, forward
}
