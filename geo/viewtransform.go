// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import "cogentcore.org/core/math32"

// RotateVec rotates vector v by quaternion q.
func RotateVec(q math32.Quat, v math32.Vector3) math32.Vector3 {
	qv := math32.Vec3(q.X, q.Y, q.Z)
	t := qv.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(q.W)).Add(qv.Cross(t))
}

// ViewMatrix composes the navigation parameters into a view matrix:
// a camera at the given range from the look-at surface location, with
// heading degrees clockwise from north, tilt degrees from nadir
// (0 = looking straight down), and roll degrees about the view axis.
func ViewMatrix(g Globe, look Location, rng, heading, tilt, roll float32) *math32.Matrix4 {
	ref := g.Cartesian(look, 0)
	up := g.SurfaceNormal(look)
	north := g.NorthTangent(look)
	east := north.Cross(up)

	h := math32.DegToRad(heading)
	headingDir := north.MulScalar(math32.Cos(h)).Add(east.MulScalar(math32.Sin(h)))

	t := math32.DegToRad(tilt)
	eyeDir := up.MulScalar(math32.Cos(t)).Sub(headingDir.MulScalar(math32.Sin(t)))
	eye := ref.Add(eyeDir.MulScalar(rng))
	camUp := headingDir.MulScalar(math32.Cos(t)).Add(up.MulScalar(math32.Sin(t)))

	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(eye, ref, camUp))
	if roll != 0 {
		forward := ref.Sub(eye).Normal()
		rollq := math32.NewQuatAxisAngle(forward, math32.DegToRad(roll))
		lookq = rollq.Mul(lookq)
	}

	var cam math32.Matrix4
	cam.SetTransform(eye, lookq, math32.Vec3(1, 1, 1))
	view, _ := cam.Inverse()
	return view
}

// EyePoint returns the camera position encoded in a view matrix.
func EyePoint(view *math32.Matrix4) math32.Vector3 {
	cam, _ := view.Inverse()
	return math32.Vector3{}.MulMatrix4(cam)
}

// ForwardVector returns the camera forward direction (the -Z camera
// axis) encoded in a view matrix.
func ForwardVector(view *math32.Matrix4) math32.Vector3 {
	cam, _ := view.Inverse()
	eye := math32.Vector3{}.MulMatrix4(cam)
	return math32.Vec3(0, 0, -1).MulMatrix4(cam).Sub(eye).Normal()
}

// RotateView post-multiplies the view matrix by an axis-angle world
// rotation: the globe rotates under a fixed camera.
func RotateView(view *math32.Matrix4, axis math32.Vector3, angle float32) *math32.Matrix4 {
	var rot math32.Matrix4
	rot.SetTransform(math32.Vector3{}, math32.NewQuatAxisAngle(axis, angle), math32.Vec3(1, 1, 1))
	var out math32.Matrix4
	out.MulMatrices(view, &rot)
	return &out
}

// TranslateView pre-multiplies the view matrix by a camera-space
// translation, sliding the world relative to the camera.
func TranslateView(view *math32.Matrix4, delta math32.Vector3) *math32.Matrix4 {
	var tr math32.Matrix4
	tr.SetTransform(delta, math32.NewQuat(0, 0, 0, 1), math32.Vec3(1, 1, 1))
	var out math32.Matrix4
	out.MulMatrices(&tr, view)
	return &out
}

// DecomposeView decomposes a view matrix back into navigation
// parameters, relative to the given reference surface point (the point
// on the globe the camera forward vector passes through) and the known
// roll. It is the inverse of [ViewMatrix].
func DecomposeView(g Globe, view *math32.Matrix4, ref math32.Vector3, roll float32) (look Location, rng, heading, tilt float32) {
	cam, _ := view.Inverse()
	eye := math32.Vector3{}.MulMatrix4(cam)
	camUp := math32.Vec3(0, 1, 0).MulMatrix4(cam).Sub(eye).Normal()

	look = g.LocationOf(ref)
	rng = eye.Sub(ref).Length()

	up := g.SurfaceNormal(look)
	north := g.NorthTangent(look)
	east := north.Cross(up)

	eyeDir := eye.Sub(ref).Normal()
	tilt = math32.RadToDeg(math32.Acos(math32.Clamp(eyeDir.Dot(up), -1, 1)))

	if roll != 0 {
		forward := ref.Sub(eye).Normal()
		unroll := math32.NewQuatAxisAngle(forward, math32.DegToRad(-roll))
		camUp = RotateVec(unroll, camUp)
	}

	// the camera up vector projects onto the tangent plane along the
	// heading direction; at extreme tilt it degenerates and the eye
	// offset carries the heading instead
	hd := camUp.Sub(up.MulScalar(camUp.Dot(up)))
	if hd.Length() < 1e-5 {
		hd = up.MulScalar(eyeDir.Dot(up)).Sub(eyeDir)
	}
	heading = math32.RadToDeg(math32.Atan2(hd.Dot(east), hd.Dot(north)))
	return look, rng, heading, tilt
}

// Viewport converts screen points into world rays through a
// perspective projection.
type Viewport struct {
	// Width and Height are the viewport dimensions in display dots.
	Width, Height int

	// FOV is the vertical field of view in degrees.
	FOV float32
}

// Ray returns the world-space ray through the given screen point
// (origin top-left, y down) for the given view matrix.
func (vp Viewport) Ray(view *math32.Matrix4, screen math32.Vector2) Ray {
	cam, _ := view.Inverse()
	eye := math32.Vector3{}.MulMatrix4(cam)

	aspect := float32(vp.Width) / float32(vp.Height)
	tan := math32.Tan(math32.DegToRad(vp.FOV) / 2)
	ndcX := 2*screen.X/float32(vp.Width) - 1
	ndcY := 1 - 2*screen.Y/float32(vp.Height)

	pt := math32.Vec3(ndcX*tan*aspect, ndcY*tan, -1).MulMatrix4(cam)
	return Ray{Origin: eye, Dir: pt.Sub(eye).Normal()}
}
