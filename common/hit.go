package common

import "github.com/go-gl/mathgl/mgl64"

// RaycastHit describes the first contact of a swept query.
type RaycastHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}
