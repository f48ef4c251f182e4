package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's pose in world space. Y is up and an identity
// rotation faces +Z.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func (t *Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

func (t *Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

var TransformComponent = NewComponent[Transform]()
