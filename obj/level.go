package obj

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/levels"
)

// Level is a loaded level: its name, static geometry and entity spawns.
type Level struct {
	Name      string
	Collision *CollisionWorld
	spawns    map[string]mgl64.Vec3
}

// LoadLevel reads the named level and builds its collision world.
func LoadLevel(name string) (*Level, error) {
	lvl, err := levels.LoadLevel(name)
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", name, err)
	}
	return NewLevel(lvl)
}

func NewLevel(lvl *levels.Level) (*Level, error) {
	cw := NewCollisionWorld()
	for i, b := range lvl.Boxes {
		mask, err := common.ParseLayerMask(b.Layers)
		if err != nil {
			return nil, fmt.Errorf("level %q: box %d (%s): %w", lvl.Name, i, b.Name, err)
		}
		if mask == common.LayerNone {
			return nil, fmt.Errorf("level %q: box %d (%s) has no layers", lvl.Name, i, b.Name)
		}
		cw.Add(Box{Name: b.Name, Min: mgl64.Vec3(b.Min), Max: mgl64.Vec3(b.Max), Layers: mask})
	}

	spawns := make(map[string]mgl64.Vec3, len(lvl.Entities))
	for _, e := range lvl.Entities {
		if _, ok := spawns[e.Type]; !ok {
			spawns[e.Type] = mgl64.Vec3(e.Position)
		}
	}
	return &Level{Name: lvl.Name, Collision: cw, spawns: spawns}, nil
}

// Spawn returns where an entity of the given type starts. ok is false when
// the level places no entity of that type.
func (l *Level) Spawn(entityType string) (mgl64.Vec3, bool) {
	p, ok := l.spawns[entityType]
	return p, ok
}
