package common

import (
	"fmt"
	"strings"
)

// LayerMask selects which collision layers a query considers.
type LayerMask uint32

const (
	LayerGround LayerMask = 1 << iota
	LayerWall
	LayerCamera
	LayerCharacter

	LayerNone LayerMask = 0
	LayerAll  LayerMask = ^LayerMask(0)
)

var layerNames = map[string]LayerMask{
	"ground":    LayerGround,
	"wall":      LayerWall,
	"camera":    LayerCamera,
	"character": LayerCharacter,
	"all":       LayerAll,
}

func (m LayerMask) Has(other LayerMask) bool {
	return m&other != 0
}

// ParseLayerMask ORs the named layers together.
func ParseLayerMask(names []string) (LayerMask, error) {
	var mask LayerMask
	for _, name := range names {
		layer, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown collision layer %q", name)
		}
		mask |= layer
	}
	return mask, nil
}

func (m LayerMask) String() string {
	if m == LayerAll {
		return "all"
	}
	var parts []string
	for _, name := range []string{"ground", "wall", "camera", "character"} {
		if m.Has(layerNames[name]) {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
