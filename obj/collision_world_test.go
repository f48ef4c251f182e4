package obj

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/common"
)

func floorBox() Box {
	return Box{Name: "floor", Min: mgl64.Vec3{-10, -1, -10}, Max: mgl64.Vec3{10, 0, 10}, Layers: common.LayerGround}
}

func TestSphereCast(t *testing.T) {
	wall := Box{Name: "wall", Min: mgl64.Vec3{2, 0, -5}, Max: mgl64.Vec3{3, 4, 5}, Layers: common.LayerWall | common.LayerCamera}

	tests := []struct {
		name      string
		origin    mgl64.Vec3
		radius    float64
		dir       mgl64.Vec3
		maxDist   float64
		mask      common.LayerMask
		wantHit   bool
		wantDist  float64
		wantPoint mgl64.Vec3
	}{
		{
			name: "ground_probe_hits_floor", origin: mgl64.Vec3{0, 0.5, 0}, radius: 0.2, dir: common.Down, maxDist: 0.5,
			mask: common.LayerGround, wantHit: true, wantDist: 0.3, wantPoint: mgl64.Vec3{0, 0, 0},
		},
		{
			name: "ground_probe_out_of_range", origin: mgl64.Vec3{0, 1.5, 0}, radius: 0.2, dir: common.Down, maxDist: 0.5,
			mask: common.LayerGround, wantHit: false,
		},
		{
			name: "mask_filters_layers", origin: mgl64.Vec3{0, 1, 0}, radius: 0.2, dir: common.Right, maxDist: 10,
			mask: common.LayerGround, wantHit: false,
		},
		{
			name: "wall_hit_sideways", origin: mgl64.Vec3{0, 1, 0}, radius: 0.2, dir: common.Right, maxDist: 10,
			mask: common.LayerCamera, wantHit: true, wantDist: 1.8, wantPoint: mgl64.Vec3{2, 1, 0},
		},
		{
			name: "starts_overlapping", origin: mgl64.Vec3{0, 0.1, 0}, radius: 0.2, dir: common.Down, maxDist: 0.5,
			mask: common.LayerGround, wantHit: true, wantDist: 0, wantPoint: mgl64.Vec3{0, 0, 0},
		},
		{
			name: "zero_direction", origin: mgl64.Vec3{0, 1, 0}, radius: 0.2, dir: mgl64.Vec3{}, maxDist: 1,
			mask: common.LayerAll, wantHit: false,
		},
	}

	cw := NewCollisionWorld(floorBox(), wall)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := cw.SphereCast(tc.origin, tc.radius, tc.dir, tc.maxDist, tc.mask)
			if ok != tc.wantHit {
				t.Fatalf("hit = %v, want %v (%+v)", ok, tc.wantHit, hit)
			}
			if !ok {
				return
			}
			if math.Abs(hit.Distance-tc.wantDist) > 1e-9 {
				t.Fatalf("distance = %v, want %v", hit.Distance, tc.wantDist)
			}
			if d := hit.Point.Sub(tc.wantPoint); math.Abs(d.X()) > 1e-9 || math.Abs(d.Y()) > 1e-9 || math.Abs(d.Z()) > 1e-9 {
				t.Fatalf("point = %v, want %v", hit.Point, tc.wantPoint)
			}
		})
	}
}

func TestSphereCastPicksNearest(t *testing.T) {
	cw := NewCollisionWorld(
		floorBox(),
		Box{Name: "step", Min: mgl64.Vec3{-1, 0, -1}, Max: mgl64.Vec3{1, 0.25, 1}, Layers: common.LayerGround},
	)
	hit, ok := cw.SphereCast(mgl64.Vec3{0, 0.5, 0}, 0.2, common.Down, 0.5, common.LayerGround)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.Point.Y()-0.25) > 1e-9 {
		t.Fatalf("expected the step top, got %v", hit.Point)
	}
	if hit.Normal != common.Up {
		t.Fatalf("expected up normal, got %v", hit.Normal)
	}
}

func TestCollisionWorldBoxes(t *testing.T) {
	cw := NewCollisionWorld(
		floorBox(),
		Box{Name: "wall", Min: mgl64.Vec3{3, 4, 5}, Max: mgl64.Vec3{2, 0, -5}, Layers: common.LayerWall},
	)
	walls := cw.Boxes(common.LayerWall)
	if len(walls) != 1 || walls[0].Name != "wall" {
		t.Fatalf("expected the wall box, got %+v", walls)
	}
	if walls[0].Min.X() != 2 || walls[0].Max.Y() != 4 {
		t.Fatalf("expected min/max normalized, got %+v", walls[0])
	}
	if len(cw.Boxes(common.LayerAll)) != 2 {
		t.Fatalf("expected both boxes for LayerAll")
	}
}
