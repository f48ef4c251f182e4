package system

import (
	"path/filepath"

	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/ecs/entity"
	"github.com/milk9111/soulslike/logger"
)

// ReloadSystem consumes ReloadRequest entities at the start of a frame and
// applies the changed prefab to live entities.
type ReloadSystem struct{}

func NewReloadSystem() *ReloadSystem {
	return &ReloadSystem{}
}

// RequestReload queues a reload of path for the next frame.
func RequestReload(w *ecs.World, path string) error {
	e := ecs.CreateEntity(w)
	return ecs.Add(w, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Path: path})
}

func (r *ReloadSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach(w, component.ReloadRequestComponent.Kind(), func(e ecs.Entity, req *component.ReloadRequest) {
		r.apply(w, req.Path)
		ecs.DestroyEntity(w, e)
	})
}

func (r *ReloadSystem) apply(w *ecs.World, path string) {
	name := filepath.Base(path)
	log := logger.L().With("prefab", name)

	var err error
	applied := 0
	switch name {
	case entity.PlayerPrefab:
		ecs.ForEach(w, component.PlayerTagComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag) {
			if err != nil {
				return
			}
			if err = entity.ApplyPlayerPrefab(w, e, name); err == nil {
				applied++
			}
		})
	case entity.CameraPrefab:
		ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, _ *component.Camera) {
			if err != nil {
				return
			}
			if err = entity.ApplyCameraPrefab(w, e, name); err == nil {
				applied++
			}
		})
	default:
		log.Debug("reload: no live entities use prefab")
		return
	}

	if err != nil {
		log.Warn("reload: keeping previous tuning", "err", err)
		return
	}
	log.Info("reload: applied", "entities", applied)
}
