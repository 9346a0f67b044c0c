package game

import (
	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/ecs"
)

// DespawnSystem removes entities that drifted outside the play area once they
// have lived longer than the configured minimum lifetime.
type DespawnSystem struct {
	Settings ecs.Singleton[config.Settings]
	Counters ecs.Singleton[Counters]
	Objects  ecs.Query[struct {
		ecs.EntityId
		*Transform
		*DespawnWhenOffScreen
	}]
}

func (s *DespawnSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	w, h := settings.Resolution.W, settings.Resolution.H

	for item := range s.Objects.Values() {
		if item.DespawnWhenOffScreen.Age <= settings.MinLifetime {
			continue
		}

		// Shift to the top-left corner origin used by the bounds check.
		x := item.Transform.Position.X + w/2
		y := item.Transform.Position.Y + h/2
		r := item.DespawnWhenOffScreen.OuterBoundsRadius

		if x < -r || w+r < x || y < -r || h+r < y {
			if !frame.Commands.Deleting(item.EntityId) {
				s.Counters.Get().Despawned++
			}
			frame.Commands.Delete(item.EntityId)
		}
	}
}
