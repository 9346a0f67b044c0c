package config

import (
	"errors"
	"fmt"
)

// Validate checks the settings for values the systems cannot work with.
// All problems are reported together.
func (s *Settings) Validate() error {
	var errs []error

	if s.Resolution.W <= 0 || s.Resolution.H <= 0 {
		errs = append(errs, fmt.Errorf("resolution must be positive, got %vx%v", s.Resolution.W, s.Resolution.H))
	}
	if s.MinLifetime < 0 {
		errs = append(errs, fmt.Errorf("min_lifetime must not be negative, got %v", s.MinLifetime))
	}

	errs = appendNonNegative(errs, "player.size", s.Player.Size)
	errs = appendNonNegative(errs, "player.max_speed", s.Player.MaxSpeed)
	errs = appendNonNegative(errs, "bullet.size", s.Bullet.Size)
	errs = appendNonNegative(errs, "bullet.speed", s.Bullet.Speed)
	errs = appendNonNegative(errs, "bullet.fire_delay", s.Bullet.FireDelay)
	errs = appendNonNegative(errs, "asteroid.max_angular_velocity", s.Asteroid.MaxAngularVelocity)

	errs = appendRange(errs, "asteroid.size", s.Asteroid.Size)
	errs = appendRange(errs, "asteroid.spawn_delay", s.Asteroid.SpawnDelay)
	errs = appendRange(errs, "asteroid.speed", s.Asteroid.Speed)

	if s.UsesSprites() {
		if len(s.Asteroid.Sprites) == 0 {
			errs = append(errs, errors.New("asteroid.sprites must not be empty when sprite_sheet is set"))
		}
		for i, r := range s.Asteroid.Sprites {
			if r.Empty() {
				errs = append(errs, fmt.Errorf("asteroid.sprites[%d] is empty", i))
			}
		}
	}

	return errors.Join(errs...)
}

func appendNonNegative(errs []error, name string, v float64) []error {
	if v < 0 {
		return append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
	}
	return errs
}

func appendRange(errs []error, name string, r Range) []error {
	if r.Min > r.Max {
		errs = append(errs, fmt.Errorf("%s min %v is greater than max %v", name, r.Min, r.Max))
	}
	if r.Min < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, r.Min))
	}
	return errs
}
