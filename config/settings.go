// Package config provides the game's tunable settings, loaded from YAML on top
// of embedded defaults.
package config

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds every tunable value read by the simulation and render systems.
type Settings struct {
	Resolution      Size             `yaml:"resolution"`
	BackgroundColor Color            `yaml:"background_color"`
	MinLifetime     float64          `yaml:"min_lifetime"` // seconds before off-screen removal is allowed
	SpriteSheet     string           `yaml:"sprite_sheet"`
	Player          PlayerSettings   `yaml:"player"`
	Bullet          BulletSettings   `yaml:"bullet"`
	Asteroid        AsteroidSettings `yaml:"asteroid"`
}

// PlayerSettings configures the player ship.
type PlayerSettings struct {
	Color    Color   `yaml:"color"`
	Size     float64 `yaml:"size"`
	MaxSpeed float64 `yaml:"max_speed"` // units per second
	Sprite   Rect    `yaml:"sprite"`
}

// BulletSettings configures projectiles fired by the player.
type BulletSettings struct {
	Color     Color    `yaml:"color"`
	Size      float64  `yaml:"size"`
	Speed     float64  `yaml:"speed"`
	FireDelay float64  `yaml:"fire_delay"` // seconds between shots
	Sprite    Rect     `yaml:"sprite"`
	Sounds    []string `yaml:"sounds"`
}

// AsteroidSettings configures the asteroid spawner.
type AsteroidSettings struct {
	Color              Color   `yaml:"color"`
	Size               Range   `yaml:"size"`
	SpawnDelay         Range   `yaml:"spawn_delay"`
	Speed              Range   `yaml:"speed"`
	MaxAngularVelocity float64 `yaml:"max_angular_velocity"` // degrees per second
	Sprites            []Rect  `yaml:"sprites"`
}

// UsesSprites reports whether entities should be drawn from the sprite sheet.
func (s *Settings) UsesSprites() bool {
	return s.SpriteSheet != ""
}

// Size is a width/height pair written as [w, h].
type Size struct {
	W, H float64
}

func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	var values []float64
	if err := node.Decode(&values); err != nil {
		return err
	}
	if len(values) != 2 {
		return fmt.Errorf("line %d: size needs 2 values, got %d", node.Line, len(values))
	}
	s.W, s.H = values[0], values[1]
	return nil
}

func (s Size) MarshalYAML() (any, error) {
	return flowSeq(s.W, s.H), nil
}

// Range is an inclusive [min, max] interval sampled uniformly by spawners.
type Range struct {
	Min, Max float64
}

func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var values []float64
	if err := node.Decode(&values); err != nil {
		return err
	}
	if len(values) != 2 {
		return fmt.Errorf("line %d: range needs 2 values, got %d", node.Line, len(values))
	}
	r.Min, r.Max = values[0], values[1]
	return nil
}

func (r Range) MarshalYAML() (any, error) {
	return flowSeq(r.Min, r.Max), nil
}

// Rect is a sprite sheet region written as [x, y, w, h].
type Rect struct {
	X, Y, W, H int
}

func (r *Rect) UnmarshalYAML(node *yaml.Node) error {
	var values []int
	if err := node.Decode(&values); err != nil {
		return err
	}
	if len(values) != 4 {
		return fmt.Errorf("line %d: rect needs 4 values, got %d", node.Line, len(values))
	}
	r.X, r.Y, r.W, r.H = values[0], values[1], values[2], values[3]
	return nil
}

func (r Rect) MarshalYAML() (any, error) {
	return flowSeq(r.X, r.Y, r.W, r.H), nil
}

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Rectangle converts r to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Color is an RGBA colour written as "#rrggbb" or "#rrggbbaa".
type Color color.RGBA

// ParseColor parses a hex colour string.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var c Color
	c.A = 0xff
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
	default:
		return Color{}, fmt.Errorf("invalid colour %q: want #rrggbb or #rrggbbaa", s)
	}
	return c, nil
}

// RGBA returns the colour as a color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA(c)
}

func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

func flowSeq[T any](values ...T) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range values {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: fmt.Sprint(v),
		})
	}
	return node
}
