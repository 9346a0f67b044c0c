package platform

import (
	"fmt"
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ResolvePath resolves an asset path from the config file against dir.
// Absolute paths and an empty dir leave path unchanged.
func ResolvePath(dir, path string) string {
	if path == "" || dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// LoadSpriteSheet loads a PNG sprite sheet.
func LoadSpriteSheet(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sprite sheet %q: %w", path, err)
	}
	return img, nil
}
