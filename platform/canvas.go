package platform

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/asteroids/game"
	"gonum.org/v1/gonum/spatial/r2"
)

// Canvas draws onto the ebiten screen image of the current frame.
type Canvas struct {
	screen   *ebiten.Image
	textures map[game.TextureID]*ebiten.Image
	vertices []ebiten.Vertex

	// white is the inner pixel of a 3x3 white image so triangle fills never
	// sample its edges.
	white *ebiten.Image
}

func NewCanvas() *Canvas {
	return &Canvas{textures: make(map[game.TextureID]*ebiten.Image)}
}

// SetScreen sets the image drawn to until the next call.
func (c *Canvas) SetScreen(screen *ebiten.Image) {
	c.screen = screen
}

// SetTexture registers img under id. A nil image removes the texture.
func (c *Canvas) SetTexture(id game.TextureID, img *ebiten.Image) {
	if img == nil {
		delete(c.textures, id)
		return
	}
	c.textures[id] = img
}

func (c *Canvas) ScreenSize() r2.Vec {
	if c.screen == nil {
		return r2.Vec{}
	}
	b := c.screen.Bounds()
	return r2.Vec{X: float64(b.Dx()), Y: float64(b.Dy())}
}

func (c *Canvas) Clear(clr color.RGBA) {
	c.screen.Fill(clr)
}

func (c *Canvas) FillRect(min, size r2.Vec, clr color.RGBA) {
	vector.DrawFilledRect(c.screen, float32(min.X), float32(min.Y), float32(size.X), float32(size.Y), clr, false)
}

func (c *Canvas) FillCircle(center r2.Vec, radius float64, clr color.RGBA) {
	vector.DrawFilledCircle(c.screen, float32(center.X), float32(center.Y), float32(radius), clr, true)
}

func (c *Canvas) FillTriangle(a, b, d r2.Vec, clr color.RGBA) {
	if c.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		c.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	c.vertices = triangleVertices(c.vertices[:0], clr, a, b, d)
	c.screen.DrawTriangles(c.vertices, []uint16{0, 1, 2}, c.white, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// DrawSprite draws the source rectangle of a texture centred on center,
// scaled to size and rotated clockwise by rotation radians. Missing
// textures draw nothing.
func (c *Canvas) DrawSprite(texture game.TextureID, source image.Rectangle, center, size r2.Vec, rotation float64, tint color.RGBA) {
	sheet, ok := c.textures[texture]
	if !ok || source.Empty() {
		return
	}

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM = spriteTransform(source, center, size, rotation)
	op.ColorScale.ScaleWithColor(tint)
	c.screen.DrawImage(sheet.SubImage(source).(*ebiten.Image), op)
}

func triangleVertices(dst []ebiten.Vertex, clr color.RGBA, points ...r2.Vec) []ebiten.Vertex {
	r, g, b, a := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff, float32(clr.A)/0xff
	for _, p := range points {
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	return dst
}

func spriteTransform(source image.Rectangle, center, size r2.Vec, rotation float64) ebiten.GeoM {
	w, h := float64(source.Dx()), float64(source.Dy())

	var m ebiten.GeoM
	m.Translate(-w/2, -h/2)
	m.Scale(size.X/w, size.Y/h)
	m.Rotate(rotation)
	m.Translate(center.X, center.Y)
	return m
}
