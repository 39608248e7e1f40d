package player

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/protoplay"
)

// cornerSegments is the number of edges approximating each rounded corner.
const cornerSegments = 6

// lineHeight matches basicfont.Face7x13.
const lineHeight = 13

// whitePixel is a 1x1 white image all shapes are drawn from.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(toNRGBA(protoplay.ColorWhite, 1))
	}
	return whitePixel
}

// renderer draws a node tree. Its buffers are reused across frames.
type renderer struct {
	pts   []protoplay.Vec2
	verts []ebiten.Vertex
	inds  []uint16
	face  text.Face
}

// drawTree paints root's shown subtree in document order.
func (r *renderer) drawTree(dst *ebiten.Image, root *protoplay.Node) {
	root.Walk(func(n *protoplay.Node) bool {
		if !n.WorldVisible() {
			return false
		}
		r.drawNode(dst, n)
		return true
	})
}

func (r *renderer) drawNode(dst *ebiten.Image, n *protoplay.Node) {
	alpha := n.WorldAlpha()
	if alpha <= 0 {
		return
	}
	c := n.Computed()
	b := n.WorldBounds()

	paint, radius := c.Background, c.Radius
	if n.Tag == "path" {
		paint = c.Fill
		if n.Parent != nil {
			radius = n.Parent.Computed().Radius
		}
	}
	if paint.A > 0 && b.Width > 0 && b.Height > 0 {
		r.fillRoundedRect(dst, b, radius, paint, alpha)
	}
	if n.Text != "" {
		r.drawText(dst, n.Text, b, c.Fill, alpha)
	}
}

// fillRoundedRect fills b with corners of the given radius, as one
// fan-triangulated polygon.
func (r *renderer) fillRoundedRect(dst *ebiten.Image, b protoplay.Rect, radius float64, col protoplay.Color, alpha float64) {
	r.pts = roundedRectPoints(r.pts[:0], b, radius, cornerSegments)
	r.verts, r.inds = buildPolygonFan(r.verts[:0], r.inds[:0], r.pts, col, alpha)
	if len(r.inds) == 0 {
		return
	}
	dst.DrawTriangles(r.verts, r.inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (r *renderer) drawText(dst *ebiten.Image, s string, b protoplay.Rect, col protoplay.Color, alpha float64) {
	if r.face == nil {
		r.face = text.NewGoXFace(basicfont.Face7x13)
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(b.X, b.Y)
	op.ColorScale.ScaleWithColor(toNRGBA(col, alpha))
	op.LineSpacing = lineHeight
	text.Draw(dst, s, r.face, op)
}

// roundedRectPoints appends the outline of b, clockwise from the top-left
// corner, to buf. The radius is clamped to half the shorter side; zero
// gives the four corners.
func roundedRectPoints(buf []protoplay.Vec2, b protoplay.Rect, radius float64, segs int) []protoplay.Vec2 {
	radius = min(radius, b.Width/2, b.Height/2)
	if radius <= 0 || segs < 1 {
		return append(buf,
			protoplay.Vec2{X: b.X, Y: b.Y},
			protoplay.Vec2{X: b.X + b.Width, Y: b.Y},
			protoplay.Vec2{X: b.X + b.Width, Y: b.Y + b.Height},
			protoplay.Vec2{X: b.X, Y: b.Y + b.Height},
		)
	}
	corners := [4]struct{ cx, cy, from float64 }{
		{b.X + radius, b.Y + radius, math.Pi},
		{b.X + b.Width - radius, b.Y + radius, 1.5 * math.Pi},
		{b.X + b.Width - radius, b.Y + b.Height - radius, 0},
		{b.X + radius, b.Y + b.Height - radius, 0.5 * math.Pi},
	}
	for _, c := range corners {
		for i := 0; i <= segs; i++ {
			theta := c.from + float64(i)/float64(segs)*math.Pi/2
			buf = append(buf, protoplay.Vec2{
				X: c.cx + radius*math.Cos(theta),
				Y: c.cy + radius*math.Sin(theta),
			})
		}
	}
	return buf
}

// buildPolygonFan generates vertices and indices for a fan-triangulated
// convex polygon in a solid straight-alpha color.
func buildPolygonFan(verts []ebiten.Vertex, inds []uint16, points []protoplay.Vec2, col protoplay.Color, alpha float64) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}
	for _, p := range points {
		verts = append(verts, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: float32(col.R),
			ColorG: float32(col.G),
			ColorB: float32(col.B),
			ColorA: float32(col.A * alpha),
		})
	}
	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds = append(inds, 0, uint16(i+1), uint16(i+2))
	}
	return verts, inds
}
