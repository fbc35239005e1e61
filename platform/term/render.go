package term

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/ggwin/frame"
)

// upperHalf draws the top pixel of a cell in the foreground color and
// the bottom pixel in the background color.
const upperHalf = '\u2580'

// present paints a presented texture onto the screen.
func (w *Window) present(tex *frame.Texture) error {
	cols, rows := w.cells()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	img := fit(tex.RGBA(), cols, rows*2)
	paint(w.p.screen, img, cols, rows)
	w.p.screen.Show()
	return nil
}

// fit scales img to width x height pixels when a frame was rendered for
// an older terminal size.
func fit(img *image.RGBA, width, height int) *image.RGBA {
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// paint maps pixel pairs onto half-block cells. Pixels are
// premultiplied, which composites them over a black terminal.
func paint(screen tcell.Screen, img *image.RGBA, cols, rows int) {
	for y := range rows {
		for x := range cols {
			top := img.RGBAAt(x, 2*y)
			bottom := img.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
}
