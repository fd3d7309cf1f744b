// Package pietimg loads a Piet program image from disk and classifies
// it into a grid of colors. Codel downsampling takes the top-left
// pixel of each codel-sized tile.
package pietimg

import (
	"errors"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/bdwalton/gopiet/colors"
	"github.com/bdwalton/gopiet/grid"
)

// ErrBadPixel marks a pixel whose color is not one of the twenty the
// language defines.
var ErrBadPixel = errors.New("unrecognized pixel color")

// Load reads and classifies the program image at path.
func Load(path string, codelSize int) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode image %q: %w", path, err)
	}

	return FromImage(img, codelSize)
}

// FromImage classifies a decoded raster. The image must be at least
// one codel in each dimension; partial tiles at the right and bottom
// edges are discarded.
func FromImage(img image.Image, codelSize int) (*grid.Grid, error) {
	if codelSize < 1 {
		return nil, fmt.Errorf("invalid codel size %d", codelSize)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx()/codelSize, bounds.Dy()/codelSize
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image is %dx%d, smaller than one %d-pixel codel", bounds.Dx(), bounds.Dy(), codelSize)
	}

	cells := make([][]colors.Color, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]colors.Color, w)
		for x := 0; x < w; x++ {
			px := bounds.Min.X + x*codelSize
			py := bounds.Min.Y + y*codelSize

			// RGBA() returns 16-bit channels; the palette is
			// defined at 8 bits. Alpha is ignored.
			r, g, b, _ := img.At(px, py).RGBA()
			c, ok := colors.FromRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			if !ok {
				return nil, fmt.Errorf("pixel (%d,%d) is #%02X%02X%02X: %w", px, py, uint8(r>>8), uint8(g>>8), uint8(b>>8), ErrBadPixel)
			}
			cells[y][x] = c
		}
	}

	return grid.New(cells), nil
}
