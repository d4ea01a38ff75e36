// Package canvas holds rendered pixels as unclamped floating point colors and
// encodes them as PPM or PNG images.
package canvas

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// maxPPMLineLength is the longest line a PPM encoder may emit
const maxPPMLineLength = 70

// Canvas is a width x height grid of colors, initially black. Pixel (0, 0) is
// the top-left corner. Distinct pixels may be written concurrently.
type Canvas struct {
	width  int
	height int
	pixels []core.Color
}

// New creates a black canvas
func New(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// Width returns the canvas width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels
func (c *Canvas) Height() int { return c.height }

// Write sets the pixel at (x, y). Coordinates outside the canvas are ignored.
func (c *Canvas) Write(x, y int, col core.Color) {
	if !c.contains(x, y) {
		return
	}
	c.pixels[y*c.width+x] = col
}

// At returns the pixel at (x, y), or black outside the canvas
func (c *Canvas) At(x, y int) core.Color {
	if !c.contains(x, y) {
		return core.Black
	}
	return c.pixels[y*c.width+x]
}

func (c *Canvas) contains(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Equal reports whether both canvases have the same size and bit-identical pixels
func (c *Canvas) Equal(other *Canvas) bool {
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i := range c.pixels {
		if c.pixels[i] != other.pixels[i] {
			return false
		}
	}
	return true
}

// WritePPM encodes the canvas as a plain-text (P3) PPM image. Components are
// clamped to 0..255 and no line exceeds 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.width, c.height); err != nil {
		return err
	}

	for y := 0; y < c.height; y++ {
		lineLength := 0
		for x := 0; x < c.width; x++ {
			p := c.At(x, y)
			for _, component := range [3]float64{p.R, p.G, p.B} {
				value := strconv.Itoa(int(toByte(component)))

				// Wrap before the value that would overflow the line
				if lineLength > 0 && lineLength+1+len(value) > maxPPMLineLength {
					if err := bw.WriteByte('\n'); err != nil {
						return err
					}
					lineLength = 0
				}
				if lineLength > 0 {
					if err := bw.WriteByte(' '); err != nil {
						return err
					}
					lineLength++
				}
				if _, err := bw.WriteString(value); err != nil {
					return err
				}
				lineLength += len(value)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ToRGBA converts the canvas to an 8-bit image, clamping each component
func (c *Canvas) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := c.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(p.R),
				G: toByte(p.G),
				B: toByte(p.B),
				A: 255,
			})
		}
	}
	return img
}

// WritePNG encodes the canvas as a PNG image
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.ToRGBA())
}

// toByte scales a component from 0..1 to 0..255, rounding to nearest
func toByte(component float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, component)) * 255))
}
