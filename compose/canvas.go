package compose

// Canvas is the composited pixel buffer.
type Canvas struct {
	// Width and Height in pixels. Either may be zero.
	Width, Height int

	// Channels per pixel: 1 or 4.
	Channels int

	// Baseline is the shared baseline used to align glyph tops, in pixels
	// from the top edge.
	Baseline int

	// Pix holds Width*Height*Channels bytes in row-major order.
	Pix []uint8
}

// NewCanvas allocates a zero-filled canvas.
// Negative dimensions are treated as zero.
func NewCanvas(width, height, channels int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	if channels != 4 {
		channels = 1
	}
	return &Canvas{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Empty reports whether the canvas has no pixels.
func (c *Canvas) Empty() bool {
	return c.Width == 0 || c.Height == 0
}

// Stride returns the number of bytes per row.
func (c *Canvas) Stride() int {
	return c.Width * c.Channels
}

// Offset returns the index of the first channel of pixel (x, y) in Pix,
// or -1 if the point is outside the canvas.
func (c *Canvas) Offset(x, y int) int {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return -1
	}
	return y*c.Stride() + x*c.Channels
}

// At returns the channels of pixel (x, y), or nil outside the canvas.
// The returned slice aliases Pix.
func (c *Canvas) At(x, y int) []uint8 {
	off := c.Offset(x, y)
	if off < 0 {
		return nil
	}
	return c.Pix[off : off+c.Channels : off+c.Channels]
}

// Row returns row y, or nil outside the canvas. The slice aliases Pix.
func (c *Canvas) Row(y int) []uint8 {
	if y < 0 || y >= c.Height {
		return nil
	}
	s := c.Stride()
	return c.Pix[y*s : (y+1)*s : (y+1)*s]
}
