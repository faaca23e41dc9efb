package game

import "fmt"

// Pixel is sufficient to render a single board cell
type Pixel struct {
	Foreground Color
	Background Color
	Value      byte
}

// Bitmap is a two-dimensional grid of pixels, one per board cell
type Bitmap struct {
	rows, columns int
	pixels        []Pixel
}

func NewBitmap(rows, columns int) *Bitmap {
	return &Bitmap{
		rows:    rows,
		columns: columns,
		pixels:  make([]Pixel, rows*columns),
	}
}

func (bitmap *Bitmap) Rows() int {
	return bitmap.rows
}

func (bitmap *Bitmap) Columns() int {
	return bitmap.columns
}

func (bitmap *Bitmap) Get(row, col int) Pixel {
	return bitmap.pixels[bitmap.index(row, col)]
}

func (bitmap *Bitmap) Set(row, col int, pixel Pixel) {
	bitmap.pixels[bitmap.index(row, col)] = pixel
}

func (bitmap *Bitmap) index(row, col int) int {
	if row < 0 || col < 0 || row >= bitmap.rows || col >= bitmap.columns {
		panic(fmt.Sprintf("bitmap pixel (%d, %d) out of range %dx%d", row, col, bitmap.rows, bitmap.columns))
	}
	return row*bitmap.columns + col
}
