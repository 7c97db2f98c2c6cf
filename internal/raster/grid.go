package raster

import (
	"fmt"
	"image"
)

// GrayFromRows builds a grayscale image from row-major intensities with the
// first row at the top. Every row must have the same length.
func GrayFromRows(rows [][]uint8) (*image.Gray, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty pixel grid", ErrDegenerate)
	}

	width := len(rows[0])
	img := image.NewGray(image.Rect(0, 0, width, len(rows)))
	for y, row := range rows {
		if len(row) != width {
			return nil, configErrorf("source_image", "row %d has %d pixels, expected %d", y, len(row), width)
		}
		copy(img.Pix[y*img.Stride:], row)
	}
	return img, nil
}
