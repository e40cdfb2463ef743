package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/tsawler/pageread/raster"
)

// EncodePNG renders a word crop as a grayscale PNG with inverted
// polarity. Crops carry ink as values near 1 on a background near 0;
// the encoded image has dark ink on a light background.
func EncodePNG(crop *raster.Grid) ([]byte, error) {
	if crop.H <= 0 || crop.W <= 0 {
		return nil, fmt.Errorf("cannot encode empty %dx%d crop", crop.H, crop.W)
	}
	img := image.NewGray(image.Rect(0, 0, crop.W, crop.H))
	for y := 0; y < crop.H; y++ {
		for x := 0; x < crop.W; x++ {
			v := crop.At(y, x)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8((1-v)*255 + 0.5)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
