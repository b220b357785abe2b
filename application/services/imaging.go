package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/image/draw"
)

// DetectImageType returns the media type of an image file. When the
// declared type is empty or generic it is sniffed from the bytes.
func DetectImageType(declared string, data []byte) string {
	mediaType := ""
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			mediaType = strings.ToLower(mt)
		}
	}
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}
	if mediaType == "image/jpg" {
		mediaType = "image/jpeg"
	}
	return mediaType
}

// DecodeImage decodes a PNG or JPEG file
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	return img, nil
}

// CenteredSquare returns the largest square centred in bounds
func CenteredSquare(bounds image.Rectangle) image.Rectangle {
	size := bounds.Dx()
	if bounds.Dy() < size {
		size = bounds.Dy()
	}
	x := bounds.Min.X + (bounds.Dx()-size)/2
	y := bounds.Min.Y + (bounds.Dy()-size)/2
	return image.Rect(x, y, x+size, y+size)
}

// ClampSquare fits the square at (x, y) with side size inside bounds,
// shrinking it first if it cannot fit at all
func ClampSquare(bounds image.Rectangle, x, y, size int) image.Rectangle {
	maxSize := CenteredSquare(bounds).Dx()
	if size > maxSize {
		size = maxSize
	}
	if size < 1 {
		size = 1
	}

	if x < bounds.Min.X {
		x = bounds.Min.X
	}
	if y < bounds.Min.Y {
		y = bounds.Min.Y
	}
	if x+size > bounds.Max.X {
		x = bounds.Max.X - size
	}
	if y+size > bounds.Max.Y {
		y = bounds.Max.Y - size
	}
	return image.Rect(x, y, x+size, y+size)
}

// ZoomSquare shrinks a square around its centre by zoom (>= 1)
func ZoomSquare(rect image.Rectangle, zoom float64) image.Rectangle {
	if zoom <= 1 {
		return rect
	}
	size := int(float64(rect.Dx()) / zoom)
	if size < 1 {
		size = 1
	}
	cx := rect.Min.X + rect.Dx()/2
	cy := rect.Min.Y + rect.Dy()/2
	x := cx - size/2
	y := cy - size/2
	return image.Rect(x, y, x+size, y+size)
}

// RenderSquarePNG scales the crop area of src into a size x size PNG
func RenderSquarePNG(src image.Image, crop image.Rectangle, size int) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
